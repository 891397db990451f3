package rules

import (
	"fmt"

	"jsonschema-generator/internal/model"
)

// TitleRule documents a member with the schema title.
type TitleRule struct{}

// Apply implements DocRule.
func (TitleRule) Apply(ctx Context, target model.Documentable) {
	target.Documentation().Append(ctx.Node.Get(kwTitle).Text())
}

// GoNameRule documents which JSON property a renamed member corresponds to.
type GoNameRule struct{}

// Apply implements DocRule.
func (GoNameRule) Apply(ctx Context, target model.Documentable) {
	target.Documentation().Append(fmt.Sprintf("Corresponds to the %q property.", ctx.NodeName))
}

// DescriptionRule documents a member with the schema description.
type DescriptionRule struct{}

// Apply implements DocRule.
func (DescriptionRule) Apply(ctx Context, target model.Documentable) {
	target.Documentation().Append(ctx.Node.Get(kwDescription).Text())
}

// CommentRule documents a member with the schema $comment.
type CommentRule struct{}

// Apply implements DocRule.
func (CommentRule) Apply(ctx Context, target model.Documentable) {
	target.Documentation().Append(ctx.Node.Get(kwComment).Text())
}
