package rules

import (
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

const requiredMessageSuffix = " must not be empty"

// RequiredArrayRule is the required-field post-processor. It runs once per
// class, after every property was generated.
type RequiredArrayRule struct {
	f *Factory
}

// Apply processes the required array ctx.Node of the object schema
// ctx.Parent. Entries without a generated field are skipped.
func (r *RequiredArrayRule) Apply(ctx Context, cls model.ClassID, props Properties) error {
	cfg := r.f.cfg
	arena := r.f.arena

	pending := make(map[model.MethodID]bool)
	properties := ctx.Parent.Get(kwProperties)

	for _, entry := range ctx.Node.Elements() {
		name := entry.Text()
		if !entry.IsString() || name == "" {
			continue
		}

		handle, ok := props[name]
		if !ok {
			continue
		}

		propertyNode := properties.Get(name)
		if resolved, _, err := r.f.resolver.Resolve(propertyNode, ctx.Schema); err == nil {
			propertyNode = resolved
		}

		field := arena.Field(handle.Field)
		if field == nil || field.Class != cls {
			continue
		}

		field.Doc.AppendOnce(model.RequiredMarker)

		if cfg.IncludeValidation {
			r.f.requiredConstraint(field, propertyNode)
		}

		if cfg.IncludeNullness {
			field.AddMarker(model.MarkerNonnull)
		}

		if handle.Getter != model.NoMethod {
			pending[handle.Getter] = true
		}

		if handle.Setter != model.NoMethod {
			pending[handle.Setter] = true
		}
	}

	for _, m := range arena.MethodsOf(cls) {
		if pending[m.ID] {
			m.Doc.AppendOnce(model.RequiredMarker)
		}
	}

	return nil
}

// requiredConstraint attaches the presence constraint matching the field
// category: NotBlank for strings, NotEmpty for collections, NotNull
// otherwise. A field carries at most one of them.
func (f *Factory) requiredConstraint(field *model.Field, propertyNode *schema.Node) {
	if field.HasConstraint(model.ConstraintNotBlank) ||
		field.HasConstraint(model.ConstraintNotEmpty) ||
		field.HasConstraint(model.ConstraintNotNull) {
		return
	}

	var kind model.ConstraintKind

	switch field.Type.Category {
	case model.CategoryString:
		kind = model.ConstraintNotBlank
	case model.CategoryCollection:
		kind = model.ConstraintNotEmpty
	default:
		kind = model.ConstraintNotNull
	}

	message := messagePrefix(field, propertyNode) + requiredMessageSuffix
	f.attach(field, model.NewConstraint(kind, model.ParamMessage, message))
}

// messagePrefix is the property description, falling back to the field name.
func messagePrefix(field *model.Field, node *schema.Node) string {
	if d := node.Get(kwDescription); d.IsString() {
		return d.Text()
	}

	return field.Name
}

// RequiredRule marks a member of a property the schema declares required.
type RequiredRule struct {
	f *Factory
}

// Apply appends the required marker. Fields of properties flagged with a
// boolean required also get the presence constraint and the nonnull marker;
// entries of a required array get them from RequiredArrayRule.
func (r *RequiredRule) Apply(ctx Context, target model.Documentable) {
	target.Documentation().AppendOnce(model.RequiredMarker)

	field, ok := target.(*model.Field)
	if !ok || !ctx.Node.Get(kwRequired).Bool() {
		return
	}

	if r.f.cfg.IncludeValidation {
		r.f.requiredConstraint(field, ctx.Node)
	}

	if r.f.cfg.IncludeNullness {
		field.AddMarker(model.MarkerNonnull)
	}
}

// NotRequiredRule marks a field of an optional property as nullable.
type NotRequiredRule struct {
	f *Factory
}

// Apply adds the nullable marker to fields when nullness markers are on.
func (r *NotRequiredRule) Apply(_ Context, target model.Documentable) {
	if !r.f.cfg.IncludeNullness {
		return
	}

	if field, ok := target.(*model.Field); ok {
		field.AddMarker(model.MarkerNullable)
	}
}
