package rules

import (
	"strconv"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// PatternRule attaches a pattern constraint to string fields.
type PatternRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *PatternRule) Apply(ctx Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	pattern := ctx.Node.Get(kwPattern)
	if !pattern.IsString() {
		return
	}

	if field.Type.Category != model.CategoryString {
		r.f.skip(model.ConstraintPattern, field, "not a string field")
		return
	}

	r.f.attach(field, model.NewConstraint(model.ConstraintPattern,
		model.ParamRegexp, pattern.Text(),
		model.ParamMessage, "must match pattern "+pattern.Text(),
	))
}

// FormatRule handles the format keyword: date and time formats go to the
// annotator, email and uri become constraints, anything else is ignored.
type FormatRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *FormatRule) Apply(ctx Context, field *model.Field) {
	cls := r.f.arena.Class(field.Class)
	annotator := r.f.annotator

	switch ctx.Node.Get(kwFormat).Text() {
	case formatDateTime:
		annotator.DateTimeField(field, cls, ctx.Node)
	case formatDate:
		annotator.DateField(field, cls, ctx.Node)
	case formatTime:
		annotator.TimeField(field, cls, ctx.Node)
	case formatEmail:
		r.constraint(ctx, field, model.ConstraintEmail)
	case formatURI:
		r.constraint(ctx, field, model.ConstraintURL)
	}
}

func (r *FormatRule) constraint(ctx Context, field *model.Field, kind model.ConstraintKind) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	message := messagePrefix(field, ctx.Node) + " is invalid"
	r.f.attach(field, model.NewConstraint(kind, model.ParamMessage, message))
}

// MinimumMaximumRule attaches numeric bounds. Both the boolean (draft-04)
// and numeric (draft-06 and later) exclusive bounds are understood.
type MinimumMaximumRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *MinimumMaximumRule) Apply(ctx Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	node := ctx.Node
	if !node.Has(kwMinimum) && !node.Has(kwMaximum) &&
		!node.Get(kwExclusiveMinimum).IsNumber() && !node.Get(kwExclusiveMaximum).IsNumber() {
		return
	}

	if !field.Type.Numeric {
		r.f.skip(model.ConstraintDecimalMin, field, "not a numeric field")
		return
	}

	r.bound(field, model.ConstraintDecimalMin, node.Get(kwMinimum), node.Get(kwExclusiveMinimum))
	r.bound(field, model.ConstraintDecimalMax, node.Get(kwMaximum), node.Get(kwExclusiveMaximum))
}

func (r *MinimumMaximumRule) bound(field *model.Field, kind model.ConstraintKind, limit, exclusive *schema.Node) {
	if limit.IsNumber() {
		inclusive := !exclusive.Bool()
		r.f.attach(field, model.NewConstraint(kind,
			model.ParamValue, limit.Text(),
			model.ParamInclusive, strconv.FormatBool(inclusive),
		))
	}

	if exclusive.IsNumber() {
		r.f.attach(field, model.NewConstraint(kind,
			model.ParamValue, exclusive.Text(),
			model.ParamInclusive, "false",
		))
	}
}

// MinItemsMaxItemsRule attaches a size constraint to collection fields.
type MinItemsMaxItemsRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *MinItemsMaxItemsRule) Apply(ctx Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	sizeConstraint(r.f, field, model.CategoryCollection, ctx.Node.Get(kwMinItems), ctx.Node.Get(kwMaxItems))
}

// MinLengthMaxLengthRule attaches a size constraint to string fields.
type MinLengthMaxLengthRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *MinLengthMaxLengthRule) Apply(ctx Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	sizeConstraint(r.f, field, model.CategoryString, ctx.Node.Get(kwMinLength), ctx.Node.Get(kwMaxLength))
}

func sizeConstraint(f *Factory, field *model.Field, category model.Category, minNode, maxNode *schema.Node) {
	minValue, hasMin := minNode.Int()
	maxValue, hasMax := maxNode.Int()

	if !hasMin && !hasMax {
		return
	}

	if field.Type.Category != category {
		f.skip(model.ConstraintSize, field, "size keyword does not apply to "+field.Type.Category.String())
		return
	}

	var params []string
	if hasMin {
		params = append(params, model.ParamMin, strconv.FormatInt(minValue, 10))
	}

	if hasMax {
		params = append(params, model.ParamMax, strconv.FormatInt(maxValue, 10))
	}

	f.attach(field, model.NewConstraint(model.ConstraintSize, params...))
}

// DigitsRule attaches digit count limits from integerDigits and
// fractionalDigits, and a multipleOf constraint.
type DigitsRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *DigitsRule) Apply(ctx Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	node := ctx.Node

	integer, hasInteger := node.Get(kwIntegerDigits).Int()
	fraction, hasFraction := node.Get(kwFractionalDigits).Int()

	if hasInteger && hasFraction {
		if field.Type.Numeric || field.Type.Category == model.CategoryString {
			r.f.attach(field, model.NewConstraint(model.ConstraintDigits,
				model.ParamInteger, strconv.FormatInt(integer, 10),
				model.ParamFraction, strconv.FormatInt(fraction, 10),
			))
		} else {
			r.f.skip(model.ConstraintDigits, field, "not a numeric or string field")
		}
	}

	if multiple := node.Get(kwMultipleOf); multiple.IsNumber() {
		if f, ok := multiple.Float(); !ok || f <= 0 {
			r.f.skip(model.ConstraintMultipleOf, field, "multipleOf must be positive")
			return
		}

		if !field.Type.Numeric {
			r.f.skip(model.ConstraintMultipleOf, field, "not a numeric field")
			return
		}

		r.f.attach(field, model.NewConstraint(model.ConstraintMultipleOf, model.ParamValue, multiple.Text()))
	}
}

// ValidRule marks object and array fields so validation cascades into
// nested values.
type ValidRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *ValidRule) Apply(_ Context, field *model.Field) {
	if !r.f.cfg.IncludeValidation {
		return
	}

	r.f.attach(field, model.NewConstraint(model.ConstraintValid))
}
