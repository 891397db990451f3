package rules

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// DefaultRule records the default value of a property as a Go literal the
// generated constructor assigns.
type DefaultRule struct {
	f *Factory
}

// Apply implements FieldRule.
func (r *DefaultRule) Apply(ctx Context, field *model.Field) {
	value := ctx.Node.Get(kwDefault)
	if value == nil || value.IsNull() {
		return
	}

	literal, ok := r.literal(field.Type, value)
	if !ok {
		r.f.logger.Debug("default value skipped",
			zap.String("field", field.Name),
			zap.String("type", field.Type.Name),
			zap.Int("line", value.Line()),
		)

		return
	}

	field.Default = literal
}

// literal renders value as a Go expression of type t.
func (r *DefaultRule) literal(t model.TypeRef, value *schema.Node) (string, bool) {
	if t.Class != model.NoClass {
		return r.classLiteral(t, value)
	}

	switch {
	case t.Category == model.CategoryString && value.IsString():
		if t.Name == model.StringType.Name {
			return strconv.Quote(value.Text()), true
		}

		return t.Name + "(" + strconv.Quote(value.Text()) + ")", true
	case t.Integer && value.IsInteger():
		return value.Text(), true
	case t.Numeric && !t.Integer && value.IsNumber():
		return value.Text(), true
	case t.Name == model.BoolType.Name && value.IsBool():
		return strconv.FormatBool(value.Bool()), true
	case t.Category == model.CategoryCollection && value.IsArray() && t.Elem != nil:
		elems := make([]string, 0, value.Len())
		for _, e := range value.Elements() {
			lit, ok := r.literal(*t.Elem, e)
			if !ok {
				return "", false
			}

			elems = append(elems, lit)
		}

		return t.Name + "{" + strings.Join(elems, ", ") + "}", true
	default:
		return "", false
	}
}

// classLiteral renders enum constants and constructors of generated structs.
func (r *DefaultRule) classLiteral(t model.TypeRef, value *schema.Node) (string, bool) {
	cls := r.f.arena.Class(t.Class)
	if cls == nil {
		return "", false
	}

	switch cls.Kind {
	case model.KindEnum:
		if !value.IsString() {
			return "", false
		}

		for _, v := range cls.EnumValues {
			if v.Value == value.Text() {
				return v.Name, true
			}
		}

		return "", false
	case model.KindStruct:
		if !value.IsObject() {
			return "", false
		}

		return "New" + cls.Name + "()", true
	default:
		return "", false
	}
}
