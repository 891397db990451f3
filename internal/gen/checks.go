package gen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/naming"
)

// checkData is one rendered validation statement of a Validate method.
type checkData struct {
	// Comment is written above the statement, e.g. for skipped checks.
	Comment string
	// Body is the Go statement; empty when only the comment is emitted.
	Body string
}

// patternVar is a package-level compiled regular expression.
type patternVar struct {
	Name    string
	Pattern string
}

// checkBuilder renders the constraints of one class into Go statements.
type checkBuilder struct {
	arena    *model.Arena
	class    *model.Class
	receiver string
	imports  importSet

	checks   []checkData
	patterns []patternVar
	support  bool
}

func newCheckBuilder(arena *model.Arena, cls *model.Class, receiver string, imports importSet) *checkBuilder {
	return &checkBuilder{
		arena:    arena,
		class:    cls,
		receiver: receiver,
		imports:  imports,
	}
}

// field renders every constraint of a field, plus the value check of enum
// fields.
func (b *checkBuilder) field(f *model.Field) {
	expr := b.receiver + "." + f.Name

	for _, c := range f.Constraints() {
		b.constraint(f, expr, c)
	}

	if cls := b.arena.Class(f.Type.Class); cls != nil && cls.Kind == model.KindEnum {
		b.add(fmt.Sprintf("if %s != \"\" && !%s.Valid() {\n\terrs = append(errs, fmt.Errorf(%q, %s))\n}",
			expr, expr, f.JSONName+" has unknown value %q", expr))
	}
}

func (b *checkBuilder) constraint(f *model.Field, expr string, c model.Constraint) {
	t := f.Type

	switch c.Kind {
	case model.ConstraintNotBlank:
		b.imports.add("strings")
		b.violation(fmt.Sprintf("strings.TrimSpace(%s) == \"\"", stringExpr(expr, t)), message(f, c, "must not be blank"))
	case model.ConstraintNotEmpty:
		b.violation(fmt.Sprintf("len(%s) == 0", expr), message(f, c, "must not be empty"))
	case model.ConstraintNotNull:
		if t.Category.Nillable() {
			b.violation(expr+" == nil", message(f, c, "must not be null"))
		}
	case model.ConstraintPattern:
		b.pattern(f, expr, c)
	case model.ConstraintEmail:
		b.support = true
		b.violation(fmt.Sprintf("%s && !validEmail(%s)", presenceExpr(expr, t), stringExpr(expr, t)),
			message(f, c, "must be a well-formed email address"))
	case model.ConstraintURL:
		b.support = true
		b.violation(fmt.Sprintf("%s && !validURL(%s)", presenceExpr(expr, t), stringExpr(expr, t)),
			message(f, c, "must be a valid URL"))
	case model.ConstraintDecimalMin:
		b.bound(f, expr, c, "<", "greater than")
	case model.ConstraintDecimalMax:
		b.bound(f, expr, c, ">", "less than")
	case model.ConstraintSize:
		b.size(f, expr, c)
	case model.ConstraintDigits:
		b.digits(f, expr, c)
	case model.ConstraintMultipleOf:
		b.multipleOf(f, expr, c)
	case model.ConstraintValid:
		b.cascade(f, expr)
	}
}

func (b *checkBuilder) pattern(f *model.Field, expr string, c model.Constraint) {
	p, _ := c.Param(model.ParamRegexp)

	if _, err := regexp.Compile(p); err != nil {
		b.checks = append(b.checks, checkData{
			Comment: fmt.Sprintf("%s: pattern %q is not supported by package regexp and is not checked.", f.JSONName, p),
		})

		return
	}

	name := naming.Unexported(b.class.Name) + naming.Exported(f.Name) + "Pattern"
	b.patterns = append(b.patterns, patternVar{Name: name, Pattern: strconv.Quote(p)})
	b.imports.add("regexp")

	b.violation(fmt.Sprintf("%s && !%s.MatchString(%s)", presenceExpr(expr, f.Type), name, stringExpr(expr, f.Type)),
		message(f, c, "must match pattern "+p))
}

// bound renders a numeric bound. violation is the operator rejecting values
// of an inclusive bound; exclusive bounds reject the bound itself too.
func (b *checkBuilder) bound(f *model.Field, expr string, c model.Constraint, violation, relation string) {
	value, _ := c.Param(model.ParamValue)
	inclusive, _ := c.Param(model.ParamInclusive)

	text := relation + " or equal to"
	if inclusive != "true" {
		violation += "="
		text = relation
	}

	b.violation(fmt.Sprintf("%s %s %s", numericExpr(expr, f.Type, value), violation, value),
		message(f, c, fmt.Sprintf("must be %s %s", text, value)))
}

func (b *checkBuilder) size(f *model.Field, expr string, c model.Constraint) {
	length := "len(" + expr + ")"
	if f.Type.Category == model.CategoryString {
		b.imports.add("unicode/utf8")
		length = "utf8.RuneCountInString(" + stringExpr(expr, f.Type) + ")"
	}

	minValue, hasMin := c.Param(model.ParamMin)
	maxValue, hasMax := c.Param(model.ParamMax)

	var conds []string
	var text string

	switch {
	case hasMin && hasMax:
		conds = append(conds, length+" < "+minValue, length+" > "+maxValue)
		text = fmt.Sprintf("size must be between %s and %s", minValue, maxValue)
	case hasMin:
		conds = append(conds, length+" < "+minValue)
		text = "size must be at least " + minValue
	default:
		conds = append(conds, length+" > "+maxValue)
		text = "size must be at most " + maxValue
	}

	cond := strings.Join(conds, " || ")
	if len(conds) > 1 {
		cond = "(" + cond + ")"
	}

	b.violation(presenceExpr(expr, f.Type)+" && "+cond, message(f, c, text))
}

func (b *checkBuilder) digits(f *model.Field, expr string, c model.Constraint) {
	integer, _ := c.Param(model.ParamInteger)
	fraction, _ := c.Param(model.ParamFraction)

	b.support = true

	value := stringExpr(expr, f.Type)
	cond := fmt.Sprintf("%s && !validDigits(%s, %s, %s)", presenceExpr(expr, f.Type), value, integer, fraction)

	if f.Type.Numeric {
		b.imports.add("strconv")
		value = fmt.Sprintf("strconv.FormatFloat(float64(%s), 'f', -1, 64)", expr)
		cond = fmt.Sprintf("!validDigits(%s, %s, %s)", value, integer, fraction)
	}

	b.violation(cond, message(f, c,
		fmt.Sprintf("numeric value out of bounds (<%s digits>.<%s digits> expected)", integer, fraction)))
}

func (b *checkBuilder) multipleOf(f *model.Field, expr string, c model.Constraint) {
	value, _ := c.Param(model.ParamValue)

	cond := fmt.Sprintf("%s%%%s != 0", expr, value)
	if !f.Type.Integer || !isIntegral(value) {
		b.support = true
		cond = fmt.Sprintf("!isMultipleOf(float64(%s), %s)", expr, value)
	}

	b.violation(cond, message(f, c, "must be a multiple of "+value))
}

// cascade validates nested generated structs.
func (b *checkBuilder) cascade(f *model.Field, expr string) {
	id, ok := elemClass(f.Type)
	if cls := b.arena.Class(id); !ok || cls == nil || cls.Kind != model.KindStruct {
		return
	}

	wrap := fmt.Sprintf("errs = append(errs, fmt.Errorf(\"%s: %%w\", err))", f.JSONName)
	if f.Type.Class != model.NoClass {
		b.add(fmt.Sprintf("if %s != nil {\n\tif err := %s.Validate(); err != nil {\n\t\t%s\n\t}\n}", expr, expr, wrap))
		return
	}

	wrap = fmt.Sprintf("errs = append(errs, fmt.Errorf(\"%s[%%v]: %%w\", k, err))", f.JSONName)
	b.add(fmt.Sprintf("for k, item := range %s {\n\tif item == nil {\n\t\tcontinue\n\t}\n\n\tif err := item.Validate(); err != nil {\n\t\t%s\n\t}\n}", expr, wrap))
}

func (b *checkBuilder) violation(cond, msg string) {
	b.add(fmt.Sprintf("if %s {\n\terrs = append(errs, errors.New(%q))\n}", cond, msg))
}

func (b *checkBuilder) add(body string) {
	b.checks = append(b.checks, checkData{Body: body})
}

// message returns the constraint message, defaulting to "<json name> <text>".
func message(f *model.Field, c model.Constraint, text string) string {
	if msg := c.Message(); msg != "" {
		if c.Kind == model.ConstraintPattern {
			return f.JSONName + " " + msg
		}

		return msg
	}

	return f.JSONName + " " + text
}

// numericExpr converts expr to float64 when value is not representable in
// the field's integer type.
func numericExpr(expr string, t model.TypeRef, value string) string {
	if t.Integer && !isIntegral(value) {
		return "float64(" + expr + ")"
	}

	return expr
}

func isIntegral(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}
