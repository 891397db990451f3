package model

import (
	"jsonschema-generator/internal/common"
)

// ConstraintKind is the kind of validation rule attached to a field.
type ConstraintKind int

const (
	ConstraintPattern    ConstraintKind = iota // value matches a regular expression
	ConstraintNotBlank                         // string has non-whitespace content
	ConstraintNotEmpty                         // collection has at least one element
	ConstraintNotNull                          // value is present
	ConstraintEmail                            // string is an email address
	ConstraintURL                              // string is a URL
	ConstraintDecimalMin                       // number is above a lower bound
	ConstraintDecimalMax                       // number is below an upper bound
	ConstraintSize                             // string length or collection size within bounds
	ConstraintDigits                           // number of integer/fraction digits within bounds
	ConstraintMultipleOf                       // number is a multiple of a factor
	ConstraintValid                            // nested values are validated too
)

// Constraint parameter names.
const (
	ParamMessage   = "message"
	ParamRegexp    = "regexp"
	ParamValue     = "value"
	ParamInclusive = "inclusive"
	ParamMin       = "min"
	ParamMax       = "max"
	ParamInteger   = "integer"
	ParamFraction  = "fraction"
)

// String returns a human-readable representation of the ConstraintKind.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPattern:
		return "pattern"
	case ConstraintNotBlank:
		return "not-blank"
	case ConstraintNotEmpty:
		return "not-empty"
	case ConstraintNotNull:
		return "not-null"
	case ConstraintEmail:
		return "email"
	case ConstraintURL:
		return "url"
	case ConstraintDecimalMin:
		return "decimal-min"
	case ConstraintDecimalMax:
		return "decimal-max"
	case ConstraintSize:
		return "size"
	case ConstraintDigits:
		return "digits"
	case ConstraintMultipleOf:
		return "multiple-of"
	case ConstraintValid:
		return "valid"
	default:
		return common.UnknownStr
	}
}

// Compatible reports whether a constraint of this kind may attach to a field
// of the given category. String-only kinds never attach to anything else.
func (k ConstraintKind) Compatible(c Category) bool {
	switch k {
	case ConstraintPattern, ConstraintNotBlank, ConstraintEmail, ConstraintURL:
		return c == CategoryString
	case ConstraintNotEmpty:
		return c == CategoryCollection
	case ConstraintSize:
		return c == CategoryString || c == CategoryCollection
	case ConstraintDecimalMin, ConstraintDecimalMax, ConstraintMultipleOf:
		return c == CategoryPrimitive
	case ConstraintDigits:
		return c == CategoryPrimitive || c == CategoryString
	case ConstraintValid:
		return c == CategoryReference || c == CategoryCollection
	case ConstraintNotNull:
		return c != CategoryUnknown
	default:
		return false
	}
}

// Param is a named constraint parameter.
type Param struct {
	Name  string
	Value string
}

// Constraint is a validation rule to render on a field.
type Constraint struct {
	Kind   ConstraintKind
	Params []Param
}

// NewConstraint creates a constraint from alternating name/value pairs.
func NewConstraint(kind ConstraintKind, nameValues ...string) Constraint {
	c := Constraint{Kind: kind}
	for i := 0; i+1 < len(nameValues); i += 2 {
		c.Params = append(c.Params, Param{Name: nameValues[i], Value: nameValues[i+1]})
	}

	return c
}

// Param returns the value of the named parameter.
func (c Constraint) Param(name string) (string, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p.Value, true
		}
	}

	return "", false
}

// Message returns the violation message, or "" if none was set.
func (c Constraint) Message() string {
	msg, _ := c.Param(ParamMessage)
	return msg
}
