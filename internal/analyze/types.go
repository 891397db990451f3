package analyze

import (
	"fmt"
	"strings"

	"jsonschema-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "time"
	Name    string // e.g., "Duration"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsBuiltin returns true for predeclared types such as string or int32.
func (t TypeID) IsBuiltin() bool {
	return t.PkgPath == ""
}

// WrapKind is a type constructor applied around a named type.
type WrapKind int

const (
	WrapSlice   WrapKind = iota // []T
	WrapPointer                 // *T
)

// String returns a human-readable representation of the WrapKind.
func (k WrapKind) String() string {
	switch k {
	case WrapSlice:
		return "slice"
	case WrapPointer:
		return "pointer"
	default:
		return common.UnknownStr
	}
}

// TypeExpr is a parsed goType value: a named type with an optional chain
// of slice and pointer constructors, outermost first.
type TypeExpr struct {
	Wraps []WrapKind
	ID    TypeID
}

// ParseTypeExpr parses goType values such as "time.Duration",
// "*github.com/acme/money.Amount" or "[]string".
func ParseTypeExpr(s string) (TypeExpr, error) {
	var expr TypeExpr

	rest := strings.TrimSpace(s)
	for {
		switch {
		case strings.HasPrefix(rest, "[]"):
			expr.Wraps = append(expr.Wraps, WrapSlice)
			rest = rest[2:]
		case strings.HasPrefix(rest, "*"):
			expr.Wraps = append(expr.Wraps, WrapPointer)
			rest = rest[1:]
		default:
			if rest == "" {
				return TypeExpr{}, fmt.Errorf("type expression %q has no type name", s)
			}

			if strings.ContainsAny(rest, "[]* ") {
				return TypeExpr{}, fmt.Errorf("unsupported type expression %q", s)
			}

			expr.ID.PkgPath, expr.ID.Name = common.SplitQualified(rest)
			if expr.ID.Name == "" {
				return TypeExpr{}, fmt.Errorf("type expression %q has no type name", s)
			}

			return expr, nil
		}
	}
}
