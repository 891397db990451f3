package model

import (
	"jsonschema-generator/internal/common"
)

// Category is the broad value category of a field type. It is computed once
// by type resolution and drives which constraints a field may carry.
type Category int

const (
	CategoryUnknown    Category = iota
	CategoryString              // string and string-backed named types
	CategoryCollection          // slices and arrays
	CategoryPrimitive           // numbers, booleans, enums: never nil, never optional
	CategoryReference           // pointers, maps, interfaces: nillable
)

// String returns a human-readable representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryString:
		return "string"
	case CategoryCollection:
		return "collection"
	case CategoryPrimitive:
		return "primitive"
	case CategoryReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// Nillable reports whether values of the category have nil as zero value.
func (c Category) Nillable() bool {
	return c == CategoryCollection || c == CategoryReference
}

// NoClass marks a TypeRef that does not point at a generated class.
const NoClass ClassID = -1

// TypeRef describes the Go type of a field or method.
type TypeRef struct {
	// Name is the Go type expression, e.g. "string", "[]*Address", "*time.Time".
	Name string
	// Import is the package path the expression needs, if any.
	Import string
	// Category is the value category of the type.
	Category Category
	// Numeric is true for integer and floating point types.
	Numeric bool
	// Integer is true for integer types.
	Integer bool
	// Elem is the element type of collections and maps.
	Elem *TypeRef
	// Class is the generated class this type refers to, or NoClass.
	Class ClassID
}

// IsPrimitive returns true if the type is a non-nillable scalar.
func (t TypeRef) IsPrimitive() bool {
	return t.Category == CategoryPrimitive
}

// IsZero returns true for an unset TypeRef.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// Imports returns the import paths needed by the type, including element types.
func (t TypeRef) Imports() []string {
	var out []string
	if t.Import != "" {
		out = append(out, t.Import)
	}

	if t.Elem != nil {
		out = append(out, t.Elem.Imports()...)
	}

	return out
}

// Common type references.
var (
	StringType  = TypeRef{Name: "string", Category: CategoryString, Class: NoClass}
	Int64Type   = TypeRef{Name: "int64", Category: CategoryPrimitive, Numeric: true, Integer: true, Class: NoClass}
	Float64Type = TypeRef{Name: "float64", Category: CategoryPrimitive, Numeric: true, Class: NoClass}
	BoolType    = TypeRef{Name: "bool", Category: CategoryPrimitive, Class: NoClass}
	AnyType     = TypeRef{Name: "any", Category: CategoryReference, Class: NoClass}
	TimeType    = TypeRef{Name: "*time.Time", Import: "time", Category: CategoryReference, Class: NoClass}
)

// SliceOf returns the collection type with the given element type.
func SliceOf(elem TypeRef) TypeRef {
	return TypeRef{
		Name:     "[]" + elem.Name,
		Category: CategoryCollection,
		Elem:     &elem,
		Class:    NoClass,
	}
}

// MapOf returns the string-keyed map type with the given value type.
func MapOf(elem TypeRef) TypeRef {
	return TypeRef{
		Name:     "map[string]" + elem.Name,
		Category: CategoryReference,
		Elem:     &elem,
		Class:    NoClass,
	}
}

// Visibility of a field.
type Visibility int

const (
	Public Visibility = iota
	Private
)

// String returns a human-readable representation of the Visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return common.UnknownStr
	}
}

// ClassKind distinguishes generated type shapes.
type ClassKind int

const (
	KindStruct  ClassKind = iota // struct with fields and methods
	KindBuilder                  // separate builder for a struct
	KindEnum                     // string-backed enum with constants
)

// String returns a human-readable representation of the ClassKind.
func (k ClassKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindBuilder:
		return "builder"
	case KindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// MethodKind distinguishes generated methods.
type MethodKind int

const (
	MethodGetter MethodKind = iota
	MethodSetter
	MethodBuilder
)

// String returns a human-readable representation of the MethodKind.
func (k MethodKind) String() string {
	switch k {
	case MethodGetter:
		return "getter"
	case MethodSetter:
		return "setter"
	case MethodBuilder:
		return "builder"
	default:
		return common.UnknownStr
	}
}

// Marker is a nullness annotation rendered next to a field.
type Marker int

const (
	MarkerNonnull Marker = iota
	MarkerNullable
)

// String returns the marker text as rendered in generated code.
func (m Marker) String() string {
	switch m {
	case MarkerNonnull:
		return "nonnull"
	case MarkerNullable:
		return "nullable"
	default:
		return common.UnknownStr
	}
}

// Tag is a single struct tag key/value pair.
type Tag struct {
	Key   string
	Value string
}

// EnumValue is one constant of an enum class.
type EnumValue struct {
	// Name is the Go constant name.
	Name string
	// Value is the JSON value.
	Value string
}
