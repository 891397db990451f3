package naming

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// KeywordGoName overrides the derived identifier of a property or class.
const KeywordGoName = "goName"

// Strategy maps raw schema names to Go identifiers.
type Strategy interface {
	// PropertyName returns the unexported field identifier of a property.
	PropertyName(raw string, node *schema.Node) string
	// ExportedPropertyName returns the field identifier of a public field.
	ExportedPropertyName(raw string, node *schema.Node) string
	// GetterName returns the getter method name of a property.
	GetterName(raw string, t model.TypeRef, node *schema.Node) string
	// SetterName returns the setter method name of a property.
	SetterName(raw string, node *schema.Node) string
	// BuilderName returns the builder method name of a property.
	BuilderName(raw string, node *schema.Node) string
	// ClassName returns the type name generated for a schema.
	ClassName(raw string, node *schema.Node) string
	// EnumConstantName returns the constant name of an enum value.
	EnumConstantName(class, value string) string
}

// reservedMethods are methods every generated struct may carry.
var reservedMethods = map[string]bool{
	"Validate":      true,
	"MarshalJSON":   true,
	"UnmarshalJSON": true,
	"String":        true,
	"Build":         true,
}

// commonInitialisms are rendered fully upper case.
var commonInitialisms = map[string]bool{
	"api": true, "ascii": true, "cpu": true, "css": true, "dns": true, "eof": true,
	"guid": true, "html": true, "http": true, "https": true, "id": true, "ip": true,
	"json": true, "lhs": true, "qps": true, "ram": true, "rhs": true, "rpc": true,
	"sla": true, "smtp": true, "sql": true, "ssh": true, "tcp": true, "tls": true,
	"ttl": true, "udp": true, "ui": true, "uid": true, "uri": true, "url": true,
	"utf8": true, "uuid": true, "vm": true, "xml": true, "xsrf": true, "xss": true,
}

// GoStrategy derives idiomatic Go identifiers: exported names in MixedCaps
// with common initialisms upper cased, unexported names in mixedCaps with
// Go keywords suffixed by "_".
type GoStrategy struct{}

// NewGoStrategy creates a GoStrategy.
func NewGoStrategy() *GoStrategy {
	return &GoStrategy{}
}

// PropertyName implements Strategy.
func (s *GoStrategy) PropertyName(raw string, node *schema.Node) string {
	return Unexported(baseName(raw, node))
}

// ExportedPropertyName implements Strategy.
func (s *GoStrategy) ExportedPropertyName(raw string, node *schema.Node) string {
	return Exported(baseName(raw, node))
}

// GetterName implements Strategy. Names clashing with generated methods get a Get prefix.
func (s *GoStrategy) GetterName(raw string, _ model.TypeRef, node *schema.Node) string {
	name := Exported(baseName(raw, node))
	if reservedMethods[name] {
		return "Get" + name
	}

	return name
}

// SetterName implements Strategy.
func (s *GoStrategy) SetterName(raw string, node *schema.Node) string {
	return "Set" + Exported(baseName(raw, node))
}

// BuilderName implements Strategy.
func (s *GoStrategy) BuilderName(raw string, node *schema.Node) string {
	return "With" + Exported(baseName(raw, node))
}

// ClassName implements Strategy.
func (s *GoStrategy) ClassName(raw string, node *schema.Node) string {
	return Exported(baseName(raw, node))
}

// EnumConstantName implements Strategy.
func (s *GoStrategy) EnumConstantName(class, value string) string {
	suffix := Exported(value)
	if suffix == "_" || suffix == "" {
		suffix = "Empty"
	}

	return class + strings.TrimPrefix(suffix, "_")
}

func baseName(raw string, node *schema.Node) string {
	if override := node.Get(KeywordGoName).Text(); override != "" {
		return override
	}

	return raw
}

// Exported converts a raw name to an exported Go identifier.
func Exported(raw string) string {
	tokens := Tokenize(raw)
	if len(tokens) == 0 {
		return "_"
	}

	caser := cases.Title(language.Und)

	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(word(caser, tok))
	}

	return leadingDigit(b.String())
}

// Unexported converts a raw name to an unexported Go identifier.
func Unexported(raw string) string {
	tokens := Tokenize(raw)
	if len(tokens) == 0 {
		return "_"
	}

	caser := cases.Title(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.WriteString(lower.String(tokens[0]))

	for _, tok := range tokens[1:] {
		b.WriteString(word(caser, tok))
	}

	name := leadingDigit(b.String())
	if token.IsKeyword(name) || predeclared[name] {
		name += "_"
	}

	return name
}

// Singular returns the singular form of an English plural noun, used to
// name the element type of array properties.
func Singular(word string) string {
	lower := strings.ToLower(word)

	switch {
	case strings.HasSuffix(lower, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "sses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"):
		return word
	case strings.HasSuffix(lower, "s") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

func word(caser cases.Caser, tok string) string {
	if commonInitialisms[strings.ToLower(tok)] {
		return strings.ToUpper(tok)
	}

	return caser.String(tok)
}

func leadingDigit(name string) string {
	if r := []rune(name)[0]; unicode.IsDigit(r) {
		return "_" + name
	}

	return name
}

// predeclared identifiers that would shadow builtins when used as field
// or parameter names.
var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "error": true, "string": true,
	"int": true, "float64": true, "len": true, "new": true, "nil": true,
	"true": true, "false": true, "append": true, "copy": true, "make": true,
}
