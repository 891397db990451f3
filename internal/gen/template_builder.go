package gen

import (
	"slices"
	"strconv"
	"strings"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/naming"
)

// templateData holds all data needed for one generated file.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []importSpec
	Patterns    []patternVar
	Struct      *structData
	Enum        *enumData
}

// structData describes a generated struct and everything emitted with it.
type structData struct {
	Name     string
	Receiver string
	Comment  string
	Fields   []fieldData
	Methods  []methodData
	Builder  *builderData
	Mirror   *mirrorData
	Checks   []checkData
}

// fieldData is one struct field.
type fieldData struct {
	Name    string
	Type    string
	Tag     string
	Comment string
	Default string
}

// methodData is a getter, setter or fluent builder method.
type methodData struct {
	Kind     model.MethodKind
	Name     string
	Comment  string
	Field    string
	Param    string
	Type     string
	Returns  string
	Optional bool
	Presence string
}

// builderData is a separate <Class>Builder type.
type builderData struct {
	Name     string
	Receiver string
	Methods  []methodData
}

// mirrorData is the exported shadow struct used to (un)marshal unexported fields.
type mirrorData struct {
	Name   string
	Fields []mirrorField
}

// mirrorField maps a struct field to its exported shadow.
type mirrorField struct {
	Name  string
	Field string
	Type  string
	Tag   string
}

// enumData is a string-backed enum type.
type enumData struct {
	Name     string
	Receiver string
	Comment  string
	Values   []enumValueData
}

// enumValueData is one enum constant.
type enumValueData struct {
	Name  string
	Value string
}

// buildStructData constructs the template data of a struct class. The
// returned flag reports whether the validation support helpers are used.
func (g *Generator) buildStructData(arena *model.Arena, cls *model.Class) (*templateData, bool) {
	imports := make(importSet)

	data := &templateData{
		PackageName: g.config.PackageName,
		Filename:    fileName(cls.Name),
	}

	fields := arena.FieldsOf(cls.ID)
	methods := arena.MethodsOf(cls.ID)

	s := &structData{
		Name:     cls.Name,
		Receiver: receiverName(cls.Name, paramNames(methods)),
		Comment:  g.comment(cls.Doc.Lines(), ""),
	}

	private := false

	for _, f := range fields {
		imports.addType(f.Type)

		if f.Visibility == model.Private {
			private = true
		}

		s.Fields = append(s.Fields, fieldData{
			Name:    f.Name,
			Type:    f.Type.Name,
			Tag:     structTag(f.Tags),
			Comment: g.comment(fieldLines(f), "\t"),
			Default: f.Default,
		})
	}

	for _, m := range methods {
		s.Methods = append(s.Methods, g.methodData(arena, m, s.Receiver))
	}

	if b := arena.Class(cls.Builder); b != nil {
		builderMethods := arena.MethodsOf(b.ID)

		s.Builder = &builderData{
			Name:     b.Name,
			Receiver: receiverName(b.Name, paramNames(builderMethods)),
		}

		for _, m := range builderMethods {
			s.Builder.Methods = append(s.Builder.Methods, g.methodData(arena, m, s.Builder.Receiver))
		}
	}

	if private {
		imports.add("encoding/json")
		s.Mirror = mirror(cls, fields)
	}

	checks := newCheckBuilder(arena, cls, s.Receiver, imports)
	if g.config.IncludeValidation {
		for _, f := range fields {
			checks.field(f)
		}
	}

	s.Checks = checks.checks
	if len(s.Checks) > 0 {
		imports.add("errors")
	}

	for _, c := range s.Checks {
		if strings.Contains(c.Body, "fmt.") {
			imports.add("fmt")
		}
	}

	data.Struct = s
	data.Patterns = checks.patterns
	data.Imports = imports.sorted()

	return data, checks.support
}

func (g *Generator) methodData(arena *model.Arena, m *model.Method, receiver string) methodData {
	f := arena.Field(m.Field)

	md := methodData{
		Kind:     m.Kind,
		Name:     m.Name,
		Comment:  g.comment(m.Doc.Lines(), ""),
		Field:    f.Name,
		Param:    m.Param,
		Type:     f.Type.Name,
		Returns:  m.Returns.Name,
		Optional: m.Optional,
	}

	if m.Optional {
		md.Presence = presenceExpr(receiver+"."+f.Name, f.Type)
	}

	if md.Comment == "" && m.Kind == model.MethodBuilder {
		md.Comment = g.comment([]string{m.Name + " sets " + f.JSONName + "."}, "")
	}

	return md
}

// buildEnumData constructs the template data of an enum class.
func (g *Generator) buildEnumData(cls *model.Class) *templateData {
	e := &enumData{
		Name:     cls.Name,
		Receiver: receiverName(cls.Name, nil),
		Comment:  g.comment(cls.Doc.Lines(), ""),
	}

	for _, v := range cls.EnumValues {
		e.Values = append(e.Values, enumValueData{Name: v.Name, Value: strconv.Quote(v.Value)})
	}

	return &templateData{
		PackageName: g.config.PackageName,
		Filename:    fileName(cls.Name),
		Enum:        e,
	}
}

func mirror(cls *model.Class, fields []*model.Field) *mirrorData {
	m := &mirrorData{Name: naming.Unexported(cls.Name) + "JSON"}

	for _, f := range fields {
		m.Fields = append(m.Fields, mirrorField{
			Name:  naming.Exported(f.Name),
			Field: f.Name,
			Type:  f.Type.Name,
			Tag:   structTag(f.Tags),
		})
	}

	return m
}

// comment renders doc lines as a // comment block, each line prefixed by indent.
func (g *Generator) comment(lines []string, indent string) string {
	if !g.config.GenerateComments || len(lines) == 0 {
		return ""
	}

	var sb strings.Builder

	for _, line := range lines {
		for _, l := range strings.Split(line, "\n") {
			sb.WriteString(indent)
			sb.WriteString(strings.TrimRight("// "+l, " \t\r"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// fieldLines returns the doc lines of a field followed by its nullness markers.
func fieldLines(f *model.Field) []string {
	lines := slices.Clone(f.Doc.Lines())

	markers := f.Markers()
	if len(markers) > 0 && len(lines) > 0 {
		lines = append(lines, "")
	}

	for _, m := range markers {
		lines = append(lines, "+"+m.String())
	}

	return lines
}

// structTag renders tags as a raw string literal.
func structTag(tags []model.Tag) string {
	if len(tags) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Key+":"+strconv.Quote(t.Value))
	}

	tag := strings.Join(parts, " ")
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}

	return "`" + tag + "`"
}

func paramNames(methods []*model.Method) map[string]bool {
	names := make(map[string]bool, len(methods))
	for _, m := range methods {
		if m.Param != "" {
			names[m.Param] = true
		}
	}

	return names
}
