package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/model"
)

const contactSchema = `{
	"type": "object",
	"properties": {
		"email": {"type": "string"},
		"age": {"type": "integer"},
		"address": {"type": "object", "properties": {"city": {"type": "string"}}},
		"tags": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["address"]
}`

func TestPropertyAccessors(t *testing.T) {
	p := newPass(t, config.Default(), contactSchema)
	p.mustRun()

	assert.Equal(t, []string{"Email", "SetEmail", "Age", "SetAge", "Address", "SetAddress", "Tags", "SetTags"},
		p.methodNames("Root"))

	getter := p.method("Root", "Address")
	assert.Equal(t, model.MethodGetter, getter.Kind)
	assert.Equal(t, "*Address", getter.Returns.Name)
	assert.False(t, getter.Optional)

	setter := p.method("Root", "SetAge")
	assert.Equal(t, model.MethodSetter, setter.Kind)
	assert.Equal(t, "age", setter.Param)
	assert.Equal(t, p.field("Root", "age").ID, setter.Field)
}

func TestPropertyFieldTags(t *testing.T) {
	p := newPass(t, config.Default(), contactSchema)
	p.mustRun()

	tag, ok := p.field("Root", "email").Tag(TagJSON)
	require.True(t, ok)
	assert.Equal(t, "email", tag)

	tag, _ = p.field("Root", "address").Tag(TagJSON)
	assert.Equal(t, "address,omitempty", tag)

	tag, _ = p.field("Root", "tags").Tag(TagJSON)
	assert.Equal(t, "tags,omitempty", tag)
}

func TestPropertyExternalAccessors(t *testing.T) {
	cfg := config.Default()
	cfg.IncludeGetters = false
	cfg.IncludeSetters = false
	cfg.ExternalAccessors = true

	p := newPass(t, cfg, contactSchema)
	p.mustRun()

	field := p.field("Root", "email")
	assert.Equal(t, model.Private, field.Visibility)
	assert.Empty(t, p.methodNames("Root"))
}

func TestPropertyOptionalGetters(t *testing.T) {
	cfg := config.Default()
	cfg.UseOptionalForGetters = true

	p := newPass(t, cfg, contactSchema)
	p.mustRun()

	assert.True(t, p.method("Root", "Email").Optional)
	assert.True(t, p.method("Root", "Tags").Optional)
	assert.False(t, p.method("Root", "Age").Optional, "primitives are never optional")
	assert.False(t, p.method("Root", "Address").Optional, "required properties are never optional")
}

func TestPropertyDeclaredOptional(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"nick": {"type": "string", "goOptional": true},
			"alias": {"type": "string"},
			"count": {"type": "integer", "goOptional": true}
		},
		"goOptional": ["alias"]
	}`)
	p.mustRun()

	assert.True(t, p.method("Root", "Nick").Optional)
	assert.True(t, p.method("Root", "Alias").Optional)
	assert.False(t, p.method("Root", "Count").Optional)
}

func TestPropertyFluentBuilders(t *testing.T) {
	cfg := config.Default()
	cfg.GenerateBuilders = true

	p := newPass(t, cfg, contactSchema)
	p.mustRun()

	builder := p.method("Root", "WithEmail")
	assert.Equal(t, model.MethodBuilder, builder.Kind)
	assert.Equal(t, "*Root", builder.Returns.Name)
	assert.Equal(t, "email", builder.Param)

	_, ok := p.arena.ClassByName("RootBuilder")
	assert.False(t, ok)
	assert.Equal(t, model.NoClass, p.class("Root").Builder)
}

func TestPropertyBuilderTypes(t *testing.T) {
	cfg := config.Default()
	cfg.GenerateBuilders = true
	cfg.UseBuilderTypes = true

	p := newPass(t, cfg, contactSchema)
	p.mustRun()

	root := p.class("Root")
	builder := p.class("RootBuilder")
	assert.Equal(t, model.KindBuilder, builder.Kind)
	assert.Equal(t, builder.ID, root.Builder)
	assert.Equal(t, root.ID, builder.BuilderOf)

	with := p.method("RootBuilder", "WithEmail")
	assert.Equal(t, "*RootBuilder", with.Returns.Name)
	assert.Equal(t, p.field("Root", "email").ID, with.Field)

	assert.NotContains(t, p.methodNames("Root"), "WithEmail")
	assert.Contains(t, p.methodNames("AddressBuilder"), "WithCity")
}

func TestPropertyBuilderStylesAreExclusive(t *testing.T) {
	for _, useTypes := range []bool{false, true} {
		cfg := config.Default()
		cfg.GenerateBuilders = true
		cfg.UseBuilderTypes = useTypes

		p := newPass(t, cfg, contactSchema)
		p.mustRun()

		count := 0
		for _, cls := range p.arena.Classes() {
			for _, m := range p.arena.MethodsOf(cls.ID) {
				if m.Kind == model.MethodBuilder && m.Name == "WithEmail" {
					count++
				}
			}
		}

		assert.Equal(t, 1, count, "use builder types: %v", useTypes)
	}
}

func TestPropertyDocumentation(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"title": "Person",
		"description": "A person.",
		"properties": {
			"e-mail": {
				"type": "string",
				"goName": "contact",
				"title": "Contact",
				"description": "Where to reach the person.",
				"$comment": "Validated upstream."
			}
		},
		"required": ["e-mail"]
	}`)
	p.mustRun()

	assert.Equal(t, []string{"Person", "A person."}, p.class("Root").Doc.Lines())

	field := p.field("Root", "contact")
	assert.Equal(t, "e-mail", field.JSONName)
	assert.Equal(t, []string{
		"Contact",
		`Corresponds to the "e-mail" property.`,
		"Where to reach the person.",
		"Validated upstream.",
		model.RequiredMarker,
	}, field.Doc.Lines())

	assert.Equal(t, field.Doc.Lines(), p.method("Root", "Contact").Doc.Lines())
	assert.Equal(t, field.Doc.Lines(), p.method("Root", "SetContact").Doc.Lines())
}

func TestPropertyReservedGetterName(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {"validate": {"type": "boolean"}}
	}`)
	p.mustRun()

	assert.Equal(t, []string{"GetValidate", "SetValidate"}, p.methodNames("Root"))
}

func TestPropertyDuplicateFieldName(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"foo_bar": {"type": "string"},
			"fooBar": {"type": "string"}
		}
	}`)

	_, err := p.run()
	require.ErrorIs(t, err, model.ErrDuplicateField)
}

func TestPropertyGoType(t *testing.T) {
	duration := model.TypeRef{
		Name:     "time.Duration",
		Import:   "time",
		Category: model.CategoryPrimitive,
		Numeric:  true,
		Integer:  true,
		Class:    model.NoClass,
	}

	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"timeout": {"type": "integer", "goType": "time.Duration", "minimum": 0, "default": 5}
		},
		"required": ["timeout"]
	}`, WithTypeLookup(stubLookup{"time.Duration": duration}))
	p.mustRun()

	field := p.field("Root", "timeout")
	assert.Equal(t, duration, field.Type)
	assert.Equal(t, []model.ConstraintKind{model.ConstraintDecimalMin, model.ConstraintNotNull}, kinds(field))
	assert.Equal(t, "5", field.Default)
}

func TestPropertyFormatHooks(t *testing.T) {
	annotator := &recordingAnnotator{}

	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"created": {"type": "string", "format": "date-time"},
			"birthday": {"type": "string", "format": "date"},
			"alarm": {"type": "string", "format": "time"},
			"site": {"type": "string", "format": "uri"},
			"blob": {"type": "string", "format": "bogus"}
		}
	}`, WithAnnotator(annotator))
	p.mustRun()

	assert.Equal(t, []string{formatDateTime, formatDate, formatTime}, annotator.calls)
	assert.Equal(t, model.TimeType.Name, p.field("Root", "created").Type.Name)
	assert.Equal(t, []model.ConstraintKind{model.ConstraintURL}, kinds(p.field("Root", "site")))
	assert.Empty(t, p.field("Root", "blob").Constraints())
}

func TestPropertyFormatTags(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"birthday": {"type": "string", "format": "date"},
			"blob": {"type": "string", "format": "bogus"}
		}
	}`)
	p.mustRun()

	format, ok := p.field("Root", "birthday").Tag(TagFormat)
	require.True(t, ok)
	assert.Equal(t, formatDate, format)

	_, ok = p.field("Root", "blob").Tag(TagFormat)
	assert.False(t, ok)
	assert.Empty(t, p.field("Root", "blob").Constraints())
}

func TestPropertyHandles(t *testing.T) {
	cfg := config.Default()
	cfg.GenerateBuilders = true

	p := newPass(t, cfg, `{"type": "object", "properties": {}}`)
	cls := p.arena.NewClass("Manual", model.KindStruct)

	node := p.doc.Content()
	handle, err := p.factory.PropertyRule().Apply(Context{
		NodeName: "name",
		Node:     node.Get("properties"),
		Parent:   node,
		Schema:   p.doc,
	}, cls)
	require.NoError(t, err)

	assert.Equal(t, "name", p.arena.Field(handle.Field).Name)
	assert.Equal(t, "Name", p.arena.Method(handle.Getter).Name)
	assert.Equal(t, "SetName", p.arena.Method(handle.Setter).Name)
	assert.Equal(t, "WithName", p.arena.Method(handle.Builder).Name)
}
