package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/diagnostic"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

func TestSchemaRuleScalars(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"s": {"type": "string"},
			"i": {"type": "integer"},
			"n": {"type": "number"},
			"b": {"type": "boolean"},
			"nullable": {"type": ["string", "null"]},
			"untyped": {},
			"map": {"type": "object", "additionalProperties": {"type": "integer"}},
			"free": {"type": "object"},
			"tuple": {"type": "array", "items": [{"type": "string"}, {"type": "integer"}]},
			"list": {"type": "array"}
		}
	}`)
	p.mustRun()

	expected := map[string]string{
		"s":        "string",
		"i":        "int64",
		"n":        "float64",
		"b":        "bool",
		"nullable": "string",
		"untyped":  "any",
		"map":      "map[string]int64",
		"free":     "map[string]any",
		"tuple":    "[]any",
		"list":     "[]any",
	}

	for name, typeName := range expected {
		assert.Equal(t, typeName, p.field("Root", name).Type.Name, name)
	}

	assert.Equal(t, []string{"Root"}, classNames(p.arena))
}

func TestSchemaRuleRootTypes(t *testing.T) {
	p := newPass(t, config.Default(), `{"type": "object", "properties": {"a": {"type": "string"}}}`)
	root := p.mustRun()

	assert.Equal(t, "*Root", root.Name)
	assert.Equal(t, model.CategoryReference, root.Category)
	assert.True(t, p.doc.IsGenerated())
	assert.Equal(t, root, p.doc.GeneratedType())
	assert.Equal(t, rootURI, p.class("Root").SchemaID)

	p = newPass(t, config.Default(), `{"type": "string"}`)
	assert.Equal(t, model.StringType, p.mustRun())
	assert.Empty(t, p.arena.Classes())
}

func TestSchemaRuleNestedClasses(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"addresses": {
				"type": "array",
				"items": {"type": "object", "properties": {"city": {"type": "string"}}}
			},
			"data": {
				"type": "array",
				"items": {"type": "object", "properties": {"x": {"type": "integer"}}}
			},
			"owner": {
				"type": "object",
				"properties": {
					"address": {"type": "object", "properties": {"zip": {"type": "string"}}}
				}
			}
		}
	}`)
	p.mustRun()

	assert.Equal(t, []string{"Root", "Address", "DataItem", "Owner", "Address2"}, classNames(p.arena))

	addresses := p.field("Root", "addresses")
	assert.Equal(t, "[]*Address", addresses.Type.Name)
	assert.Equal(t, model.CategoryCollection, addresses.Type.Category)
	assert.Equal(t, p.class("Address").ID, addresses.Type.Elem.Class)

	assert.Equal(t, "*Address2", p.field("Owner", "address").Type.Name)
}

func TestSchemaRuleSharedDefinition(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"home": {"$ref": "#/definitions/address"},
			"work": {"$ref": "#/definitions/address"}
		},
		"definitions": {
			"address": {"type": "object", "properties": {"city": {"type": "string"}}}
		}
	}`)
	p.mustRun()

	assert.Equal(t, []string{"Root", "Address"}, classNames(p.arena))

	home := p.field("Root", "home")
	work := p.field("Root", "work")
	assert.Equal(t, "*Address", home.Type.Name)
	assert.Equal(t, home.Type, work.Type)
	assert.Equal(t, rootURI+"#/definitions/address", p.class("Address").SchemaID)
}

func TestSchemaRuleRefDocumentation(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"home": {"$ref": "#/definitions/address"}
		},
		"required": ["home"],
		"definitions": {
			"address": {
				"type": "object",
				"description": "Postal address",
				"properties": {"city": {"type": "string", "pattern": "^[A-Z]"}}
			}
		}
	}`)
	p.mustRun()

	home := p.field("Root", "home")
	assert.Equal(t, []string{"Postal address", model.RequiredMarker}, home.Doc.Lines())
	assert.Equal(t, "Postal address must not be empty", home.ConstraintsOf(model.ConstraintNotNull)[0].Message())
	assert.True(t, home.HasConstraint(model.ConstraintValid))
	assert.True(t, p.field("Address", "city").HasConstraint(model.ConstraintPattern))
}

func TestSchemaRuleSelfReference(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"parent": {"$ref": "#"},
			"children": {"type": "array", "items": {"$ref": "#"}}
		}
	}`)
	p.mustRun()

	root := p.class("Root")
	assert.Equal(t, []string{"Root"}, classNames(p.arena))
	assert.Equal(t, root.ID, p.field("Root", "parent").Type.Class)
	assert.Equal(t, "[]*Root", p.field("Root", "children").Type.Name)
}

func TestSchemaRuleExternalDocument(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"address": {"$ref": "common/postal-address.json"},
			"zip": {"$ref": "common/postal-address.json#/properties/zip"}
		}
	}`)

	_, err := p.store.Add("mem://test/common/postal-address.json", []byte(`{
		"type": "object",
		"properties": {"zip": {"type": "string", "pattern": "^[0-9]{5}$"}}
	}`))
	require.NoError(t, err)

	p.mustRun()

	cls := p.class("PostalAddress")
	assert.Equal(t, "mem://test/common/postal-address.json", cls.SchemaID)

	zip := p.field("Root", "zip")
	assert.Equal(t, "string", zip.Type.Name)
	assert.True(t, zip.HasConstraint(model.ConstraintPattern))
}

func TestSchemaRuleUnresolvableReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "missing fragment", ref: `"#/definitions/missing"`},
		{name: "missing document", ref: `"missing.json"`},
		{name: "unknown scheme", ref: `"urn:example:thing"`},
		{name: "non-string", ref: `5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPass(t, config.Default(), `{
				"type": "object",
				"properties": {"value": {"$ref": `+tt.ref+`}}
			}`)

			_, err := p.run()
			require.ErrorIs(t, err, schema.ErrUnresolvableReference)
		})
	}
}

func TestSchemaRuleCyclicReference(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{
			name:     "root",
			document: `{"$ref": "#"}`,
		},
		{
			name: "definitions",
			document: `{
				"type": "object",
				"properties": {"value": {"$ref": "#/definitions/a"}},
				"definitions": {
					"a": {"$ref": "#/definitions/b"},
					"b": {"$ref": "#/definitions/a"}
				}
			}`,
		},
		{
			name: "self",
			document: `{
				"type": "object",
				"properties": {"value": {"$ref": "#/definitions/a"}},
				"definitions": {"a": {"$ref": "#/definitions/a"}}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPass(t, config.Default(), tt.document)

			_, err := p.run()
			require.ErrorIs(t, err, ErrCyclicReference)
		})
	}
}

func TestSchemaRuleRecursiveCollections(t *testing.T) {
	tests := []struct {
		name     string
		document string
		field    string
		expected string
	}{
		{
			name: "map",
			document: `{
				"type": "object",
				"properties": {"tree": {"$ref": "#/definitions/tree"}},
				"definitions": {
					"tree": {"type": "object", "additionalProperties": {"$ref": "#/definitions/tree"}}
				}
			}`,
			field:    "tree",
			expected: "map[string]any",
		},
		{
			name: "array",
			document: `{
				"type": "object",
				"properties": {"list": {"$ref": "#/definitions/list"}},
				"definitions": {
					"list": {"type": "array", "items": {"$ref": "#/definitions/list"}}
				}
			}`,
			field:    "list",
			expected: "[]any",
		},
		{
			name: "array through alias",
			document: `{
				"type": "object",
				"properties": {"list": {"$ref": "#/definitions/list"}},
				"definitions": {
					"list": {"type": "array", "items": {"$ref": "#/definitions/alias"}},
					"alias": {"$ref": "#/definitions/list"}
				}
			}`,
			field:    "list",
			expected: "[]any",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags diagnostic.Diagnostics

			p := newPass(t, config.Default(), tt.document, WithDiagnostics(&diags, rootURI))
			p.mustRun()

			assert.Equal(t, tt.expected, p.field("Root", tt.field).Type.Name)

			require.Len(t, diags.Infos, 1)
			assert.Equal(t, CodeRecursiveReference, diags.Infos[0].Code)
			assert.Equal(t, rootURI, diags.Infos[0].Document)
			assert.Empty(t, diags.Errors)
		})
	}
}

func TestSchemaRuleRecursiveRootArray(t *testing.T) {
	p := newPass(t, config.Default(), `{"type": "array", "items": {"$ref": "#"}}`)

	assert.Equal(t, "[]any", p.mustRun().Name)
}

func TestSchemaRuleRecursiveObjectKeepsClass(t *testing.T) {
	var diags diagnostic.Diagnostics

	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {"children": {"type": "array", "items": {"$ref": "#"}}}
	}`, WithDiagnostics(&diags, rootURI))
	p.mustRun()

	assert.Equal(t, "[]*Root", p.field("Root", "children").Type.Name)
	assert.Empty(t, diags.Infos)
}

func TestSchemaRuleEnums(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["active", "on-hold", ""], "description": "Lifecycle state"},
			"level": {"enum": ["low", "high"], "goEnumNames": ["Minor", "Major"]},
			"clash": {"enum": ["a-b", "a_b"]},
			"mixed": {"enum": ["a", 1]}
		}
	}`)
	p.mustRun()

	status := p.class("Status")
	assert.Equal(t, model.KindEnum, status.Kind)
	assert.Equal(t, []model.EnumValue{
		{Name: "StatusActive", Value: "active"},
		{Name: "StatusOnHold", Value: "on-hold"},
		{Name: "StatusEmpty", Value: ""},
	}, status.EnumValues)
	assert.Equal(t, []string{"Lifecycle state"}, status.Doc.Lines())

	field := p.field("Root", "status")
	assert.Equal(t, "Status", field.Type.Name)
	assert.Equal(t, model.CategoryPrimitive, field.Type.Category)

	assert.Equal(t, []model.EnumValue{
		{Name: "LevelMinor", Value: "low"},
		{Name: "LevelMajor", Value: "high"},
	}, p.class("Level").EnumValues)

	assert.Equal(t, []model.EnumValue{
		{Name: "ClashAB", Value: "a-b"},
		{Name: "ClashAB2", Value: "a_b"},
	}, p.class("Clash").EnumValues)

	assert.Equal(t, "any", p.field("Root", "mixed").Type.Name)
}

func TestSchemaRuleRootEnum(t *testing.T) {
	p := newPass(t, config.Default(), `{"type": "string", "enum": ["x", "y"]}`)
	root := p.mustRun()

	assert.Equal(t, "Root", root.Name)
	assert.Equal(t, model.KindEnum, p.class("Root").Kind)
	assert.Equal(t, root, p.doc.GeneratedType())
}

func TestResolveWithoutReferenceIsIdentity(t *testing.T) {
	p := newPass(t, config.Default(), `{"type": "object", "properties": {"a": {"type": "string"}}}`)

	node := p.doc.Content().Get("properties").Get("a")

	resolved, sch, err := p.factory.ReferenceResolver().Resolve(node, p.doc)
	require.NoError(t, err)
	assert.Same(t, node, resolved)
	assert.Same(t, p.doc, sch)

	again, sch2, err := p.factory.ReferenceResolver().Resolve(resolved, sch)
	require.NoError(t, err)
	assert.Same(t, resolved, again)
	assert.Same(t, sch, sch2)
}

func TestResolveFollowsChain(t *testing.T) {
	p := newPass(t, config.Default(), `{
		"properties": {"a": {"$ref": "#/definitions/first"}},
		"definitions": {
			"first": {"$ref": "#/definitions/second"},
			"second": {"type": "integer"}
		}
	}`)

	node := p.doc.Content().Get("properties").Get("a")

	resolved, sch, err := p.factory.ReferenceResolver().Resolve(node, p.doc)
	require.NoError(t, err)
	assert.Equal(t, "integer", resolved.Get("type").Text())
	assert.Equal(t, rootURI+"#/definitions/second", sch.ID())

	again, sch2, err := p.factory.ReferenceResolver().Resolve(resolved, sch)
	require.NoError(t, err)
	assert.Same(t, resolved, again)
	assert.Same(t, sch, sch2)
}

func TestResolveCustomDelimiters(t *testing.T) {
	cfg := config.Default()
	cfg.RefFragmentPathDelimiters = "/"

	p := newPass(t, cfg, `{
		"properties": {"a": {"$ref": "#/definitions/v1.0"}},
		"definitions": {"v1.0": {"type": "boolean"}}
	}`)

	node := p.doc.Content().Get("properties").Get("a")

	resolved, _, err := p.factory.ReferenceResolver().Resolve(node, p.doc)
	require.NoError(t, err)
	assert.Equal(t, "boolean", resolved.Get("type").Text())
}
