package schema

import (
	"jsonschema-generator/internal/model"
)

// Schema is a schema document, or a fragment of one, identified by its
// normalized URI. Nodes reached through different $ref paths share the
// same Schema when their URIs resolve to the same location.
type Schema struct {
	id      string
	content *Node
	parent  *Schema

	generatedType model.TypeRef
	generated     bool
}

// NewSchema creates a schema. parent is the base document of a fragment schema.
func NewSchema(id string, content *Node, parent *Schema) *Schema {
	return &Schema{id: id, content: content, parent: parent}
}

// ID returns the normalized URI of the schema, "" for anonymous schemas.
func (s *Schema) ID() string { return s.id }

// Content returns the schema node.
func (s *Schema) Content() *Node { return s.content }

// Parent returns the base document schema of a fragment, nil for documents.
func (s *Schema) Parent() *Schema { return s.parent }

// Document returns the base document schema.
func (s *Schema) Document() *Schema {
	if s.parent != nil {
		return s.parent
	}

	return s
}

// GeneratedType returns the type generated for this schema in the current pass.
func (s *Schema) GeneratedType() model.TypeRef { return s.generatedType }

// SetGeneratedType records the type generated for this schema. It is set
// before descending into properties so self-references terminate.
func (s *Schema) SetGeneratedType(t model.TypeRef) {
	s.generatedType = t
	s.generated = true
}

// IsGenerated returns true once a type was recorded for the schema.
func (s *Schema) IsGenerated() bool { return s.generated }
