package plan

import (
	"errors"

	"jsonschema-generator/internal/diagnostic"
	"jsonschema-generator/internal/model"
)

// Diagnostic codes reported by a generation pass.
const (
	CodeMetaSchema     = "meta_schema"
	CodeGoType         = "go_type"
	CodeClassCollision = "class_collision"
	CodeGenerateFailed = "generate_failed"
)

// ErrInvalidSchema is returned in strict mode when a document violates the meta-schema.
var ErrInvalidSchema = errors.New("schema violates meta-schema")

// Result is the output of one generation pass over a schema document.
// It contains everything needed for code emission.
type Result struct {
	// Document is the normalized URI of the root schema document.
	Document string
	// Root is the type generated for the document root.
	Root model.TypeRef
	// Arena holds the classes generated by the pass.
	Arena *model.Arena
	// Diagnostics contains all warnings and errors of the pass.
	Diagnostics diagnostic.Diagnostics
}

// Classes returns the generated classes in allocation order.
func (r *Result) Classes() []*model.Class {
	if r == nil || r.Arena == nil {
		return nil
	}

	return r.Arena.Classes()
}

// HasErrors returns true if the pass reported error diagnostics.
func (r *Result) HasErrors() bool {
	return r != nil && r.Diagnostics.HasErrors()
}
