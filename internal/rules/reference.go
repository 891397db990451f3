package rules

import (
	"errors"
	"fmt"

	"jsonschema-generator/internal/schema"
)

// ErrCyclicReference is returned when a $ref chain leads back to itself
// without reaching a schema with content.
var ErrCyclicReference = errors.New("cyclic reference")

// ReferenceResolver dereferences $ref nodes until a node without $ref is reached.
type ReferenceResolver struct {
	store      *schema.Store
	delimiters string
}

// Resolve returns the first node of the $ref chain starting at node that
// has no $ref, together with the schema owning it. A node without $ref is
// returned unchanged with its schema.
func (r *ReferenceResolver) Resolve(node *schema.Node, sch *schema.Schema) (*schema.Node, *schema.Schema, error) {
	visited := make(map[*schema.Schema]bool)

	for node.Has(kwRef) {
		ref := node.Get(kwRef)
		if !ref.IsString() {
			return nil, nil, fmt.Errorf("%w: $ref at line %d is not a string", schema.ErrUnresolvableReference, ref.Line())
		}

		target, err := r.store.Create(sch, ref.Text(), r.delimiters)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve $ref %q: %w", ref.Text(), err)
		}

		if visited[target] {
			return nil, nil, fmt.Errorf("%w: %q", ErrCyclicReference, ref.Text())
		}

		visited[target] = true
		node, sch = target.Content(), target
	}

	return node, sch, nil
}
