package schema

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Node is a read-only view over one location of a schema document.
// All accessors are nil-safe: a missing child is a nil *Node.
type Node struct {
	raw    *yaml.Node
	parent *Node
}

// Property is one key/value pair of an object node.
type Property struct {
	Name  string
	Value *Node
}

// NewNode wraps a yaml node. Document nodes and aliases are unwrapped.
func NewNode(raw *yaml.Node, parent *Node) *Node {
	raw = unwrap(raw)
	if raw == nil {
		return nil
	}

	return &Node{raw: raw, parent: parent}
}

func unwrap(raw *yaml.Node) *yaml.Node {
	for raw != nil {
		switch raw.Kind {
		case yaml.DocumentNode:
			if len(raw.Content) == 0 {
				return nil
			}

			raw = raw.Content[0]
		case yaml.AliasNode:
			raw = raw.Alias
		case 0:
			return nil
		default:
			return raw
		}
	}

	return nil
}

// Raw returns the underlying yaml node.
func (n *Node) Raw() *yaml.Node {
	if n == nil {
		return nil
	}

	return n.raw
}

// Parent returns the enclosing node, nil for a document root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}

	return n.parent
}

// IsObject returns true for mapping nodes.
func (n *Node) IsObject() bool {
	return n != nil && n.raw.Kind == yaml.MappingNode
}

// IsArray returns true for sequence nodes.
func (n *Node) IsArray() bool {
	return n != nil && n.raw.Kind == yaml.SequenceNode
}

// IsScalar returns true for scalar nodes.
func (n *Node) IsScalar() bool {
	return n != nil && n.raw.Kind == yaml.ScalarNode
}

// IsNull returns true for an explicit null scalar.
func (n *Node) IsNull() bool {
	return n.IsScalar() && n.raw.ShortTag() == "!!null"
}

// IsString returns true for string scalars.
func (n *Node) IsString() bool {
	return n.IsScalar() && n.raw.ShortTag() == "!!str"
}

// IsNumber returns true for integer and float scalars.
func (n *Node) IsNumber() bool {
	if !n.IsScalar() {
		return false
	}

	tag := n.raw.ShortTag()

	return tag == "!!int" || tag == "!!float"
}

// IsInteger returns true for integer scalars.
func (n *Node) IsInteger() bool {
	return n.IsScalar() && n.raw.ShortTag() == "!!int"
}

// IsBool returns true for boolean scalars.
func (n *Node) IsBool() bool {
	return n.IsScalar() && n.raw.ShortTag() == "!!bool"
}

// Has returns true if the object node has the key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Get returns the value stored under key, or nil.
func (n *Node) Get(key string) *Node {
	if !n.IsObject() {
		return nil
	}

	for i := 0; i+1 < len(n.raw.Content); i += 2 {
		if n.raw.Content[i].Value == key {
			return NewNode(n.raw.Content[i+1], n)
		}
	}

	return nil
}

// Index returns the i-th element of an array node, or nil.
func (n *Node) Index(i int) *Node {
	if !n.IsArray() || i < 0 || i >= len(n.raw.Content) {
		return nil
	}

	return NewNode(n.raw.Content[i], n)
}

// Len returns the number of elements or properties.
func (n *Node) Len() int {
	switch {
	case n.IsArray():
		return len(n.raw.Content)
	case n.IsObject():
		return len(n.raw.Content) / 2
	default:
		return 0
	}
}

// Elements returns the elements of an array node.
func (n *Node) Elements() []*Node {
	if !n.IsArray() {
		return nil
	}

	out := make([]*Node, 0, len(n.raw.Content))
	for _, c := range n.raw.Content {
		if child := NewNode(c, n); child != nil {
			out = append(out, child)
		}
	}

	return out
}

// Fields returns the properties of an object node in document order.
func (n *Node) Fields() []Property {
	if !n.IsObject() {
		return nil
	}

	out := make([]Property, 0, len(n.raw.Content)/2)
	for i := 0; i+1 < len(n.raw.Content); i += 2 {
		out = append(out, Property{
			Name:  n.raw.Content[i].Value,
			Value: NewNode(n.raw.Content[i+1], n),
		})
	}

	return out
}

// Keys returns the property names of an object node in document order.
func (n *Node) Keys() []string {
	fields := n.Fields()

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Name)
	}

	return keys
}

// Text returns the scalar value, or "" for non-scalars.
func (n *Node) Text() string {
	if !n.IsScalar() || n.IsNull() {
		return ""
	}

	return n.raw.Value
}

// Bool returns the boolean value of a scalar; anything but true is false.
func (n *Node) Bool() bool {
	if !n.IsBool() {
		return false
	}

	b, err := strconv.ParseBool(n.raw.Value)

	return err == nil && b
}

// Int returns the integer value of a numeric scalar.
func (n *Node) Int() (int64, bool) {
	if !n.IsNumber() {
		return 0, false
	}

	if v, err := strconv.ParseInt(n.raw.Value, 10, 64); err == nil {
		return v, true
	}

	f, err := strconv.ParseFloat(n.raw.Value, 64)
	if err != nil || f != float64(int64(f)) {
		return 0, false
	}

	return int64(f), true
}

// Float returns the float value of a numeric scalar.
func (n *Node) Float() (float64, bool) {
	if !n.IsNumber() {
		return 0, false
	}

	f, err := strconv.ParseFloat(n.raw.Value, 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// Strings returns the string elements of an array node, skipping others.
func (n *Node) Strings() []string {
	var out []string
	for _, e := range n.Elements() {
		if e.IsString() {
			out = append(out, e.raw.Value)
		}
	}

	return out
}

// Line returns the 1-based source line of the node, 0 if unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}

	return n.raw.Line
}

// Decode decodes the node into v.
func (n *Node) Decode(v any) error {
	if n == nil {
		return nil
	}

	return n.raw.Decode(v)
}

// Interface decodes the node into plain Go values (maps, slices, scalars).
func (n *Node) Interface() (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
