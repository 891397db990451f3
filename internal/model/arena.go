package model

import (
	"errors"
	"fmt"
	"slices"
)

// ClassID, FieldID and MethodID address records in an Arena.
type (
	ClassID  int
	FieldID  int
	MethodID int
)

// Sentinel ids for absent members.
const (
	NoField  FieldID  = -1
	NoMethod MethodID = -1
)

var (
	// ErrDuplicateField is returned when a class already has a field with the same name.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrDuplicateMethod is returned when a class already has a method with the same name.
	ErrDuplicateMethod = errors.New("duplicate method")
)

// Class is a to-be-emitted Go type.
type Class struct {
	ID   ClassID
	Name string
	Kind ClassKind
	Doc  Doc
	// SchemaID is the resolved URI of the schema the class was generated from.
	SchemaID string
	// BuilderOf is the struct a KindBuilder class builds, NoClass otherwise.
	BuilderOf ClassID
	// Builder is the builder class of a struct, NoClass if there is none.
	Builder ClassID
	// EnumValues holds the constants of a KindEnum class.
	EnumValues []EnumValue

	fields       []FieldID
	fieldsByName map[string]FieldID
	methods      []MethodID
	methodNames  map[string]MethodID
}

// Documentation returns the class doc block.
func (c *Class) Documentation() *Doc { return &c.Doc }

// Fields returns the class fields in declaration order.
func (c *Class) Fields() []FieldID { return c.fields }

// Methods returns the class methods in declaration order.
func (c *Class) Methods() []MethodID { return c.methods }

// FieldByName looks up a field by its generated name.
func (c *Class) FieldByName(name string) (FieldID, bool) {
	id, ok := c.fieldsByName[name]
	return id, ok
}

// Field is a struct field.
type Field struct {
	ID    FieldID
	Class ClassID
	// Name is the Go identifier of the field.
	Name string
	// JSONName is the property name in the schema.
	JSONName   string
	Type       TypeRef
	Visibility Visibility
	Doc        Doc
	// Default is a Go literal assigned by the generated constructor, "" for none.
	Default string
	Tags    []Tag

	constraints []Constraint
	markers     []Marker
}

// Documentation returns the field doc block.
func (f *Field) Documentation() *Doc { return &f.Doc }

// AddConstraint attaches a constraint if its kind is compatible with the
// field's type category. It reports whether the constraint was attached.
func (f *Field) AddConstraint(c Constraint) bool {
	if !c.Kind.Compatible(f.Type.Category) {
		return false
	}

	f.constraints = append(f.constraints, c)

	return true
}

// Constraints returns the attached constraints in attachment order.
func (f *Field) Constraints() []Constraint { return f.constraints }

// ConstraintsOf returns the attached constraints of the given kind.
func (f *Field) ConstraintsOf(kind ConstraintKind) []Constraint {
	var out []Constraint
	for _, c := range f.constraints {
		if c.Kind == kind {
			out = append(out, c)
		}
	}

	return out
}

// HasConstraint returns true if a constraint of the given kind is attached.
func (f *Field) HasConstraint(kind ConstraintKind) bool {
	return len(f.ConstraintsOf(kind)) > 0
}

// AddMarker attaches a nullness marker once.
func (f *Field) AddMarker(m Marker) {
	if !slices.Contains(f.markers, m) {
		f.markers = append(f.markers, m)
	}
}

// Markers returns the attached nullness markers.
func (f *Field) Markers() []Marker { return f.markers }

// SetTag sets a struct tag, replacing an existing value for the key.
func (f *Field) SetTag(key, value string) {
	for i := range f.Tags {
		if f.Tags[i].Key == key {
			f.Tags[i].Value = value
			return
		}
	}

	f.Tags = append(f.Tags, Tag{Key: key, Value: value})
}

// Tag returns the value of a struct tag.
func (f *Field) Tag(key string) (string, bool) {
	for _, t := range f.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}

	return "", false
}

// Method is a generated accessor or builder method.
type Method struct {
	ID    MethodID
	Class ClassID
	Name  string
	Kind  MethodKind
	// Field is the field the method reads or writes.
	Field FieldID
	// Param is the parameter name of setters and builders.
	Param string
	// Returns is the return type; for optional getters the wrapped type.
	Returns TypeRef
	// Optional marks getters returning the comma-ok form (T, bool).
	Optional bool
	Doc      Doc
}

// Documentation returns the method doc block.
func (m *Method) Documentation() *Doc { return &m.Doc }

// Arena owns every class, field and method generated in one pass.
// Records are addressed by stable indices and never move.
type Arena struct {
	classes    []*Class
	fields     []*Field
	methods    []*Method
	classNames map[string]ClassID
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{classNames: make(map[string]ClassID)}
}

// UniqueClassName returns name, or name with the smallest numeric suffix
// (starting at 2) that is not taken yet.
func (a *Arena) UniqueClassName(name string) string {
	if _, taken := a.classNames[name]; !taken {
		return name
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if _, taken := a.classNames[candidate]; !taken {
			return candidate
		}
	}
}

// NewClass allocates a class under a unique variant of name.
func (a *Arena) NewClass(name string, kind ClassKind) ClassID {
	id := ClassID(len(a.classes))
	name = a.UniqueClassName(name)

	a.classes = append(a.classes, &Class{
		ID:           id,
		Name:         name,
		Kind:         kind,
		BuilderOf:    NoClass,
		Builder:      NoClass,
		fieldsByName: make(map[string]FieldID),
		methodNames:  make(map[string]MethodID),
	})
	a.classNames[name] = id

	return id
}

// Class returns the class with the given id, or nil.
func (a *Arena) Class(id ClassID) *Class {
	if id < 0 || int(id) >= len(a.classes) {
		return nil
	}

	return a.classes[id]
}

// ClassByName returns the class with the given name.
func (a *Arena) ClassByName(name string) (*Class, bool) {
	id, ok := a.classNames[name]
	if !ok {
		return nil, false
	}

	return a.classes[id], true
}

// Classes returns all classes in allocation order.
func (a *Arena) Classes() []*Class {
	return a.classes
}

// AddField appends a field to a class. Field names are unique per class.
func (a *Arena) AddField(cls ClassID, name string, t TypeRef, vis Visibility) (FieldID, error) {
	c := a.Class(cls)
	if c == nil {
		return NoField, fmt.Errorf("class %d does not exist", cls)
	}

	if _, exists := c.fieldsByName[name]; exists {
		return NoField, fmt.Errorf("%w %q in %s", ErrDuplicateField, name, c.Name)
	}

	id := FieldID(len(a.fields))
	a.fields = append(a.fields, &Field{
		ID:         id,
		Class:      cls,
		Name:       name,
		Type:       t,
		Visibility: vis,
	})
	c.fields = append(c.fields, id)
	c.fieldsByName[name] = id

	return id, nil
}

// Field returns the field with the given id, or nil.
func (a *Arena) Field(id FieldID) *Field {
	if id < 0 || int(id) >= len(a.fields) {
		return nil
	}

	return a.fields[id]
}

// FieldsOf returns the fields of a class in declaration order.
func (a *Arena) FieldsOf(cls ClassID) []*Field {
	c := a.Class(cls)
	if c == nil {
		return nil
	}

	out := make([]*Field, 0, len(c.fields))
	for _, id := range c.fields {
		out = append(out, a.fields[id])
	}

	return out
}

// AddMethod appends a method wrapping field to a class. Method names are unique per class.
func (a *Arena) AddMethod(cls ClassID, name string, kind MethodKind, field FieldID) (MethodID, error) {
	c := a.Class(cls)
	if c == nil {
		return NoMethod, fmt.Errorf("class %d does not exist", cls)
	}

	if _, exists := c.methodNames[name]; exists {
		return NoMethod, fmt.Errorf("%w %q in %s", ErrDuplicateMethod, name, c.Name)
	}

	id := MethodID(len(a.methods))
	a.methods = append(a.methods, &Method{
		ID:    id,
		Class: cls,
		Name:  name,
		Kind:  kind,
		Field: field,
	})
	c.methods = append(c.methods, id)
	c.methodNames[name] = id

	return id, nil
}

// Method returns the method with the given id, or nil.
func (a *Arena) Method(id MethodID) *Method {
	if id < 0 || int(id) >= len(a.methods) {
		return nil
	}

	return a.methods[id]
}

// MethodsOf returns the methods of a class in declaration order.
func (a *Arena) MethodsOf(cls ClassID) []*Method {
	c := a.Class(cls)
	if c == nil {
		return nil
	}

	out := make([]*Method, 0, len(c.methods))
	for _, id := range c.methods {
		out = append(out, a.methods[id])
	}

	return out
}
