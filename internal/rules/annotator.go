package rules

import (
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// Annotator decorates generated members for a serialization library.
type Annotator interface {
	PropertyField(field *model.Field, cls *model.Class, propertyName string, node *schema.Node)
	PropertyGetter(getter *model.Method, cls *model.Class, propertyName string)
	PropertySetter(setter *model.Method, cls *model.Class, propertyName string)
	DateTimeField(field *model.Field, cls *model.Class, node *schema.Node)
	DateField(field *model.Field, cls *model.Class, node *schema.Node)
	TimeField(field *model.Field, cls *model.Class, node *schema.Node)
}

// Struct tag keys written by JSONAnnotator.
const (
	TagJSON   = "json"
	TagFormat = "format"
)

// JSONAnnotator writes encoding/json struct tags. Nillable fields are
// omitted when nil; date and time formats are recorded in a format tag.
type JSONAnnotator struct{}

// NewJSONAnnotator creates a JSONAnnotator.
func NewJSONAnnotator() *JSONAnnotator {
	return &JSONAnnotator{}
}

// PropertyField implements Annotator.
func (a *JSONAnnotator) PropertyField(field *model.Field, _ *model.Class, propertyName string, _ *schema.Node) {
	tag := propertyName
	if field.Type.Category.Nillable() {
		tag += ",omitempty"
	}

	field.SetTag(TagJSON, tag)
}

// PropertyGetter implements Annotator.
func (a *JSONAnnotator) PropertyGetter(*model.Method, *model.Class, string) {}

// PropertySetter implements Annotator.
func (a *JSONAnnotator) PropertySetter(*model.Method, *model.Class, string) {}

// DateTimeField implements Annotator.
func (a *JSONAnnotator) DateTimeField(field *model.Field, _ *model.Class, _ *schema.Node) {
	field.SetTag(TagFormat, formatDateTime)
}

// DateField implements Annotator.
func (a *JSONAnnotator) DateField(field *model.Field, _ *model.Class, _ *schema.Node) {
	field.SetTag(TagFormat, formatDate)
}

// TimeField implements Annotator.
func (a *JSONAnnotator) TimeField(field *model.Field, _ *model.Class, _ *schema.Node) {
	field.SetTag(TagFormat, formatTime)
}

// NoopAnnotator leaves members untouched.
type NoopAnnotator struct{}

func (NoopAnnotator) PropertyField(*model.Field, *model.Class, string, *schema.Node) {}
func (NoopAnnotator) PropertyGetter(*model.Method, *model.Class, string)            {}
func (NoopAnnotator) PropertySetter(*model.Method, *model.Class, string)            {}
func (NoopAnnotator) DateTimeField(*model.Field, *model.Class, *schema.Node)        {}
func (NoopAnnotator) DateField(*model.Field, *model.Class, *schema.Node)            {}
func (NoopAnnotator) TimeField(*model.Field, *model.Class, *schema.Node)            {}

// CompositeAnnotator fans every call out to its annotators in order.
type CompositeAnnotator []Annotator

// PropertyField implements Annotator.
func (c CompositeAnnotator) PropertyField(field *model.Field, cls *model.Class, propertyName string, node *schema.Node) {
	for _, a := range c {
		a.PropertyField(field, cls, propertyName, node)
	}
}

// PropertyGetter implements Annotator.
func (c CompositeAnnotator) PropertyGetter(getter *model.Method, cls *model.Class, propertyName string) {
	for _, a := range c {
		a.PropertyGetter(getter, cls, propertyName)
	}
}

// PropertySetter implements Annotator.
func (c CompositeAnnotator) PropertySetter(setter *model.Method, cls *model.Class, propertyName string) {
	for _, a := range c {
		a.PropertySetter(setter, cls, propertyName)
	}
}

// DateTimeField implements Annotator.
func (c CompositeAnnotator) DateTimeField(field *model.Field, cls *model.Class, node *schema.Node) {
	for _, a := range c {
		a.DateTimeField(field, cls, node)
	}
}

// DateField implements Annotator.
func (c CompositeAnnotator) DateField(field *model.Field, cls *model.Class, node *schema.Node) {
	for _, a := range c {
		a.DateField(field, cls, node)
	}
}

// TimeField implements Annotator.
func (c CompositeAnnotator) TimeField(field *model.Field, cls *model.Class, node *schema.Node) {
	for _, a := range c {
		a.TimeField(field, cls, node)
	}
}
