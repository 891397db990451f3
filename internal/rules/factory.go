package rules

import (
	"fmt"

	"go.uber.org/zap"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/diagnostic"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/naming"
	"jsonschema-generator/internal/schema"
)

// Context is the transient tuple threaded through every rule invocation.
type Context struct {
	// NodeName is the raw property (or type) name.
	NodeName string
	// Node is the schema node the rule inspects.
	Node *schema.Node
	// Parent is the enclosing object schema node.
	Parent *schema.Node
	// Schema is the schema document (or fragment) Node belongs to.
	Schema *schema.Schema
}

// FieldRule transforms a generated field according to one keyword.
type FieldRule interface {
	Apply(ctx Context, field *model.Field)
}

// DocRule documents a generated class, field or method.
type DocRule interface {
	Apply(ctx Context, target model.Documentable)
}

// TypeLookup resolves goType values to existing Go types.
type TypeLookup interface {
	Lookup(goType string) (model.TypeRef, error)
}

// Factory holds everything the rules of one generation pass share:
// the read-only configuration, the schema store, the class model arena
// and the pluggable collaborators.
type Factory struct {
	cfg       config.Config
	store     *schema.Store
	arena     *model.Arena
	naming    naming.Strategy
	annotator Annotator
	types     TypeLookup
	logger    *zap.Logger
	resolver  *ReferenceResolver

	diags    *diagnostic.Diagnostics
	document string

	// inProgress holds the schemas whose type is being resolved.
	inProgress map[*schema.Schema]bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithNaming sets the naming strategy.
func WithNaming(s naming.Strategy) FactoryOption {
	return func(f *Factory) {
		f.naming = s
	}
}

// WithAnnotator sets the annotator.
func WithAnnotator(a Annotator) FactoryOption {
	return func(f *Factory) {
		f.annotator = a
	}
}

// WithTypeLookup sets the goType lookup.
func WithTypeLookup(t TypeLookup) FactoryOption {
	return func(f *Factory) {
		f.types = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithDiagnostics records info diagnostics of the pass over document in d.
func WithDiagnostics(d *diagnostic.Diagnostics, document string) FactoryOption {
	return func(f *Factory) {
		f.diags = d
		f.document = document
	}
}

// NewFactory creates the rule factory of one generation pass. Defaults are
// the Go naming strategy, the JSON annotator and no goType support.
func NewFactory(cfg config.Config, store *schema.Store, arena *model.Arena, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:       cfg,
		store:     store,
		arena:     arena,
		naming:    naming.NewGoStrategy(),
		annotator: NewJSONAnnotator(),
		types:     noTypeLookup{},
		logger:    zap.NewNop(),

		inProgress: make(map[*schema.Schema]bool),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.resolver = &ReferenceResolver{store: store, delimiters: cfg.RefFragmentPathDelimiters}

	return f
}

// Config returns the generation configuration.
func (f *Factory) Config() config.Config { return f.cfg }

// Arena returns the class model arena.
func (f *Factory) Arena() *model.Arena { return f.arena }

// Store returns the schema store.
func (f *Factory) Store() *schema.Store { return f.store }

// Naming returns the naming strategy.
func (f *Factory) Naming() naming.Strategy { return f.naming }

// Annotator returns the annotator.
func (f *Factory) Annotator() Annotator { return f.annotator }

// Logger returns the logger.
func (f *Factory) Logger() *zap.Logger { return f.logger }

// ReferenceResolver returns the $ref resolver.
func (f *Factory) ReferenceResolver() *ReferenceResolver { return f.resolver }

// SchemaRule returns the type resolution entry point.
func (f *Factory) SchemaRule() *SchemaRule { return &SchemaRule{f: f} }

// ObjectRule returns the rule generating a struct per object schema.
func (f *Factory) ObjectRule() *ObjectRule { return &ObjectRule{f: f} }

// ArrayRule returns the rule resolving array schemas.
func (f *Factory) ArrayRule() *ArrayRule { return &ArrayRule{f: f} }

// EnumRule returns the rule generating enum types.
func (f *Factory) EnumRule() *EnumRule { return &EnumRule{f: f} }

// PropertyRule returns the property generation rule.
func (f *Factory) PropertyRule() *PropertyRule { return &PropertyRule{f: f} }

// RequiredArrayRule returns the required-field post-processor.
func (f *Factory) RequiredArrayRule() *RequiredArrayRule { return &RequiredArrayRule{f: f} }

// PatternRule returns the pattern constraint rule.
func (f *Factory) PatternRule() FieldRule { return &PatternRule{f: f} }

// FormatRule returns the format constraint rule.
func (f *Factory) FormatRule() FieldRule { return &FormatRule{f: f} }

// DefaultRule returns the default value rule.
func (f *Factory) DefaultRule() FieldRule { return &DefaultRule{f: f} }

// MinimumMaximumRule returns the numeric range rule.
func (f *Factory) MinimumMaximumRule() FieldRule { return &MinimumMaximumRule{f: f} }

// MinItemsMaxItemsRule returns the collection size rule.
func (f *Factory) MinItemsMaxItemsRule() FieldRule { return &MinItemsMaxItemsRule{f: f} }

// MinLengthMaxLengthRule returns the string length rule.
func (f *Factory) MinLengthMaxLengthRule() FieldRule { return &MinLengthMaxLengthRule{f: f} }

// DigitsRule returns the digits and multipleOf rule.
func (f *Factory) DigitsRule() FieldRule { return &DigitsRule{f: f} }

// ValidRule returns the cascade validation rule.
func (f *Factory) ValidRule() FieldRule { return &ValidRule{f: f} }

// TitleRule returns the title documentation rule.
func (f *Factory) TitleRule() DocRule { return TitleRule{} }

// GoNameRule returns the custom name documentation rule.
func (f *Factory) GoNameRule() DocRule { return GoNameRule{} }

// DescriptionRule returns the description documentation rule.
func (f *Factory) DescriptionRule() DocRule { return DescriptionRule{} }

// CommentRule returns the $comment documentation rule.
func (f *Factory) CommentRule() DocRule { return CommentRule{} }

// RequiredRule returns the local required marker rule.
func (f *Factory) RequiredRule() DocRule { return &RequiredRule{f: f} }

// NotRequiredRule returns the local not-required marker rule.
func (f *Factory) NotRequiredRule() DocRule { return &NotRequiredRule{f: f} }

// skip logs a constraint that was not attached.
func (f *Factory) skip(kind model.ConstraintKind, field *model.Field, reason string) {
	f.logger.Debug("constraint skipped",
		zap.Stringer("constraint", kind),
		zap.String("field", field.Name),
		zap.Stringer("category", field.Type.Category),
		zap.String("reason", reason),
	)
}

// attach adds a constraint, logging when the field category refuses it.
func (f *Factory) attach(field *model.Field, c model.Constraint) bool {
	if !field.AddConstraint(c) {
		f.skip(c.Kind, field, "incompatible type category")
		return false
	}

	return true
}

type noTypeLookup struct{}

func (noTypeLookup) Lookup(goType string) (model.TypeRef, error) {
	return model.TypeRef{}, fmt.Errorf("goType %q: no type lookup configured", goType)
}

func (f *Factory) info(code, message, pointer string) {
	if f.diags != nil {
		f.diags.AddInfo(code, message, f.document, pointer)
	}
}
