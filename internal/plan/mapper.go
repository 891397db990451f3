package plan

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jsonschema-generator/internal/analyze"
	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/diagnostic"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/rules"
	"jsonschema-generator/internal/schema"
)

// Mapper runs generation passes. Only the configuration, the logger and the
// meta-schema validator are shared between passes; every pass gets its own
// store, arena and rule factory.
type Mapper struct {
	cfg     config.Config
	logger  *zap.Logger
	meta    *schema.MetaValidator
	loaders map[string]schema.Loader
	typeDir string
	lookup  rules.TypeLookup
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// WithLoader registers an additional schema loader for a URI scheme.
func WithLoader(scheme string, l schema.Loader) Option {
	return func(m *Mapper) {
		m.loaders[scheme] = l
	}
}

// WithTypeDir sets the directory goType packages are loaded relative to.
func WithTypeDir(dir string) Option {
	return func(m *Mapper) {
		m.typeDir = dir
	}
}

// WithTypeLookup replaces the go/packages based goType lookup.
func WithTypeLookup(lookup rules.TypeLookup) Option {
	return func(m *Mapper) {
		m.lookup = lookup
	}
}

// NewMapper creates a Mapper for the given configuration.
func NewMapper(cfg config.Config, opts ...Option) *Mapper {
	m := &Mapper{
		cfg:     cfg,
		logger:  zap.NewNop(),
		loaders: make(map[string]schema.Loader),
	}

	for _, opt := range opts {
		opt(m)
	}

	if cfg.ValidateSchemas {
		m.meta = schema.NewMetaValidator(cfg.MetaSchema)
	}

	return m
}

// Generate runs one generation pass over the document at location.
// Load, $ref and type resolution errors abort the pass; meta-schema
// violations are reported as diagnostics (errors in strict mode).
func (m *Mapper) Generate(ctx context.Context, location string) (*Result, error) {
	logger := m.logger.With(zap.String("document", location))

	store := m.newStore(ctx, logger)

	doc, err := store.Load(location)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", location, err)
	}

	result := &Result{
		Document: doc.ID(),
		Root:     model.TypeRef{Class: model.NoClass},
		Arena:    model.NewArena(),
	}

	if err := m.validate(doc, &result.Diagnostics); err != nil {
		return result, err
	}

	lookup := m.lookup
	if lookup == nil {
		lookup = analyze.NewResolver(ctx, m.typeDir, logger)
	}

	factory := rules.NewFactory(m.cfg, store, result.Arena,
		rules.WithLogger(logger),
		rules.WithTypeLookup(&reportingLookup{next: lookup, document: doc.ID(), diags: &result.Diagnostics}),
		rules.WithDiagnostics(&result.Diagnostics, doc.ID()),
	)

	root, err := factory.SchemaRule().Apply(rules.Context{
		NodeName: RootName(doc.ID()),
		Node:     doc.Content(),
		Schema:   doc,
	}, model.NoClass)
	if err != nil {
		return result, fmt.Errorf("generating %s: %w", doc.ID(), err)
	}

	result.Root = root

	logger.Debug("document generated",
		zap.Int("classes", len(result.Arena.Classes())),
		zap.Int("warnings", len(result.Diagnostics.Warnings)),
	)

	return result, nil
}

// GenerateAll runs independent passes over locations concurrently, bounded
// by the configured parallelism. Results keep the order of locations.
// A failing pass is recorded as an error diagnostic on its result and does
// not stop the others; class names defined by more than one document are
// reported as collisions.
func (m *Mapper) GenerateAll(ctx context.Context, locations []string) ([]*Result, error) {
	results := make([]*Result, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.cfg.Parallelism, 1))

	for i, location := range locations {
		g.Go(func() error {
			result, err := m.Generate(gctx, location)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}

				if result == nil {
					result = &Result{Document: location, Root: model.TypeRef{Class: model.NoClass}, Arena: model.NewArena()}
				}

				result.Diagnostics.AddError(CodeGenerateFailed, err.Error(), result.Document, "")
				m.logger.Warn("document failed", zap.String("document", location), zap.Error(err))
			}

			results[i] = result

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	reportCollisions(results)

	return results, nil
}

func (m *Mapper) newStore(ctx context.Context, logger *zap.Logger) *schema.Store {
	opts := []schema.Option{schema.WithLogger(logger)}
	if m.cfg.HTTPTimeout > 0 {
		opts = append(opts, schema.WithHTTPTimeout(m.cfg.HTTPTimeout))
	}

	for scheme, l := range m.loaders {
		opts = append(opts, schema.WithLoader(scheme, l))
	}

	return schema.NewStore(ctx, opts...)
}

// validate checks doc against the meta-schema and records the violations.
func (m *Mapper) validate(doc *schema.Schema, diags *diagnostic.Diagnostics) error {
	if m.meta == nil {
		return nil
	}

	violations, err := m.meta.Validate(doc.Content())
	if err != nil {
		return fmt.Errorf("validating %s: %w", doc.ID(), err)
	}

	for _, v := range violations {
		if m.cfg.StrictSchemas {
			diags.AddError(CodeMetaSchema, v.Message, doc.ID(), v.Pointer)
		} else {
			diags.AddWarning(CodeMetaSchema, v.Message, doc.ID(), v.Pointer)
		}
	}

	if m.cfg.StrictSchemas && len(violations) > 0 {
		return fmt.Errorf("%s: %w (%d violations)", doc.ID(), ErrInvalidSchema, len(violations))
	}

	return nil
}

// RootName derives the name of the root type from a document URI: the file
// name without extension, or the last fragment segment.
func RootName(uri string) string {
	doc, fragment, _ := strings.Cut(uri, "#")
	if segments := strings.FieldsFunc(fragment, func(r rune) bool { return r == '/' }); len(segments) > 0 {
		return segments[len(segments)-1]
	}

	base := path.Base(doc)

	return strings.TrimSuffix(base, path.Ext(base))
}

// reportingLookup records failed goType lookups as warnings.
type reportingLookup struct {
	next     rules.TypeLookup
	document string
	diags    *diagnostic.Diagnostics
}

func (l *reportingLookup) Lookup(goType string) (model.TypeRef, error) {
	t, err := l.next.Lookup(goType)
	if err != nil {
		l.diags.AddWarning(CodeGoType, err.Error(), l.document, "")
	}

	return t, err
}
