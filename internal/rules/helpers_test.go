package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

const rootURI = "mem://test/root.json"

var errNotLoadable = errors.New("package not loadable")

type pass struct {
	t       *testing.T
	arena   *model.Arena
	store   *schema.Store
	factory *Factory
	doc     *schema.Schema
}

func newPass(t *testing.T, cfg config.Config, document string, opts ...FactoryOption) *pass {
	t.Helper()

	store := schema.NewStore(context.Background(), schema.WithLogger(zaptest.NewLogger(t)))

	doc, err := store.Add(rootURI, []byte(document))
	require.NoError(t, err)

	arena := model.NewArena()
	opts = append([]FactoryOption{WithLogger(zaptest.NewLogger(t))}, opts...)

	return &pass{
		t:       t,
		arena:   arena,
		store:   store,
		factory: NewFactory(cfg, store, arena, opts...),
		doc:     doc,
	}
}

func (p *pass) run() (model.TypeRef, error) {
	return p.factory.SchemaRule().Apply(Context{
		NodeName: "root",
		Node:     p.doc.Content(),
		Schema:   p.doc,
	}, model.NoClass)
}

func (p *pass) mustRun() model.TypeRef {
	p.t.Helper()

	t, err := p.run()
	require.NoError(p.t, err)

	return t
}

func (p *pass) class(name string) *model.Class {
	p.t.Helper()

	cls, ok := p.arena.ClassByName(name)
	require.True(p.t, ok, "class %s not generated, classes: %s", name, spew.Sdump(classNames(p.arena)))

	return cls
}

func (p *pass) field(className, fieldName string) *model.Field {
	p.t.Helper()

	cls := p.class(className)
	id, ok := cls.FieldByName(fieldName)
	require.True(p.t, ok, "field %s.%s not generated", className, fieldName)

	return p.arena.Field(id)
}

func (p *pass) method(className, methodName string) *model.Method {
	p.t.Helper()

	for _, m := range p.arena.MethodsOf(p.class(className).ID) {
		if m.Name == methodName {
			return m
		}
	}

	p.t.Fatalf("method %s.%s not generated", className, methodName)

	return nil
}

func (p *pass) methodNames(className string) []string {
	var names []string
	for _, m := range p.arena.MethodsOf(p.class(className).ID) {
		names = append(names, m.Name)
	}

	return names
}

func classNames(a *model.Arena) []string {
	var names []string
	for _, c := range a.Classes() {
		names = append(names, c.Name)
	}

	return names
}

func kinds(f *model.Field) []model.ConstraintKind {
	var out []model.ConstraintKind
	for _, c := range f.Constraints() {
		out = append(out, c.Kind)
	}

	return out
}

func presenceKinds(f *model.Field) []model.ConstraintKind {
	var out []model.ConstraintKind
	for _, k := range kinds(f) {
		if k == model.ConstraintNotBlank || k == model.ConstraintNotEmpty || k == model.ConstraintNotNull {
			out = append(out, k)
		}
	}

	return out
}

// recordingAnnotator counts format hook calls on top of JSON tags.
type recordingAnnotator struct {
	NoopAnnotator
	calls []string
}

func (a *recordingAnnotator) DateTimeField(*model.Field, *model.Class, *schema.Node) {
	a.calls = append(a.calls, formatDateTime)
}

func (a *recordingAnnotator) DateField(*model.Field, *model.Class, *schema.Node) {
	a.calls = append(a.calls, formatDate)
}

func (a *recordingAnnotator) TimeField(*model.Field, *model.Class, *schema.Node) {
	a.calls = append(a.calls, formatTime)
}

// stubLookup resolves a fixed set of goType values.
type stubLookup map[string]model.TypeRef

func (s stubLookup) Lookup(goType string) (model.TypeRef, error) {
	if t, ok := s[goType]; ok {
		return t, nil
	}

	return model.TypeRef{}, errNotLoadable
}
