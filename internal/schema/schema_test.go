package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const personJSON = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "address": {"$ref": "#/definitions/address"},
    "tags": {"type": "array", "items": [{"type": "string"}, {"type": "integer"}]}
  },
  "required": ["name"],
  "definitions": {
    "address": {
      "type": "object",
      "properties": {"street": {"type": "string"}}
    }
  }
}`

func TestParse_JSONKeepsOrderAndTypes(t *testing.T) {
	root, err := Parse("person.json", []byte(personJSON))
	require.NoError(t, err)

	props := root.Get("properties").Fields()
	require.Len(t, props, 3)
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "address", props[1].Name)
	assert.Equal(t, "tags", props[2].Name)

	assert.True(t, root.IsObject())
	assert.Equal(t, "object", root.Get("type").Text())
	assert.Equal(t, []string{"name"}, root.Get("required").Strings())
	assert.Same(t, root.Raw(), props[0].Value.Parent().Parent().Raw())
	assert.Equal(t, 2, root.Get("type").Line())
}

func TestParse_Scalars(t *testing.T) {
	root, err := Parse("s.json", []byte(`{"i": 3, "f": 1.5, "e": 1e2, "b": true, "n": null, "s": "x"}`))
	require.NoError(t, err)

	i, ok := root.Get("i").Int()
	require.True(t, ok)
	assert.Equal(t, int64(3), i)
	assert.True(t, root.Get("i").IsInteger())

	f, ok := root.Get("f").Float()
	require.True(t, ok)
	assert.InDelta(t, 1.5, f, 0)
	assert.False(t, root.Get("f").IsInteger())

	e, ok := root.Get("e").Int()
	require.True(t, ok)
	assert.Equal(t, int64(100), e)

	assert.True(t, root.Get("b").Bool())
	assert.True(t, root.Get("n").IsNull())
	assert.Empty(t, root.Get("n").Text())
	assert.True(t, root.Get("s").IsString())
}

func TestParse_YAML(t *testing.T) {
	root, err := Parse("person.yaml", []byte(`
type: object
properties:
  name:
    type: string
    pattern: ^\w+$
required: [name]
`))
	require.NoError(t, err)

	assert.Equal(t, `^\w+$`, root.Get("properties").Get("name").Get("pattern").Text())
	assert.Equal(t, []string{"name"}, root.Get("required").Strings())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("bad.json", []byte(`{"a": `))
	require.Error(t, err)

	_, err = Parse("trailing.json", []byte(`{} {}`))
	require.Error(t, err)

	_, err = Parse("empty.yaml", []byte(``))
	require.Error(t, err)
}

func TestNode_NilSafe(t *testing.T) {
	var n *Node

	assert.False(t, n.Has("type"))
	assert.Nil(t, n.Get("type"))
	assert.Nil(t, n.Parent())
	assert.Empty(t, n.Text())
	assert.False(t, n.Bool())
	assert.Empty(t, n.Elements())
	assert.Empty(t, n.Fields())
	assert.Equal(t, 0, n.Len())
	assert.Nil(t, n.Index(0))
}

func TestParse_TabIndentedJSON(t *testing.T) {
	root, err := Parse("tabs.json", []byte("{\n\t\"type\": \"object\",\n\t\"properties\": {\n\t\t\"a\": {\"type\": \"string\"}\n\t}\n}"))
	require.NoError(t, err)

	assert.Equal(t, "object", root.Get("type").Text())
	assert.Equal(t, []string{"a"}, root.Get("properties").Keys())
}

func TestResolveFragment(t *testing.T) {
	root, err := Parse("person.json", []byte(personJSON))
	require.NoError(t, err)

	tests := []struct {
		name       string
		fragment   string
		delimiters string
		wantType   string
		wantErr    bool
	}{
		{"root hash", "#", "#/.", "object", false},
		{"empty", "", "#/.", "object", false},
		{"slash path", "#/definitions/address", "#/.", "object", false},
		{"dot path", "#definitions.address.properties.street", "#/.", "string", false},
		{"array index", "#/properties/tags/items/1", "#/.", "integer", false},
		{"dot not a delimiter", "#definitions.address", "#/", "", true},
		{"missing", "#/definitions/missing", "#/.", "", true},
		{"bad index", "#/properties/tags/items/x", "#/.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ResolveFragment(root, tt.fragment, tt.delimiters)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnresolvableReference)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantType, node.Get("type").Text())
		})
	}
}

func TestResolveFragment_Suggestion(t *testing.T) {
	root, err := Parse("person.json", []byte(personJSON))
	require.NoError(t, err)

	_, err = ResolveFragment(root, "#/definitions/adress", "#/.")
	require.ErrorIs(t, err, ErrUnresolvableReference)
	assert.Contains(t, err.Error(), `did you mean "address"?`)

	_, err = ResolveFragment(root, "#/definitions/zzz", "#/.")
	require.ErrorIs(t, err, ErrUnresolvableReference)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestStore_AddAndCreateFragment(t *testing.T) {
	store := NewStore(context.Background(), WithLogger(zaptest.NewLogger(t)))

	doc, err := store.Add("mem://test/person.json", []byte(personJSON))
	require.NoError(t, err)
	assert.Equal(t, "mem://test/person.json", doc.ID())

	addr, err := store.Create(doc, "#/definitions/address", DefaultDelimiters)
	require.NoError(t, err)
	assert.Equal(t, "mem://test/person.json#/definitions/address", addr.ID())
	assert.Same(t, doc, addr.Parent())
	assert.Same(t, doc, addr.Document())
	assert.True(t, addr.Content().Get("properties").Has("street"))

	again, err := store.Create(doc, "#/definitions/address", DefaultDelimiters)
	require.NoError(t, err)
	assert.Same(t, addr, again)

	self, err := store.Create(addr, "#", DefaultDelimiters)
	require.NoError(t, err)
	assert.Same(t, doc, self)
}

func TestStore_CreateRelativeDocument(t *testing.T) {
	store := NewStore(context.Background())

	doc, err := store.Add("mem://test/schemas/person.json", []byte(`{"properties": {"a": {"$ref": "common/address.json#/properties/zip"}}}`))
	require.NoError(t, err)

	_, err = store.Add("mem://test/schemas/common/address.json", []byte(`{"properties": {"zip": {"type": "string"}}}`))
	require.NoError(t, err)

	zip, err := store.Create(doc, "common/address.json#/properties/zip", DefaultDelimiters)
	require.NoError(t, err)
	assert.Equal(t, "string", zip.Content().Get("type").Text())
	assert.Equal(t, "mem://test/schemas/common/address.json", zip.Parent().ID())

	dotted, err := store.Create(doc, "./common/../common/address.json", DefaultDelimiters)
	require.NoError(t, err)
	assert.Same(t, zip.Parent(), dotted)
}

func TestStore_Unresolvable(t *testing.T) {
	store := NewStore(context.Background())

	doc, err := store.Add("mem://test/person.json", []byte(personJSON))
	require.NoError(t, err)

	_, err = store.Create(doc, "#/definitions/nope", DefaultDelimiters)
	require.ErrorIs(t, err, ErrUnresolvableReference)

	_, err = store.Create(doc, "other.json", DefaultDelimiters)
	require.ErrorIs(t, err, ErrUnresolvableReference)

	_, err = store.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrUnresolvableReference)
}

func TestStore_AnonymousParent(t *testing.T) {
	root, err := Parse("inline.json", []byte(personJSON))
	require.NoError(t, err)

	anon := NewSchema("", root, nil)
	store := NewStore(context.Background())

	addr, err := store.Create(anon, "#/definitions/address", DefaultDelimiters)
	require.NoError(t, err)
	assert.Empty(t, addr.ID())
	assert.Same(t, anon, addr.Parent())

	again, err := store.Create(anon, "#/definitions/address", DefaultDelimiters)
	require.NoError(t, err)
	assert.Same(t, addr, again)

	self, err := store.Create(anon, "#", DefaultDelimiters)
	require.NoError(t, err)
	assert.Same(t, anon, self)

	_, err = store.Create(nil, "#/definitions/address", DefaultDelimiters)
	require.ErrorIs(t, err, ErrUnresolvableReference)
}

func TestStore_LoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "person.json"), []byte(personJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tag.yaml"), []byte("type: string\n"), 0o644))

	store := NewStore(context.Background())

	doc, err := store.Load(filepath.Join(dir, "person.json"))
	require.NoError(t, err)
	assert.Equal(t, "file", doc.ID()[:4])

	tag, err := store.Create(doc, "tag.yaml", DefaultDelimiters)
	require.NoError(t, err)
	assert.Equal(t, "string", tag.Content().Get("type").Text())
}

func TestStore_LoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/person.json" {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write([]byte(personJSON))
	}))
	defer srv.Close()

	store := NewStore(context.Background())

	addr, err := store.Load(srv.URL + "/person.json#/definitions/address")
	require.NoError(t, err)
	assert.True(t, addr.Content().Get("properties").Has("street"))

	_, err = store.Load(srv.URL + "/missing.json")
	require.ErrorIs(t, err, ErrUnresolvableReference)
}

func TestStore_CustomLoader(t *testing.T) {
	mem := NewMemoryLoader()
	mem.Put("mem://lib/tag.json", []byte(`{"type": "string"}`))

	store := NewStore(context.Background(), WithLoader("mem", mem))

	tag, err := store.Load("mem://lib/tag.json")
	require.NoError(t, err)
	assert.Equal(t, "string", tag.Content().Get("type").Text())

	_, err = store.Load("mem://lib/other.json")
	require.ErrorIs(t, err, ErrUnresolvableReference)
}

func TestSchema_GeneratedType(t *testing.T) {
	s := NewSchema("mem://x", nil, nil)
	assert.False(t, s.IsGenerated())
	assert.Same(t, s, s.Document())
}
