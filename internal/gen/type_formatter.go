package gen

import (
	"sort"
	"strings"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/naming"
)

// importSpec represents an import statement.
type importSpec struct {
	Path string
}

// importSet collects the imports of one generated file.
type importSet map[string]importSpec

// add adds an import. Types are rendered qualified by their package name,
// so no alias is needed.
func (s importSet) add(pkgPath string) {
	if pkgPath == "" {
		return
	}

	s[pkgPath] = importSpec{Path: pkgPath}
}

// addType adds the imports a type expression needs.
func (s importSet) addType(t model.TypeRef) {
	for _, p := range t.Imports() {
		s.add(p)
	}
}

// sorted returns the imports ordered by path.
func (s importSet) sorted() []importSpec {
	out := make([]importSpec, 0, len(s))
	for _, imp := range s {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// localNames are identifiers generated method bodies declare.
var localNames = map[string]bool{
	"aux": true, "data": true, "err": true, "errs": true, "item": true, "k": true, "out": true,
}

// receiverName returns the receiver identifier of a generated type: its
// lower-cased initial, unless a parameter or local variable uses that name.
func receiverName(className string, params map[string]bool) string {
	for _, candidate := range []string{strings.ToLower(className[:1]), naming.Unexported(className)} {
		if !params[candidate] && !localNames[candidate] {
			return candidate
		}
	}

	return "self"
}

// fileName returns the file a class is emitted to, e.g. "postal_address.go".
func fileName(className string) string {
	tokens := naming.Tokenize(className)
	for i, tok := range tokens {
		tokens[i] = strings.ToLower(tok)
	}

	name := strings.Join(tokens, "_")
	if strings.HasSuffix(name, "_test") {
		name += "_type"
	}

	return name + ".go"
}

// presenceExpr returns the expression telling whether a value of type t is set.
func presenceExpr(expr string, t model.TypeRef) string {
	switch t.Category {
	case model.CategoryString:
		return expr + ` != ""`
	case model.CategoryCollection, model.CategoryReference:
		return expr + " != nil"
	default:
		return "true"
	}
}

// stringExpr converts a string-category expression to a plain string.
func stringExpr(expr string, t model.TypeRef) string {
	if t.Name == model.StringType.Name {
		return expr
	}

	return "string(" + expr + ")"
}

// elemClass returns the generated class a pointer, slice or map type refers to.
func elemClass(t model.TypeRef) (model.ClassID, bool) {
	if t.Class != model.NoClass {
		return t.Class, true
	}

	if t.Elem != nil && t.Elem.Class != model.NoClass {
		return t.Elem.Class, true
	}

	return model.NoClass, false
}
