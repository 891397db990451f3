package rules

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"jsonschema-generator/internal/common"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// CodeRecursiveReference is the info diagnostic of a schema that contains
// itself through a map or array type.
const CodeRecursiveReference = "recursive_reference"

// SchemaRule resolves the Go type of a schema node, generating classes for
// object and enum schemas as a side effect.
type SchemaRule struct {
	f *Factory
}

// Apply returns the type of ctx.Node. owner is the class the type is used in.
// A $ref target generated earlier in the pass yields its cached type. A
// target reached again while its own type is being resolved (a map or array
// containing itself) yields any.
func (r *SchemaRule) Apply(ctx Context, owner model.ClassID) (model.TypeRef, error) {
	if !ctx.Node.Has(kwRef) {
		if ctx.Schema != nil && ctx.Node.Raw() == ctx.Schema.Content().Raw() && !r.f.inProgress[ctx.Schema] {
			defer r.enter(ctx.Schema)()
		}

		return r.typeOf(ctx, owner)
	}

	ref := ctx.Node.Get(kwRef).Text()

	node, target, err := r.f.resolver.Resolve(ctx.Node, ctx.Schema)
	if err != nil {
		return model.TypeRef{}, err
	}

	if target.IsGenerated() {
		return target.GeneratedType(), nil
	}

	if r.f.inProgress[target] {
		r.f.logger.Debug("recursive $ref through a map or array, using any",
			zap.String("ref", ref),
			zap.String("schema", target.ID()),
		)
		r.f.info(CodeRecursiveReference,
			fmt.Sprintf("%s contains itself through a map or array, the recursive element is any", target.ID()), ref)

		return model.AnyType, nil
	}

	defer r.enter(target)()

	name := nameFromRef(ref, r.f.cfg.RefFragmentPathDelimiters)
	if name == "" {
		name = ctx.NodeName
	}

	t, err := r.typeOf(Context{NodeName: name, Node: node, Parent: ctx.Parent, Schema: target}, owner)
	if err != nil {
		return model.TypeRef{}, err
	}

	if !target.IsGenerated() {
		target.SetGeneratedType(t)
	}

	return t, nil
}

// enter marks sch as being resolved until the returned func is called.
func (r *SchemaRule) enter(sch *schema.Schema) func() {
	r.f.inProgress[sch] = true

	return func() { delete(r.f.inProgress, sch) }
}

func (r *SchemaRule) typeOf(ctx Context, owner model.ClassID) (model.TypeRef, error) {
	node := ctx.Node

	if goType := node.Get(kwGoType).Text(); goType != "" {
		t, err := r.f.types.Lookup(goType)
		if err != nil {
			r.f.logger.Warn("goType not resolvable, constraints needing its category are skipped",
				zap.String("property", ctx.NodeName),
				zap.String("goType", goType),
				zap.Error(err),
			)
		}

		if t.IsZero() {
			t = unknownType(goType)
		}

		return t, nil
	}

	typeName := schemaType(node)

	if isStringEnum(node) && (typeName == "" || typeName == typeString) {
		return r.f.EnumRule().Apply(ctx, owner)
	}

	switch typeName {
	case typeString:
		if node.Get(kwFormat).Text() == formatDateTime {
			return model.TimeType, nil
		}

		return model.StringType, nil
	case typeInteger:
		return model.Int64Type, nil
	case typeNumber:
		return model.Float64Type, nil
	case typeBoolean:
		return model.BoolType, nil
	case typeObject:
		return r.objectType(ctx, owner)
	case typeArray:
		return r.f.ArrayRule().Apply(ctx, owner)
	case "":
		if node.Has(kwProperties) {
			return r.objectType(ctx, owner)
		}

		return model.AnyType, nil
	default:
		return model.AnyType, nil
	}
}

// objectType generates a class, or a map when the object declares no
// properties.
func (r *SchemaRule) objectType(ctx Context, owner model.ClassID) (model.TypeRef, error) {
	if ctx.Node.Get(kwProperties).Len() > 0 {
		return r.f.ObjectRule().Apply(ctx, owner)
	}

	additional := ctx.Node.Get(kwAdditionalProperties)
	if !additional.IsObject() {
		return model.MapOf(model.AnyType), nil
	}

	value, err := r.Apply(Context{
		NodeName: ctx.NodeName + "Value",
		Node:     additional,
		Parent:   ctx.Node,
		Schema:   ctx.Schema,
	}, owner)
	if err != nil {
		return model.TypeRef{}, err
	}

	return model.MapOf(value), nil
}

// unknownType renders a goType that could not be classified. The last path
// element qualifies the name, e.g. "example.com/money.Amount" becomes
// "money.Amount" importing "example.com/money".
func unknownType(goType string) model.TypeRef {
	prefix := strings.TrimRight(goType, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_./-")
	pkgPath, name := common.SplitQualified(strings.TrimPrefix(goType, prefix))
	if pkgPath == "" {
		return model.TypeRef{Name: goType, Category: model.CategoryUnknown, Class: model.NoClass}
	}

	return model.TypeRef{
		Name:     prefix + common.PkgAlias(pkgPath) + "." + name,
		Import:   pkgPath,
		Category: model.CategoryUnknown,
		Class:    model.NoClass,
	}
}

// schemaType returns the type keyword; for union types the first non-null member.
func schemaType(node *schema.Node) string {
	t := node.Get(kwType)
	if t.IsArray() {
		for _, member := range t.Strings() {
			if member != typeNull {
				return member
			}
		}

		return typeNull
	}

	return t.Text()
}

func isStringEnum(node *schema.Node) bool {
	enum := node.Get(kwEnum)
	if enum.Len() == 0 {
		return false
	}

	for _, v := range enum.Elements() {
		if !v.IsString() {
			return false
		}
	}

	return true
}

// nameFromRef derives a type name from a $ref: the last fragment segment,
// or the document file name without extension.
func nameFromRef(ref, delimiters string) string {
	doc, fragment, hasFragment := strings.Cut(ref, "#")
	if hasFragment {
		segments := strings.FieldsFunc(fragment, func(r rune) bool {
			return strings.ContainsRune(delimiters, r)
		})
		if len(segments) > 0 {
			return segments[len(segments)-1]
		}
	}

	if doc == "" {
		return ""
	}

	base := path.Base(doc)

	return strings.TrimSuffix(base, path.Ext(base))
}
