package rules

import (
	"strconv"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/naming"
)

// ObjectRule generates one struct per object schema and populates it.
type ObjectRule struct {
	f *Factory
}

// Apply creates the class for ctx.Node, runs the property rule for every
// property and then the required post-processor once. The returned type is
// a pointer to the class.
func (r *ObjectRule) Apply(ctx Context, _ model.ClassID) (model.TypeRef, error) {
	arena := r.f.arena
	cfg := r.f.cfg

	cid := arena.NewClass(r.f.naming.ClassName(ctx.NodeName, ctx.Node), model.KindStruct)
	cls := arena.Class(cid)
	cls.SchemaID = ctx.Schema.ID()

	t := model.TypeRef{Name: "*" + cls.Name, Category: model.CategoryReference, Class: cid}

	if ctx.Node.Raw() == ctx.Schema.Content().Raw() && !ctx.Schema.IsGenerated() {
		ctx.Schema.SetGeneratedType(t)
	}

	r.classDocs(ctx, cls)

	if cfg.GenerateBuilders && cfg.UseBuilderTypes {
		bid := arena.NewClass(cls.Name+"Builder", model.KindBuilder)
		arena.Class(bid).BuilderOf = cid
		cls.Builder = bid
	}

	props := make(Properties)

	for _, p := range ctx.Node.Get(kwProperties).Fields() {
		handle, err := r.f.PropertyRule().Apply(Context{
			NodeName: p.Name,
			Node:     p.Value,
			Parent:   ctx.Node,
			Schema:   ctx.Schema,
		}, cid)
		if err != nil {
			return model.TypeRef{}, err
		}

		props[p.Name] = handle
	}

	if required := ctx.Node.Get(kwRequired); required.IsArray() {
		err := r.f.RequiredArrayRule().Apply(Context{
			NodeName: kwRequired,
			Node:     required,
			Parent:   ctx.Node,
			Schema:   ctx.Schema,
		}, cid, props)
		if err != nil {
			return model.TypeRef{}, err
		}
	}

	return t, nil
}

func (r *ObjectRule) classDocs(ctx Context, cls *model.Class) {
	if ctx.Node.Has(kwTitle) {
		r.f.TitleRule().Apply(ctx, cls)
	}

	if ctx.Node.Has(kwDescription) {
		r.f.DescriptionRule().Apply(ctx, cls)
	}

	if ctx.Node.Has(kwComment) {
		r.f.CommentRule().Apply(ctx, cls)
	}
}

// ArrayRule resolves array schemas to slices of the item type.
type ArrayRule struct {
	f *Factory
}

// Apply returns []Elem where Elem is the type of items. Item classes are
// named after the singular of the property name.
func (r *ArrayRule) Apply(ctx Context, owner model.ClassID) (model.TypeRef, error) {
	items := ctx.Node.Get(kwItems)
	if items == nil || items.IsArray() {
		return model.SliceOf(model.AnyType), nil
	}

	name := naming.Singular(ctx.NodeName)
	if name == ctx.NodeName {
		name += "Item"
	}

	elem, err := r.f.SchemaRule().Apply(Context{
		NodeName: name,
		Node:     items,
		Parent:   ctx.Node,
		Schema:   ctx.Schema,
	}, owner)
	if err != nil {
		return model.TypeRef{}, err
	}

	return model.SliceOf(elem), nil
}

// EnumRule generates a string-backed enum type per string enum schema.
type EnumRule struct {
	f *Factory
}

// Apply creates the enum class. Constant names come from goEnumNames when
// it lists one name per value, otherwise from the values.
func (r *EnumRule) Apply(ctx Context, _ model.ClassID) (model.TypeRef, error) {
	arena := r.f.arena

	cid := arena.NewClass(r.f.naming.ClassName(ctx.NodeName, ctx.Node), model.KindEnum)
	cls := arena.Class(cid)
	cls.SchemaID = ctx.Schema.ID()

	values := ctx.Node.Get(kwEnum).Strings()
	names := ctx.Node.Get(kwGoEnumNames).Strings()
	if len(names) != len(values) {
		names = values
	}

	seen := make(map[string]bool)
	for i, v := range values {
		name := r.f.naming.EnumConstantName(cls.Name, names[i])
		for base, n := name, 2; seen[name]; n++ {
			name = base + strconv.Itoa(n)
		}

		seen[name] = true
		cls.EnumValues = append(cls.EnumValues, model.EnumValue{Name: name, Value: v})
	}

	r.classDocsOf(ctx, cls)

	t := model.TypeRef{Name: cls.Name, Category: model.CategoryPrimitive, Class: cid}

	if ctx.Node.Raw() == ctx.Schema.Content().Raw() && !ctx.Schema.IsGenerated() {
		ctx.Schema.SetGeneratedType(t)
	}

	return t, nil
}

func (r *EnumRule) classDocsOf(ctx Context, cls *model.Class) {
	if ctx.Node.Has(kwTitle) {
		r.f.TitleRule().Apply(ctx, cls)
	}

	if ctx.Node.Has(kwDescription) {
		r.f.DescriptionRule().Apply(ctx, cls)
	}
}
