package rules

import (
	"slices"

	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/schema"
)

// PropertyHandle identifies the members generated for one property.
// Absent accessors are model.NoMethod.
type PropertyHandle struct {
	Field   model.FieldID
	Getter  model.MethodID
	Setter  model.MethodID
	Builder model.MethodID
}

// Properties maps raw property names to the members generated for them.
// It is owned by the generation of one class.
type Properties map[string]PropertyHandle

// PropertyRule generates the field, accessors, builder method and
// constraints of one property.
type PropertyRule struct {
	f *Factory
}

// Apply adds the property ctx.NodeName described by ctx.Node to class cls.
// ctx.Parent is the object schema declaring the property. Type resolution
// and $ref errors are returned; anything a constraint rule cannot apply is
// skipped.
func (r *PropertyRule) Apply(ctx Context, cls model.ClassID) (PropertyHandle, error) {
	f := r.f
	cfg := f.cfg
	arena := f.arena
	handle := PropertyHandle{Field: model.NoField, Getter: model.NoMethod, Setter: model.NoMethod, Builder: model.NoMethod}

	propertyName := f.naming.PropertyName(ctx.NodeName, ctx.Node)

	propertyType, err := f.SchemaRule().Apply(ctx, cls)
	if err != nil {
		return handle, err
	}

	node, sch, err := f.resolver.Resolve(ctx.Node, ctx.Schema)
	if err != nil {
		return handle, err
	}

	resolved := Context{NodeName: ctx.NodeName, Node: node, Parent: ctx.Parent, Schema: sch}

	visibility := model.Public
	fieldName := f.naming.ExportedPropertyName(ctx.NodeName, node)

	if cfg.IncludeGetters || cfg.IncludeSetters || cfg.ExternalAccessors {
		visibility = model.Private
		fieldName = propertyName
	}

	fid, err := arena.AddField(cls, fieldName, propertyType, visibility)
	if err != nil {
		return handle, err
	}

	handle.Field = fid
	field := arena.Field(fid)
	field.JSONName = ctx.NodeName
	class := arena.Class(cls)

	r.propertyDocs(resolved, field)
	f.annotator.PropertyField(field, class, ctx.NodeName, node)

	if cfg.IncludeGetters {
		required := isRequired(ctx.NodeName, node, ctx.Parent)
		declaredOptional := hasDeclaration(kwGoOptional, ctx.NodeName, node, ctx.Parent)

		getterName := f.naming.GetterName(ctx.NodeName, propertyType, node)

		mid, err := arena.AddMethod(cls, getterName, model.MethodGetter, fid)
		if err != nil {
			return handle, err
		}

		getter := arena.Method(mid)
		getter.Returns = propertyType
		getter.Optional = (cfg.UseOptionalForGetters || declaredOptional) && !required && optionalCapable(propertyType)

		f.annotator.PropertyGetter(getter, class, ctx.NodeName)
		r.propertyDocs(resolved, getter)

		handle.Getter = mid
	}

	if cfg.IncludeSetters {
		mid, err := arena.AddMethod(cls, f.naming.SetterName(ctx.NodeName, node), model.MethodSetter, fid)
		if err != nil {
			return handle, err
		}

		setter := arena.Method(mid)
		setter.Param = propertyName

		f.annotator.PropertySetter(setter, class, ctx.NodeName)
		r.propertyDocs(resolved, setter)

		handle.Setter = mid
	}

	if cfg.GenerateBuilders {
		mid, err := r.addBuilder(class, fid, f.naming.BuilderName(ctx.NodeName, node), propertyName)
		if err != nil {
			return handle, err
		}

		handle.Builder = mid
	}

	if node.Has(kwPattern) {
		f.PatternRule().Apply(resolved, field)
	}

	f.DefaultRule().Apply(resolved, field)
	f.MinimumMaximumRule().Apply(resolved, field)
	f.MinItemsMaxItemsRule().Apply(resolved, field)
	f.MinLengthMaxLengthRule().Apply(resolved, field)
	f.DigitsRule().Apply(resolved, field)

	if t := schemaType(node); t == typeObject || t == typeArray {
		f.ValidRule().Apply(resolved, field)
	}

	f.FormatRule().Apply(resolved, field)

	return handle, nil
}

// addBuilder adds the builder method in the configured style: on the
// separate builder class, or fluent on the class itself.
func (r *PropertyRule) addBuilder(class *model.Class, fid model.FieldID, name, param string) (model.MethodID, error) {
	arena := r.f.arena

	owner := class.ID
	returns := model.TypeRef{Name: "*" + class.Name, Category: model.CategoryReference, Class: class.ID}

	if r.f.cfg.UseBuilderTypes {
		if class.Builder == model.NoClass {
			bid := arena.NewClass(class.Name+"Builder", model.KindBuilder)
			arena.Class(bid).BuilderOf = class.ID
			class.Builder = bid
		}

		builder := arena.Class(class.Builder)
		owner = builder.ID
		returns = model.TypeRef{Name: "*" + builder.Name, Category: model.CategoryReference, Class: builder.ID}
	}

	mid, err := arena.AddMethod(owner, name, model.MethodBuilder, fid)
	if err != nil {
		return model.NoMethod, err
	}

	m := arena.Method(mid)
	m.Param = param
	m.Returns = returns

	return mid, nil
}

// propertyDocs applies the documentation rules to a field or accessor.
func (r *PropertyRule) propertyDocs(ctx Context, target model.Documentable) {
	f := r.f
	node := ctx.Node

	if node.Has(kwTitle) {
		f.TitleRule().Apply(ctx, target)
	}

	if node.Has(kwGoName) {
		f.GoNameRule().Apply(ctx, target)
	}

	if node.Has(kwDescription) {
		f.DescriptionRule().Apply(ctx, target)
	}

	if node.Has(kwComment) {
		f.CommentRule().Apply(ctx, target)
	}

	if isRequired(ctx.NodeName, node, ctx.Parent) {
		f.RequiredRule().Apply(ctx, target)
	} else {
		f.NotRequiredRule().Apply(ctx, target)
	}
}

// isRequired reports whether the parent's required array lists the
// property or the property sets the boolean required flag.
func isRequired(name string, node, parent *schema.Node) bool {
	return hasDeclaration(kwRequired, name, node, parent)
}

// hasDeclaration reports whether parent lists name in its keyword array,
// or node sets the keyword to true.
func hasDeclaration(keyword, name string, node, parent *schema.Node) bool {
	if slices.Contains(parent.Get(keyword).Strings(), name) {
		return true
	}

	return node.Get(keyword).Bool()
}

// optionalCapable reports whether a getter may use the comma-ok form.
func optionalCapable(t model.TypeRef) bool {
	return t.Category != model.CategoryPrimitive && t.Category != model.CategoryUnknown
}
