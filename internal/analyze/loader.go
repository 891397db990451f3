package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"jsonschema-generator/internal/common"
	"jsonschema-generator/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedTypes |
	packages.NeedImports

// ErrTypeNotFound is returned when a package does not declare the named type.
var ErrTypeNotFound = errors.New("type not found")

// Resolver looks up existing Go types named by the goType keyword and
// classifies them into a value category. Loaded packages are cached; a
// Resolver is safe for concurrent use.
type Resolver struct {
	ctx    context.Context
	dir    string
	logger *zap.Logger

	mu       sync.Mutex
	packages map[string]*types.Package
	failures map[string]error
}

// NewResolver creates a Resolver loading packages relative to dir ("" means
// the working directory).
func NewResolver(ctx context.Context, dir string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		ctx:      ctx,
		dir:      dir,
		logger:   logger,
		packages: make(map[string]*types.Package),
		failures: make(map[string]error),
	}
}

// Lookup resolves a goType expression to a TypeRef. When the package cannot
// be loaded the error is returned together with a TypeRef of unknown category
// that still renders the expression, so generation can carry on.
func (r *Resolver) Lookup(goType string) (model.TypeRef, error) {
	expr, err := ParseTypeExpr(goType)
	if err != nil {
		return model.TypeRef{}, err
	}

	t, err := r.lookupNamed(expr.ID)
	if err != nil {
		return unresolved(expr), err
	}

	ref := r.toTypeRef(t, expr.ID)
	for i := len(expr.Wraps) - 1; i >= 0; i-- {
		switch expr.Wraps[i] {
		case WrapSlice:
			ref = model.SliceOf(ref)
		case WrapPointer:
			elem := ref
			ref = model.TypeRef{
				Name:     "*" + elem.Name,
				Category: model.CategoryReference,
				Elem:     &elem,
				Class:    model.NoClass,
			}
		}
	}

	return ref, nil
}

func (r *Resolver) lookupNamed(id TypeID) (types.Type, error) {
	if id.IsBuiltin() {
		obj := types.Universe.Lookup(id.Name)
		if tn, ok := obj.(*types.TypeName); ok {
			return tn.Type(), nil
		}

		return nil, fmt.Errorf("%w: %s is not a predeclared type", ErrTypeNotFound, id.Name)
	}

	pkg, err := r.load(id.PkgPath)
	if err != nil {
		return nil, err
	}

	tn, ok := pkg.Scope().Lookup(id.Name).(*types.TypeName)
	if !ok || !tn.Exported() {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, id)
	}

	return tn.Type(), nil
}

func (r *Resolver) load(pkgPath string) (*types.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pkg, ok := r.packages[pkgPath]; ok {
		return pkg, nil
	}

	if err, ok := r.failures[pkgPath]; ok {
		return nil, err
	}

	pkg, err := r.loadUncached(pkgPath)
	if err != nil {
		r.failures[pkgPath] = err
		r.logger.Debug("goType package not loadable", zap.String("package", pkgPath), zap.Error(err))

		return nil, err
	}

	r.packages[pkgPath] = pkg

	return pkg, nil
}

func (r *Resolver) loadUncached(pkgPath string) (*types.Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: r.ctx,
		Dir:     r.dir,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", pkgPath, err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("failed to load package %s: got %d packages", pkgPath, len(pkgs))
	}

	var errs []error
	for _, e := range pkgs[0].Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors in %s: %w", pkgPath, errors.Join(errs...))
	}

	return pkgs[0].Types, nil
}

// toTypeRef renders and classifies a named or predeclared type.
func (r *Resolver) toTypeRef(t types.Type, id TypeID) model.TypeRef {
	ref := model.TypeRef{Name: id.Name, Class: model.NoClass}
	if !id.IsBuiltin() {
		ref.Name = common.PkgAlias(id.PkgPath) + "." + id.Name
		ref.Import = id.PkgPath

		if named, ok := t.(*types.Named); ok && named.Obj().Pkg() != nil {
			ref.Name = named.Obj().Pkg().Name() + "." + id.Name
		}
	}

	ref.Category, ref.Numeric, ref.Integer = Classify(t)

	return ref
}

// Classify returns the value category of a Go type and whether it is
// numeric and integral.
func Classify(t types.Type) (category model.Category, numeric, integer bool) {
	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsString != 0:
			return model.CategoryString, false, false
		case info&types.IsInteger != 0:
			return model.CategoryPrimitive, true, true
		case info&types.IsNumeric != 0:
			return model.CategoryPrimitive, true, false
		case info&types.IsBoolean != 0:
			return model.CategoryPrimitive, false, false
		default:
			return model.CategoryReference, false, false
		}
	case *types.Slice, *types.Array:
		return model.CategoryCollection, false, false
	case *types.Struct:
		return model.CategoryPrimitive, false, false
	case *types.Pointer, *types.Map, *types.Interface, *types.Chan, *types.Signature:
		return model.CategoryReference, false, false
	default:
		return model.CategoryUnknown, false, false
	}
}

// unresolved renders an expression whose type could not be loaded.
func unresolved(expr TypeExpr) model.TypeRef {
	name := expr.ID.Name
	if !expr.ID.IsBuiltin() {
		name = common.PkgAlias(expr.ID.PkgPath) + "." + name
	}

	prefix := ""
	for _, w := range expr.Wraps {
		if w == WrapSlice {
			prefix += "[]"
		} else {
			prefix += "*"
		}
	}

	return model.TypeRef{
		Name:     prefix + name,
		Import:   expr.ID.PkgPath,
		Category: model.CategoryUnknown,
		Class:    model.NoClass,
	}
}
