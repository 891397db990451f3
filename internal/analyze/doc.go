// Package analyze looks up existing Go types referenced by schemas.
//
// It uses golang.org/x/tools/go/packages with go/types to load the
// package named by a goType value and classify the type once into a
// model.Category, so constraint rules never probe types late.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeExpr: a TypeID wrapped in slice and pointer constructors
//   - Resolver: cached package loading and classification
package analyze
