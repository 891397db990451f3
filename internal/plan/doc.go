// Package plan provides the generation pass that produces a Result
// consumed by code emission.
//
// Generation pipeline:
//  1. Load the document into a fresh schema store
//  2. Check it against the meta-schema (optional) → diagnostics
//  3. Run the schema rule on the document root, which recursively creates
//     classes, fields, accessors and constraints in a fresh arena
//  4. Report goType lookups that failed and, across documents, type names
//     generated twice
package plan
