// Package gen emits Go source for the class model of generation results.
//
// Generation approach uses text/template + go/format for readable Go code.
//
// Every struct class becomes one file holding:
//   - the struct with doc comments, nullness markers and struct tags
//   - a New<Class> constructor assigning default values
//   - getters, setters and fluent With* methods, or a <Class>Builder type
//   - a JSON mirror with MarshalJSON/UnmarshalJSON when fields are unexported
//   - a Validate method rendering the attached constraints
//
// Enum classes become string types with constants, String and Valid.
// Helpers shared by Validate methods go to validation_support.go.
package gen
