// Package diagnostic provides structured warnings and errors collected
// while generating a class model from a schema document.
//
// Key capabilities:
//   - Meta-schema violations located by JSON pointer
//   - Class name collisions across documents
//   - Severity ordered reporting for the CLI
package diagnostic
