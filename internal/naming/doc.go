// Package naming derives Go identifiers from raw schema property names.
package naming
