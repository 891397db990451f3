// Package match ranks names by similarity. It backs the "did you mean"
// hints of unresolvable $ref paths.
//
// Names are compared after NormalizeIdent, so "postal_address",
// "postalAddress" and "PostalAddress" are identical.
package match
