package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy matching: separators
// (_, -, space and $) are dropped and the rest is lower cased, e.g.
// "Postal_Address" becomes "postaladdress".
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '$'
}
