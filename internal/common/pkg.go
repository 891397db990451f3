package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() value of enum values outside their declared range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitQualified splits a qualified Go type name like "time.Time" or
// "example.com/money.Amount" into its package path and type name.
// An unqualified name yields an empty package path.
func SplitQualified(qualified string) (pkgPath, name string) {
	lastDot := strings.LastIndex(qualified, ".")
	if lastDot < 0 {
		return "", qualified
	}

	return qualified[:lastDot], qualified[lastDot+1:]
}
