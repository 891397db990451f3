// Package rules turns schema nodes into a class model.
//
// Every keyword is handled by a small rule. The PropertyRule orchestrates
// them per property in a fixed order: type resolution, $ref resolution,
// field creation, documentation, accessors, builder method, then the
// constraint rules. The RequiredArrayRule runs once per class afterwards
// and finds the generated members through the PropertyHandle the property
// rule returned.
//
// Rules never fail on constraints they cannot apply; they skip them and
// log at debug level. Type resolution and $ref errors abort the document.
package rules
