package schema

import (
	"fmt"
	"strconv"
	"strings"

	"jsonschema-generator/internal/match"
)

// ResolveFragment walks a fragment path from root. The path is split on
// any of the delimiter characters; each segment selects an object key, or
// an element index when the current node is an array. "#" and "" select
// root itself.
func ResolveFragment(root *Node, fragment, delimiters string) (*Node, error) {
	path := strings.TrimPrefix(fragment, "#")

	segments := strings.FieldsFunc(path, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})

	current := root
	for _, seg := range segments {
		seg = unescapePointer(seg)

		var next *Node
		if current.IsArray() {
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("%w: segment %q of %q is not an array index",
					ErrUnresolvableReference, seg, fragment)
			}

			next = current.Index(i)
		} else {
			next = current.Get(seg)
		}

		if next == nil {
			if hint, ok := match.Suggest(seg, current.Keys()); ok {
				return nil, fmt.Errorf("%w: path %q not present (missing %q, did you mean %q?)",
					ErrUnresolvableReference, fragment, seg, hint)
			}

			return nil, fmt.Errorf("%w: path %q not present (missing %q)", ErrUnresolvableReference, fragment, seg)
		}

		current = next
	}

	return current, nil
}

func unescapePointer(seg string) string {
	if !strings.Contains(seg, "~") {
		return seg
	}

	return strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~")
}
