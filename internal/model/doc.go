package model

import (
	"slices"
	"strings"
)

// RequiredMarker is the documentation line marking a required property.
const RequiredMarker = "(Required)"

// Doc is an ordered documentation block.
type Doc struct {
	lines []string
}

// Append adds text to the block. Multi-line text is split into lines and
// surrounding blank lines are dropped.
func (d *Doc) Append(text string) {
	text = strings.Trim(text, "\n")
	if strings.TrimSpace(text) == "" {
		return
	}

	for _, line := range strings.Split(text, "\n") {
		d.lines = append(d.lines, strings.TrimRight(line, " \t\r"))
	}
}

// AppendOnce adds a single line unless the block already contains it.
func (d *Doc) AppendOnce(line string) {
	if d.Has(line) {
		return
	}

	d.Append(line)
}

// Has returns true if the block contains the exact line.
func (d *Doc) Has(line string) bool {
	return slices.Contains(d.lines, line)
}

// Lines returns the documentation lines.
func (d *Doc) Lines() []string {
	return d.lines
}

// IsEmpty returns true if the block has no lines.
func (d *Doc) IsEmpty() bool {
	return len(d.lines) == 0
}

// String joins the block with newlines.
func (d *Doc) String() string {
	return strings.Join(d.lines, "\n")
}

// Documentable is implemented by every model element carrying a doc block.
type Documentable interface {
	Documentation() *Doc
}
