package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML schema document into a node tree.
// Documents named *.yaml or *.yml are parsed as YAML, anything else is
// sniffed: a leading '{' or '[' selects JSON.
func Parse(name string, data []byte) (*Node, error) {
	if isJSON(name, data) {
		raw, err := parseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON %s: %w", name, err)
		}

		return NewNode(raw, nil), nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", name, err)
	}

	root := NewNode(&doc, nil)
	if root == nil {
		return nil, fmt.Errorf("document %s is empty", name)
	}

	return root, nil
}

func isJSON(name string, data []byte) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return false
	case ".json":
		return true
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")

	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// parseJSON builds a yaml node tree from JSON text, keeping key order.
func parseJSON(data []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	p := &jsonParser{dec: dec, data: data, lines: newlineOffsets(data)}

	root, err := p.value()
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}

	return root, nil
}

type jsonParser struct {
	dec   *json.Decoder
	data  []byte
	lines []int
}

// line returns the line of the next token.
func (p *jsonParser) line() int {
	off := int(p.dec.InputOffset())
	for off < len(p.data) && strings.IndexByte(" \t\r\n:,", p.data[off]) >= 0 {
		off++
	}

	return sort.SearchInts(p.lines, off) + 1
}

func (p *jsonParser) value() (*yaml.Node, error) {
	line := p.line()

	tok, err := p.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object(line)
		case '[':
			return p.array(line)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q at line %d", t, line)
		}
	case string:
		return scalar("!!str", t, line, yaml.DoubleQuotedStyle), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}

		return scalar(tag, t.String(), line, 0), nil
	case bool:
		if t {
			return scalar("!!bool", "true", line, 0), nil
		}

		return scalar("!!bool", "false", line, 0), nil
	case nil:
		return scalar("!!null", "null", line, 0), nil
	default:
		return nil, fmt.Errorf("unexpected token %v at line %d", tok, line)
	}
}

func (p *jsonParser) object(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}

	for p.dec.More() {
		keyLine := p.line()

		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string at line %d", keyLine)
		}

		val, err := p.value()
		if err != nil {
			return nil, err
		}

		n.Content = append(n.Content, scalar("!!str", key, keyLine, yaml.DoubleQuotedStyle), val)
	}

	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

func (p *jsonParser) array(line int) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}

	for p.dec.More() {
		val, err := p.value()
		if err != nil {
			return nil, err
		}

		n.Content = append(n.Content, val)
	}

	if _, err := p.dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

func scalar(tag, value string, line int, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: line, Style: style}
}

func newlineOffsets(data []byte) []int {
	var out []int
	for i, b := range data {
		if b == '\n' {
			out = append(out, i)
		}
	}

	return out
}
