package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var defaultPrinter = message.NewPrinter(language.English)

// Violation is one meta-schema violation of a schema document.
type Violation struct {
	// Pointer is the JSON pointer of the offending value.
	Pointer string
	// Message describes the violation.
	Message string
	// Missing is true when a required keyword is absent.
	Missing bool
}

// MetaValidator checks schema documents against a JSON Schema meta-schema.
// It is safe for concurrent use.
type MetaValidator struct {
	url string

	once     sync.Once
	compiled *jsValidator.Schema
	err      error
}

// NewMetaValidator creates a validator for the meta-schema at url, e.g.
// http://json-schema.org/draft-07/schema. Standard drafts are built in.
func NewMetaValidator(url string) *MetaValidator {
	return &MetaValidator{url: url}
}

func (v *MetaValidator) compile() (*jsValidator.Schema, error) {
	v.once.Do(func() {
		c := jsValidator.NewCompiler()
		v.compiled, v.err = c.Compile(v.url)
		if v.err != nil {
			v.err = fmt.Errorf("failed to compile meta-schema %s: %w", v.url, v.err)
		}
	})

	return v.compiled, v.err
}

// Validate returns the meta-schema violations of the document rooted at node.
func (v *MetaValidator) Validate(node *Node) ([]Violation, error) {
	compiled, err := v.compile()
	if err != nil {
		return nil, err
	}

	plain, err := node.Interface()
	if err != nil {
		return nil, fmt.Errorf("schema is not decodable: %w", err)
	}

	data, err := json.Marshal(plain)
	if err != nil {
		return nil, fmt.Errorf("schema is not valid json: %w", err)
	}

	instance, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("schema is not valid json: %w", err)
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil, nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("meta-schema validation failed: %w", err)
	}

	return rootCauses(validationErr), nil
}

func rootCauses(err *jsValidator.ValidationError) []Violation {
	if len(err.Causes) == 0 {
		return []Violation{toViolation(err)}
	}

	var out []Violation
	for _, cause := range err.Causes {
		out = append(out, rootCauses(cause)...)
	}

	return out
}

func toViolation(err *jsValidator.ValidationError) Violation {
	pointer := "/" + strings.Join(err.InstanceLocation, "/")
	location := strings.Join(err.InstanceLocation, ".")

	v := Violation{
		Pointer: pointer,
		Message: strings.TrimSpace(fmt.Sprintf("schema field %s %s", location, err.ErrorKind.LocalizedString(defaultPrinter))),
	}

	if _, ok := err.ErrorKind.(*kind.Required); ok {
		v.Missing = true
	}

	return v
}
