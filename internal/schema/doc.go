// Package schema loads JSON Schema documents into read-only node trees and
// resolves $ref targets.
//
// Documents are parsed with gopkg.in/yaml.v3 (YAML) or an order preserving
// JSON reader, then cached in a Store by normalized URI. Fragments are
// resolved with configurable delimiter characters, "#" being the document
// root. A MetaValidator checks documents against a draft meta-schema using
// github.com/santhosh-tekuri/jsonschema/v6.
package schema
