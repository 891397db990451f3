// Package main provides the CLI entrypoint for jsonschema-generator.
//
// jsonschema-generator turns JSON Schema documents into Go types:
//   - Loads schemas from files, http(s) URLs and their $ref targets
//   - Checks them against a meta-schema
//   - Builds a class model of structs, enums, accessors and constraints
//   - Emits gofmt'ed Go source with Validate methods
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, newRootCommand()); err != nil {
		stop()
		os.Exit(1)
	}
}
