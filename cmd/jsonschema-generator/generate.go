package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/diagnostic"
	"jsonschema-generator/internal/gen"
	"jsonschema-generator/internal/plan"
)

// schemaExtensions are the files picked up from directory arguments.
var schemaExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

type generateOptions struct {
	outputDir   string
	packageName string
	typeDir     string
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:     "generate <schema>...",
		Aliases: []string{"gen"},
		Short:   "Generate Go types from schema documents",
		Long: `Generate Go types from schema files, directories of schema files
or http(s) URLs. All documents are generated into one package.

Examples:
  jsonschema-generator generate schemas/ -o ./models -p models
  jsonschema-generator generate https://example.com/person.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if opts.outputDir != "" {
				cfg.OutputDir = opts.outputDir
			}

			if opts.packageName != "" {
				cfg.PackageName = opts.packageName
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			results, err := runPasses(cmd.Context(), cmd.OutOrStdout(), cfg, logger, opts.typeDir, args)
			if err != nil {
				return err
			}

			files, err := gen.NewGenerator(gen.ConfigFrom(*cfg)).Generate(results...)
			if err != nil {
				return err
			}

			written, err := gen.WriteFiles(files, cfg.OutputDir)
			if err != nil {
				return err
			}

			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
				"✓ %d files generated in %s (%d changed)\n", len(files), cfg.OutputDir, written)

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", "", "output directory (overrides output_dir)")
	cmd.Flags().StringVarP(&opts.packageName, "package", "p", "", "package name (overrides package_name)")
	cmd.Flags().StringVar(&opts.typeDir, "type-dir", ".", "directory goType packages are resolved from")

	return cmd
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	var typeDir string

	cmd := &cobra.Command{
		Use:   "check <schema>...",
		Short: "Check schema documents without writing code",
		Long: `Run generation over the documents and report diagnostics and the
types that would be generated. Nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			results, err := runPasses(cmd.Context(), cmd.OutOrStdout(), cfg, logger, typeDir, args)
			if err != nil {
				return err
			}

			infoColor := color.New(color.FgCyan)
			out := cmd.OutOrStdout()

			for _, r := range results {
				infoColor.Fprintln(out, r.Document)

				for _, cls := range r.Classes() {
					fmt.Fprintf(out, "  %s (%s)\n", cls.Name, cls.Kind)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&typeDir, "type-dir", ".", "directory goType packages are resolved from")

	return cmd
}

// runPasses generates every document, prints the diagnostics and fails if
// any document has errors.
func runPasses(
	ctx context.Context,
	out io.Writer,
	cfg *config.Config,
	logger *zap.Logger,
	typeDir string,
	args []string,
) ([]*plan.Result, error) {
	locations, err := expandLocations(args)
	if err != nil {
		return nil, err
	}

	mapper := plan.NewMapper(*cfg, plan.WithLogger(logger), plan.WithTypeDir(typeDir))

	results, err := mapper.GenerateAll(ctx, locations)
	if err != nil {
		return nil, err
	}

	failed := 0

	for _, r := range results {
		printDiagnostics(out, r.Diagnostics)

		if r.HasErrors() {
			failed++
		}
	}

	if failed > 0 {
		return nil, fmt.Errorf("%d of %d documents failed", failed, len(results))
	}

	return results, nil
}

func printDiagnostics(out io.Writer, diags diagnostic.Diagnostics) {
	errorColor := color.New(color.FgRed)
	warningColor := color.New(color.FgYellow)

	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.DiagnosticError:
			errorColor.Fprintln(out, "error: "+d.String())
		case diagnostic.DiagnosticWarning:
			warningColor.Fprintln(out, "warning: "+d.String())
		default:
			fmt.Fprintln(out, "info: "+d.String())
		}
	}
}

// expandLocations replaces directory arguments by the schema files below
// them, in lexical order. URLs and files are kept as given.
func expandLocations(args []string) ([]string, error) {
	var locations []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			locations = append(locations, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !d.IsDir() && schemaExtensions[strings.ToLower(filepath.Ext(path))] {
				locations = append(locations, path)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("no schema documents found in %s", strings.Join(args, ", "))
	}

	return locations, nil
}
