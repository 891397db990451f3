package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"jsonschema-generator/internal/config"
	"jsonschema-generator/internal/model"
	"jsonschema-generator/internal/plan"
)

// supportFilename is the file holding helpers shared by Validate methods.
const supportFilename = "validation_support.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables doc comments and nullness markers.
	GenerateComments bool
	// IncludeValidation renders attached constraints and enum value checks
	// in Validate methods.
	IncludeValidation bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:       "models",
		OutputDir:         "./generated",
		GenerateComments:  true,
		IncludeValidation: true,
	}
}

// ConfigFrom derives the generator configuration from the generation config.
func ConfigFrom(cfg config.Config) GeneratorConfig {
	gc := DefaultGeneratorConfig()
	gc.PackageName = cfg.PackageName
	gc.OutputDir = cfg.OutputDir
	gc.IncludeValidation = cfg.IncludeValidation

	return gc
}

// Generator emits Go source for the classes of generation results.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "postal_address.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate emits one file per struct and enum class of the results, all in
// one package. Builder types are emitted next to the struct they build, and
// a class generated from the same schema by several results is emitted once.
// Files are returned sorted by name.
func (g *Generator) Generate(results ...*plan.Result) ([]GeneratedFile, error) {
	var (
		files   []GeneratedFile
		support bool
	)

	owners := make(map[string]*model.Class)
	documents := make(map[string]string)

	for _, r := range results {
		for _, cls := range r.Classes() {
			var (
				data *templateData
				tmpl *template.Template
			)

			switch cls.Kind {
			case model.KindStruct:
				var usesSupport bool

				data, usesSupport = g.buildStructData(r.Arena, cls)
				support = support || usesSupport
				tmpl = structTemplate
			case model.KindEnum:
				data = g.buildEnumData(cls)
				tmpl = enumTemplate
			default:
				continue
			}

			if owner, taken := owners[data.Filename]; taken {
				if owner.Name == cls.Name && cls.SchemaID != "" && owner.SchemaID == cls.SchemaID {
					continue
				}

				return nil, fmt.Errorf("%s: type %s of %s collides with a type of %s",
					data.Filename, cls.Name, r.Document, documents[data.Filename])
			}

			owners[data.Filename] = cls
			documents[data.Filename] = r.Document

			file, err := g.render(tmpl, data)
			if err != nil {
				return nil, fmt.Errorf("generating %s: %w", cls.Name, err)
			}

			files = append(files, *file)
		}
	}

	if support {
		if _, taken := owners[supportFilename]; taken {
			return nil, fmt.Errorf("%s: a generated type uses the name of the validation helpers file", supportFilename)
		}

		file, err := g.render(supportTemplate, &templateData{
			PackageName: g.config.PackageName,
			Filename:    supportFilename,
		})
		if err != nil {
			return nil, fmt.Errorf("generating validation helpers: %w", err)
		}

		files = append(files, *file)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Filename < files[j].Filename
	})

	return files, nil
}

// render executes a template and formats the result.
func (g *Generator) render(tmpl *template.Template, data *templateData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: the unformatted code is kept next to the output for debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

var templateFuncs = template.FuncMap{
	"indent": func(s string) string {
		return "\t" + strings.ReplaceAll(s, "\n", "\n\t")
	},
	"isGetter":  func(k model.MethodKind) bool { return k == model.MethodGetter },
	"isSetter":  func(k model.MethodKind) bool { return k == model.MethodSetter },
	"isBuilder": func(k model.MethodKind) bool { return k == model.MethodBuilder },
}

const fileHeader = `// Code generated by jsonschema-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	"{{.Path}}"
{{end}})
{{end}}`

// Template for struct files

var structTemplate = template.Must(template.New("struct").Funcs(templateFuncs).Parse(fileHeader + `
{{range .Patterns}}var {{.Name}} = regexp.MustCompile({{.Pattern}})
{{end}}
{{with .Struct}}{{$s := .}}
{{.Comment}}type {{.Name}} struct {
{{range .Fields}}{{.Comment}}	{{.Name}} {{.Type}}{{if .Tag}} {{.Tag}}{{end}}
{{end}}}

// New{{.Name}} creates a {{.Name}} holding the default values of its properties.
func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{
{{range .Fields}}{{if .Default}}		{{.Name}}: {{.Default}},
{{end}}{{end}}	}
}
{{range .Methods}}
{{.Comment}}{{if isGetter .Kind}}{{if .Optional}}func ({{$s.Receiver}} *{{$s.Name}}) {{.Name}}() ({{.Returns}}, bool) {
	return {{$s.Receiver}}.{{.Field}}, {{.Presence}}
}
{{else}}func ({{$s.Receiver}} *{{$s.Name}}) {{.Name}}() {{.Returns}} {
	return {{$s.Receiver}}.{{.Field}}
}
{{end}}{{else if isSetter .Kind}}func ({{$s.Receiver}} *{{$s.Name}}) {{.Name}}({{.Param}} {{.Type}}) {
	{{$s.Receiver}}.{{.Field}} = {{.Param}}
}
{{else if isBuilder .Kind}}func ({{$s.Receiver}} *{{$s.Name}}) {{.Name}}({{.Param}} {{.Type}}) {{.Returns}} {
	{{$s.Receiver}}.{{.Field}} = {{.Param}}

	return {{$s.Receiver}}
}
{{end}}{{end}}
{{with .Builder}}{{$b := .}}
// {{.Name}} builds {{$s.Name}} values.
type {{.Name}} struct {
	instance *{{$s.Name}}
}

// New{{.Name}} creates a {{.Name}} starting from New{{$s.Name}}().
func New{{.Name}}() *{{.Name}} {
	return &{{.Name}}{instance: New{{$s.Name}}()}
}
{{range .Methods}}
{{.Comment}}func ({{$b.Receiver}} *{{$b.Name}}) {{.Name}}({{.Param}} {{.Type}}) *{{$b.Name}} {
	{{$b.Receiver}}.instance.{{.Field}} = {{.Param}}

	return {{$b.Receiver}}
}
{{end}}
// Build returns a copy of the built {{$s.Name}}.
func ({{.Receiver}} *{{.Name}}) Build() *{{$s.Name}} {
	out := *{{.Receiver}}.instance

	return &out
}
{{end}}
{{with .Mirror}}
type {{.Name}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}{{if .Tag}} {{.Tag}}{{end}}
{{end}}}

// MarshalJSON implements json.Marshaler.
func ({{$s.Receiver}} {{$s.Name}}) MarshalJSON() ([]byte, error) {
	return json.Marshal({{.Name}}{
{{range .Fields}}		{{.Name}}: {{$s.Receiver}}.{{.Field}},
{{end}}	})
}

// UnmarshalJSON implements json.Unmarshaler. Properties missing from data
// keep their current values.
func ({{$s.Receiver}} *{{$s.Name}}) UnmarshalJSON(data []byte) error {
	aux := {{.Name}}{
{{range .Fields}}		{{.Name}}: {{$s.Receiver}}.{{.Field}},
{{end}}	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
{{range .Fields}}
	{{$s.Receiver}}.{{.Field}} = aux.{{.Name}}{{end}}

	return nil
}
{{end}}
// Validate checks the constraints of {{.Name}} and of the generated values nested in it.
func ({{.Receiver}} *{{.Name}}) Validate() error {
{{if .Checks}}	var errs []error
{{range .Checks}}
{{if .Comment}}	// {{.Comment}}
{{end}}{{if .Body}}{{indent .Body}}
{{end}}{{end}}
	return errors.Join(errs...)
{{else}}	return nil
{{end}}}
{{end}}`))

// Template for enum files

var enumTemplate = template.Must(template.New("enum").Parse(fileHeader + `
{{with .Enum}}
{{.Comment}}type {{.Name}} string

{{if .Values}}const (
{{range .Values}}	{{.Name}} {{$.Enum.Name}} = {{.Value}}
{{end}})
{{end}}
// String returns the JSON value of {{.Receiver}}.
func ({{.Receiver}} {{.Name}}) String() string {
	return string({{.Receiver}})
}

// Valid reports whether {{.Receiver}} is one of the defined constants.
func ({{.Receiver}} {{.Name}}) Valid() bool {
{{if .Values}}	switch {{.Receiver}} {
	case {{range $i, $v := .Values}}{{if $i}}, {{end}}{{$v.Name}}{{end}}:
		return true
	default:
		return false
	}
{{else}}	return false
{{end}}}
{{end}}`))

// Template for the validation helpers file

var supportTemplate = template.Must(template.New("support").Parse(`// Code generated by jsonschema-generator. DO NOT EDIT.

package {{.PackageName}}

import (
	"math"
	"net/mail"
	"net/url"
	"strings"
)

// validEmail reports whether s is a single address without display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)

	return err == nil && addr.Address == s
}

// validURL reports whether s is an absolute URL.
func validURL(s string) bool {
	u, err := url.Parse(s)

	return err == nil && u.Scheme != ""
}

// validDigits reports whether the decimal s has at most integer integral
// and fraction fractional digits.
func validDigits(s string, integer, fraction int) bool {
	s = strings.TrimLeft(s, "+-")

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return false
	}

	for _, part := range []string{whole, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}

	whole = strings.TrimLeft(whole, "0")
	frac = strings.TrimRight(frac, "0")

	return len(whole) <= integer && len(frac) <= fraction
}

// isMultipleOf reports whether v is an integral multiple of factor.
func isMultipleOf(v, factor float64) bool {
	q := v / factor

	return math.Abs(q-math.Round(q)) < 1e-9
}
`))
