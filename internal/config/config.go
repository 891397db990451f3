// Package config holds the generation configuration shared (read-only) by
// every generation pass, and loads it from YAML files and JSG_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Meta-schemas accepted by ValidateSchemas.
const (
	MetaSchemaDraft07   = "http://json-schema.org/draft-07/schema"
	MetaSchemaDraft2020 = "https://json-schema.org/draft/2020-12/schema"
)

// EnvPrefix prefixes environment variable overrides, e.g. JSG_INCLUDE_GETTERS.
const EnvPrefix = "JSG"

// Config holds configuration for class-model generation and emission.
type Config struct {
	// PackageName is the name of the generated Go package.
	PackageName string `mapstructure:"package_name"`
	// OutputDir is the directory where generated files are written.
	OutputDir string `mapstructure:"output_dir"`

	// IncludeGetters generates a getter per property.
	IncludeGetters bool `mapstructure:"include_getters"`
	// IncludeSetters generates a setter per property.
	IncludeSetters bool `mapstructure:"include_setters"`
	// GenerateBuilders generates a builder method per property.
	GenerateBuilders bool `mapstructure:"generate_builders"`
	// UseBuilderTypes puts builder methods on a separate <Class>Builder type
	// instead of fluent With* methods on the class itself.
	UseBuilderTypes bool `mapstructure:"use_builder_types"`
	// ExternalAccessors marks accessors as produced by an external tool;
	// fields are unexported even when no accessors are generated here.
	ExternalAccessors bool `mapstructure:"external_accessors"`
	// IncludeValidation attaches validation constraints to fields.
	IncludeValidation bool `mapstructure:"include_validation"`
	// IncludeNullness attaches nonnull/nullable markers to fields.
	IncludeNullness bool `mapstructure:"include_nullness"`
	// UseOptionalForGetters makes getters of optional reference properties
	// return the comma-ok form (T, bool).
	UseOptionalForGetters bool `mapstructure:"use_optional_for_getters"`
	// RefFragmentPathDelimiters are the characters splitting a $ref fragment
	// into path segments.
	RefFragmentPathDelimiters string `mapstructure:"ref_fragment_path_delimiters"`

	// ValidateSchemas checks every input document against MetaSchema.
	ValidateSchemas bool `mapstructure:"validate_schemas"`
	// StrictSchemas turns meta-schema violations into fatal errors.
	StrictSchemas bool `mapstructure:"strict_schemas"`
	// MetaSchema is the meta-schema URL used by ValidateSchemas.
	MetaSchema string `mapstructure:"meta_schema"`
	// HTTPTimeout bounds fetching of http(s) $ref targets.
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	// Parallelism bounds how many documents are generated concurrently.
	Parallelism int `mapstructure:"parallelism"`
	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the default generation configuration.
func Default() Config {
	return Config{
		PackageName:               "models",
		OutputDir:                 "./generated",
		IncludeGetters:            true,
		IncludeSetters:            true,
		GenerateBuilders:          false,
		UseBuilderTypes:           false,
		ExternalAccessors:         false,
		IncludeValidation:         true,
		IncludeNullness:           false,
		UseOptionalForGetters:     false,
		RefFragmentPathDelimiters: "#/.",
		ValidateSchemas:           true,
		StrictSchemas:             false,
		MetaSchema:                MetaSchemaDraft07,
		HTTPTimeout:               10 * time.Second,
		Parallelism:               4,
		LogLevel:                  "info",
	}
}

// Load reads configuration from the YAML file at path (optional) on top of
// Default(), then applies JSG_* environment overrides.
// An empty path looks for jsonschema-generator.yaml in the working directory
// and silently falls back to defaults when it does not exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jsonschema-generator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values generation cannot work with.
func (c *Config) Validate() error {
	if c.PackageName == "" {
		return errors.New("package_name must not be empty")
	}

	if c.RefFragmentPathDelimiters == "" {
		return errors.New("ref_fragment_path_delimiters must not be empty")
	}

	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}

	if c.ValidateSchemas && c.MetaSchema == "" {
		return errors.New("meta_schema is required when validate_schemas is enabled")
	}

	return nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("package_name", d.PackageName)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("include_getters", d.IncludeGetters)
	v.SetDefault("include_setters", d.IncludeSetters)
	v.SetDefault("generate_builders", d.GenerateBuilders)
	v.SetDefault("use_builder_types", d.UseBuilderTypes)
	v.SetDefault("external_accessors", d.ExternalAccessors)
	v.SetDefault("include_validation", d.IncludeValidation)
	v.SetDefault("include_nullness", d.IncludeNullness)
	v.SetDefault("use_optional_for_getters", d.UseOptionalForGetters)
	v.SetDefault("ref_fragment_path_delimiters", d.RefFragmentPathDelimiters)
	v.SetDefault("validate_schemas", d.ValidateSchemas)
	v.SetDefault("strict_schemas", d.StrictSchemas)
	v.SetDefault("meta_schema", d.MetaSchema)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("parallelism", d.Parallelism)
	v.SetDefault("log_level", d.LogLevel)
}
