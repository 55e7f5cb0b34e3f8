package config

import (
	"github.com/getmockd/factories/pkg/logging"
	"github.com/getmockd/factories/pkg/naming"
)

// Default directory roots.
const (
	DefaultRequestDirectory           = "app/http/requests/"
	DefaultRequestFactoriesDirectory  = "tests/requestfactories/"
	DefaultResourceDirectory          = "app/http/resources/"
	DefaultResourceFactoriesDirectory = "tests/resourcefactories/"
)

// Config source constants record where a value came from.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config is the complete factories configuration.
type Config struct {
	// RequestDirectory is the qualified-name root of form request subjects.
	RequestDirectory string `json:"requestDirectory" yaml:"requestDirectory" mapstructure:"request-directory"`
	// RequestFactoriesDirectory is the root of request factories.
	RequestFactoriesDirectory string `json:"requestFactoriesDirectory" yaml:"requestFactoriesDirectory" mapstructure:"request-factories-directory"`
	// ResourceDirectory is the root of API resource subjects.
	ResourceDirectory string `json:"resourceDirectory" yaml:"resourceDirectory" mapstructure:"resource-directory"`
	// ResourceFactoriesDirectory is the root of resource factories.
	ResourceFactoriesDirectory string `json:"resourceFactoriesDirectory" yaml:"resourceFactoriesDirectory" mapstructure:"resource-factories-directory"`

	// Debug makes the exception renderer expose error messages on 500 responses.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`

	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`

	// Sources tracks where each value was set. Keys are the yaml field names.
	Sources map[string]string `json:"-" yaml:"-" mapstructure:"-"`
}

// LoggingConfig configures the slog logger handed to the providers.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns a Config with every field at its default value.
func DefaultConfig() *Config {
	return &Config{
		RequestDirectory:           DefaultRequestDirectory,
		RequestFactoriesDirectory:  DefaultRequestFactoriesDirectory,
		ResourceDirectory:          DefaultResourceDirectory,
		ResourceFactoriesDirectory: DefaultResourceFactoriesDirectory,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Sources: map[string]string{
			"requestDirectory":           SourceDefault,
			"requestFactoriesDirectory":  SourceDefault,
			"resourceDirectory":          SourceDefault,
			"resourceFactoriesDirectory": SourceDefault,
			"debug":                      SourceDefault,
			"logging.level":              SourceDefault,
			"logging.format":             SourceDefault,
		},
	}
}

// RequestResolver returns the naming resolver for form requests.
func (c *Config) RequestResolver() naming.Resolver {
	return naming.Resolver{SubjectRoot: c.RequestDirectory, FactoryRoot: c.RequestFactoriesDirectory}
}

// ResourceResolver returns the naming resolver for API resources.
func (c *Config) ResourceResolver() naming.Resolver {
	return naming.Resolver{SubjectRoot: c.ResourceDirectory, FactoryRoot: c.ResourceFactoriesDirectory}
}

// LoggerConfig converts the logging section into a logging.Config.
// Unknown levels and formats fall back to the logging defaults.
func (c *Config) LoggerConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Logging.Level)
	lc.Format = logging.ParseFormat(c.Logging.Format)
	return lc
}

// SetSource records the origin of a field.
func (c *Config) SetSource(field, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[field] = source
}

// Source returns where a field was set, or SourceDefault.
func (c *Config) Source(field string) string {
	if s, ok := c.Sources[field]; ok {
		return s
	}
	return SourceDefault
}
