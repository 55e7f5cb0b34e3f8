package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/getmockd/factories/pkg/config"
	"github.com/getmockd/factories/pkg/factories"
)

// DefaultConfigFile is read when no config file is given.
const DefaultConfigFile = "factories.yaml"

// Flag names. Viper keys and environment variables derive from them.
const (
	keyConfig                     = "config"
	keyRequestDirectory           = "request-directory"
	keyRequestFactoriesDirectory  = "request-factories-directory"
	keyResourceDirectory          = "resource-directory"
	keyResourceFactoriesDirectory = "resource-factories-directory"
	keyDebug                      = "debug"
	keyLogLevel                   = "log-level"
	keyLogFormat                  = "log-format"
)

// setting maps a viper key onto a Config field.
type setting struct {
	key   string
	field string
	apply func(cfg *config.Config, v *viper.Viper)
}

func stringSetting(key, field string, dst func(*config.Config) *string) setting {
	return setting{key: key, field: field, apply: func(cfg *config.Config, v *viper.Viper) {
		*dst(cfg) = v.GetString(key)
	}}
}

var settings = []setting{
	stringSetting(keyRequestDirectory, "requestDirectory", func(c *config.Config) *string { return &c.RequestDirectory }),
	stringSetting(keyRequestFactoriesDirectory, "requestFactoriesDirectory", func(c *config.Config) *string { return &c.RequestFactoriesDirectory }),
	stringSetting(keyResourceDirectory, "resourceDirectory", func(c *config.Config) *string { return &c.ResourceDirectory }),
	stringSetting(keyResourceFactoriesDirectory, "resourceFactoriesDirectory", func(c *config.Config) *string { return &c.ResourceFactoriesDirectory }),
	stringSetting(keyLogLevel, "logging.level", func(c *config.Config) *string { return &c.Logging.Level }),
	stringSetting(keyLogFormat, "logging.format", func(c *config.Config) *string { return &c.Logging.Format }),
	{key: keyDebug, field: "debug", apply: func(cfg *config.Config, v *viper.Viper) {
		cfg.Debug = v.GetBool(keyDebug)
	}},
}

// configFile returns the config file to read, or "" for none.
func (a *app) configFile() string {
	if path := a.v.GetString(keyConfig); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// loadConfig layers flags over environment over file over defaults and
// records the source of every value.
func (a *app) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := a.configFile(); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := a.root.PersistentFlags()
	for _, s := range settings {
		if !a.v.IsSet(s.key) {
			continue
		}
		s.apply(cfg, a.v)
		source := config.SourceEnv
		if f := flags.Lookup(s.key); f != nil && f.Changed {
			source = config.SourceFlag
		}
		cfg.SetSource(s.field, source)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// kit loads the configuration and builds the providers from it.
func (a *app) kit() (*factories.Kit, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return factories.New(cfg)
}
