package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvRequestDirectory           = "FACTORIES_REQUEST_DIRECTORY"
	EnvRequestFactoriesDirectory  = "FACTORIES_REQUEST_FACTORIES_DIRECTORY"
	EnvResourceDirectory          = "FACTORIES_RESOURCE_DIRECTORY"
	EnvResourceFactoriesDirectory = "FACTORIES_RESOURCE_FACTORIES_DIRECTORY"
	EnvDebug                      = "FACTORIES_DEBUG"
	EnvLogLevel                   = "FACTORIES_LOG_LEVEL"
	EnvLogFormat                  = "FACTORIES_LOG_FORMAT"
	EnvConfig                     = "FACTORIES_CONFIG"
)

// LoadEnv applies environment overrides from the process environment.
func LoadEnv(cfg *Config) {
	ApplyEnv(cfg, os.Getenv)
}

// ApplyEnv applies overrides read through getenv. Only variables with a
// non-empty value are applied.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	strs := []struct {
		env   string
		field string
		dst   *string
	}{
		{EnvRequestDirectory, "requestDirectory", &cfg.RequestDirectory},
		{EnvRequestFactoriesDirectory, "requestFactoriesDirectory", &cfg.RequestFactoriesDirectory},
		{EnvResourceDirectory, "resourceDirectory", &cfg.ResourceDirectory},
		{EnvResourceFactoriesDirectory, "resourceFactoriesDirectory", &cfg.ResourceFactoriesDirectory},
		{EnvLogLevel, "logging.level", &cfg.Logging.Level},
		{EnvLogFormat, "logging.format", &cfg.Logging.Format},
	}
	for _, s := range strs {
		if v := getenv(s.env); v != "" {
			*s.dst = v
			cfg.SetSource(s.field, SourceEnv)
		}
	}

	if v := getenv(EnvDebug); v != "" {
		cfg.Debug = parseBool(v)
		cfg.SetSource("debug", SourceEnv)
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
