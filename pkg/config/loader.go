package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// fileConfig mirrors Config with pointer fields so the loader can tell an
// omitted key from an explicit zero value.
type fileConfig struct {
	RequestDirectory           *string `json:"requestDirectory" yaml:"requestDirectory"`
	RequestFactoriesDirectory  *string `json:"requestFactoriesDirectory" yaml:"requestFactoriesDirectory"`
	ResourceDirectory          *string `json:"resourceDirectory" yaml:"resourceDirectory"`
	ResourceFactoriesDirectory *string `json:"resourceFactoriesDirectory" yaml:"resourceFactoriesDirectory"`
	Debug                      *bool   `json:"debug" yaml:"debug"`
	Logging                    *struct {
		Level  *string `json:"level" yaml:"level"`
		Format *string `json:"format" yaml:"format"`
	} `json:"logging" yaml:"logging"`
}

// LoadFromFile reads a Config from a JSON or YAML file, layered over the
// defaults. The format is detected from the extension (.yaml, .yml for YAML,
// otherwise JSON).
func LoadFromFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return ParseJSON(data)
}

// ParseJSON parses JSON bytes into a Config layered over the defaults.
func ParseJSON(data []byte) (*Config, error) {
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return fromFile(&fc)
}

// ParseYAML parses YAML bytes into a Config layered over the defaults.
func ParseYAML(data []byte) (*Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return fromFile(&fc)
}

func fromFile(fc *fileConfig) (*Config, error) {
	cfg := DefaultConfig()

	setString := func(dst *string, v *string, field string) {
		if v != nil {
			*dst = *v
			cfg.SetSource(field, SourceFile)
		}
	}

	setString(&cfg.RequestDirectory, fc.RequestDirectory, "requestDirectory")
	setString(&cfg.RequestFactoriesDirectory, fc.RequestFactoriesDirectory, "requestFactoriesDirectory")
	setString(&cfg.ResourceDirectory, fc.ResourceDirectory, "resourceDirectory")
	setString(&cfg.ResourceFactoriesDirectory, fc.ResourceFactoriesDirectory, "resourceFactoriesDirectory")

	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
		cfg.SetSource("debug", SourceFile)
	}

	if fc.Logging != nil {
		setString(&cfg.Logging.Level, fc.Logging.Level, "logging.level")
		setString(&cfg.Logging.Format, fc.Logging.Format, "logging.format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// ToYAML marshals a Config to YAML bytes.
func ToYAML(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}
