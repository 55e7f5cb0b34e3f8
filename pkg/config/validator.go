package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks that subject and factory roots can be told apart and that
// the logging section is well formed. Empty roots are allowed.
func (c *Config) Validate() error {
	if c.RequestDirectory != "" && c.RequestDirectory == c.RequestFactoriesDirectory {
		return &ValidationError{
			Field:   "requestFactoriesDirectory",
			Message: "must differ from requestDirectory",
		}
	}
	if c.ResourceDirectory != "" && c.ResourceDirectory == c.ResourceFactoriesDirectory {
		return &ValidationError{
			Field:   "resourceFactoriesDirectory",
			Message: "must differ from resourceDirectory",
		}
	}
	if lvl := strings.ToLower(c.Logging.Level); lvl != "" && !validLevels[lvl] {
		return &ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", c.Logging.Level),
		}
	}
	if f := strings.ToLower(c.Logging.Format); f != "" && !validFormats[f] {
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", c.Logging.Format),
		}
	}
	return nil
}
