// Package logging configures the log/slog loggers used by the factory
// providers.
//
// Providers accept a *slog.Logger through a WithLogger option. When none is
// given they log through Nop, so tests stay quiet unless a logger is wired in:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	})
//	requests := request.NewProvider(cfg, request.WithLogger(logger))
//
// Levels and formats parse case-insensitively so they can come straight from
// FACTORIES_LOG_LEVEL and FACTORIES_LOG_FORMAT.
package logging
