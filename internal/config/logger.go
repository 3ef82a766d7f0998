package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// parseLevel maps a configured level name onto a zerolog level, defaulting
// to info for anything unrecognised.
func parseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates the base logger. Every component logger in the app is
// derived from it, so the service tag travels with all log lines.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var out io.Writer = os.Stdout
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).With().
		Timestamp().
		Str("service", "shop-api").
		Logger()
}
