package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "Debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "Info", level: "info", expected: zerolog.InfoLevel},
		{name: "Warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "Error", level: "error", expected: zerolog.ErrorLevel},
		{name: "Unknown falls back to info", level: "verbose", expected: zerolog.InfoLevel},
		{name: "Empty falls back to info", level: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewLogger_SetsGlobalLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	NewLogger(LoggerConfig{Level: "warn", Format: "json"})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
