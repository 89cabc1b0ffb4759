// Package logger provides configurable logging capabilities.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds the settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path to the output log file. "-" forces stderr;
	// empty leaves the choice to the host (the terminal harness defaults
	// to a file in the config directory).
	LogFilePath string `toml:"log_file"`
}

// NewConfig creates a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// Level parses LogLevel into a slog.Level, defaulting to Info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
