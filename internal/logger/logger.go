// Package logger configures slog for the certreg services and provides
// request-scoped loggers for use in HTTP handlers.
//
// In dev the logs are rendered with tint for readability; everywhere else the
// service emits JSON so the logs can be shipped to a collector.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// LevelNone disables all log output (used by tests).
const LevelNone = slog.Level(128)

// InitLogger creates the application logger and installs it as the slog
// default so library code that logs via the default logger is captured too.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	if environment == "dev" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	appLogger := slog.New(handler)
	slog.SetDefault(appLogger)

	return appLogger
}

// ParseLogLevel converts a config string to a slog.Level.
// Unrecognized values fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return LevelNone
	default:
		return slog.LevelInfo
	}
}
