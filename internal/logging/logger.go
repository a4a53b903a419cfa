package logging

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger is the application-wide structured logger instance.
var Logger *slog.Logger

// InitLogger initializes the global logger with the specified level and format.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func InitLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// WithProfile returns a logger with profile_id field.
func WithProfile(profileID uuid.UUID) *slog.Logger {
	return Logger.With("profile_id", profileID.String())
}

// WithCheck returns a logger with check_id field.
func WithCheck(checkID uuid.UUID) *slog.Logger {
	return Logger.With("check_id", checkID.String())
}

// WithError returns a logger with error field.
func WithError(err error) *slog.Logger {
	return Logger.With("error", err)
}
