// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() to point the default logger at a writer with level and format.

package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Init configures the default slog logger and returns it.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
// The TUI passes a file here because the terminal belongs to the screen.
func Init(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
