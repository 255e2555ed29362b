package logging

import (
	"io"
	"log/slog"
	"strings"
)

// NewJSONLogger writes JSON lines to w. Every record carries the service
// name.
func NewJSONLogger(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

// Install builds the logger and makes it the process default.
func Install(w io.Writer, service, level string) *slog.Logger {
	logger := NewJSONLogger(w, service, level)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
