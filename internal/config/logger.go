package config

import (
	"io"
	"log/slog"
	"strings"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// NewLogger builds the process logger. Unknown levels fall back to info and
// unknown formats to JSON.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, LogFormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Logger builds the logger described by c.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(w, c.LogFormat, c.LogLevel)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
