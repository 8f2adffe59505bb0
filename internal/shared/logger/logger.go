package logger

import (
	"io"
	"log/slog"
	"strings"

	"universe-builder/internal/shared/config"
)

// New builds a logger for the given settings writing to w.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs the logger as the process default and returns it.
func Init(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	l := New(cfg, w)
	slog.SetDefault(l)

	l.With("component", "logger").Debug("Logger initialized",
		"level", cfg.Level,
		"format", cfg.Format,
	)
	return l
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
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
