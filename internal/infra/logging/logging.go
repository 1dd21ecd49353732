// Package logging configures the process-wide slog logger.
//
// Text output goes through tint for colored local logs; json output is meant
// for log shippers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/residence-hub/backend/config"
)

// Setup installs the default logger described by cfg.
func Setup(cfg config.LogConfig) {
	slog.SetDefault(New(os.Stderr, cfg))
}

// New builds a logger writing to w.
func New(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := ParseLevel(cfg.Level)
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}))
}

// ParseLevel maps debug, info, warn, error to a slog level. Unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
