// Package logger sets up structured JSON logging to a file. The terminal is
// owned by the TUI, so nothing is ever written to stdout or stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const fileName = "swipedeck.log"

// Config controls where and how much is logged.
type Config struct {
	Dir   string
	Level string
	Debug bool
}

// ParseLevel maps a configured level name to a slog level, defaulting to
// info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup opens the log file and returns a logger plus a cleanup func that
// closes it. On failure a discarding logger is returned with the error so
// the caller can carry on.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	discard := slog.New(slog.DiscardHandler)
	noop := func() error { return nil }

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return discard, noop, fmt.Errorf("mkdir log dir: %w", err)
	}
	path := filepath.Join(cfg.Dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, noop, fmt.Errorf("open log file: %w", err)
	}

	level := ParseLevel(cfg.Level)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.Debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})
	l := slog.New(h)
	l.Info("logger.initialized", "path", path, "level", level.String())
	return l, f.Close, nil
}
