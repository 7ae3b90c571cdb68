// Package logx provides JSON-lines structured debug logging for ghostline.
// Log output never goes to stdout: stdout carries the resulting command line
// back to the shell widget.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/runger/ghostline/internal/config"
)

// New creates a structured logger from the loaded configuration. When debug
// is off, everything below Warn is discarded. When a log file is configured
// it is opened in append mode; failure to open falls back to stderr.
func New(cfg *config.Config) *slog.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		}
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

// Discard returns a logger that drops everything. Used by tests and as a
// safe default before configuration is loaded.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
