package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Lee-Tyrer/grandexchange-go/internal/infrastructure/config"
)

// Error wraps an error as a log attribute that tint renders in red
var Error = tint.Err

// ParseLevel converts a configured level name into a slog.Level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewHandler builds a text (tint) or JSON handler writing to w
func NewHandler(w io.Writer, cfg config.LoggingConfig) (slog.Handler, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: cfg.IncludeCaller,
		}), nil
	case "text", "":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  cfg.IncludeCaller,
			TimeFormat: time.Kitchen,
			NoColor:    !cfg.Color,
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

// NewLogger opens the configured output and returns a logger plus a closer for file outputs
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	out, closer, err := openOutput(cfg)
	if err != nil {
		return nil, nil, err
	}

	handler, err := NewHandler(out, cfg)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}

	return slog.New(handler), closer, nil
}

func openOutput(cfg config.LoggingConfig) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Output {
	case "stdout":
		return os.Stdout, noop, nil
	case "stderr", "":
		return os.Stderr, noop, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
}
