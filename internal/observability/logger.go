package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogOptions configures NewLogger.
type LogOptions struct {
	Verbose bool
	// File, when set, receives a copy of every record in addition to Stderr.
	File   string
	Stderr io.Writer
}

// NewLogger builds a text logger. The returned close function releases the
// log file and is safe to call when no file was opened.
func NewLogger(opts LogOptions) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.File == "" {
		return slog.New(slog.NewTextHandler(stderr, handlerOpts)), func() error { return nil }, nil
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", opts.File, err)
	}

	h := slog.NewTextHandler(io.MultiWriter(stderr, f), handlerOpts)
	return slog.New(h), f.Close, nil
}
