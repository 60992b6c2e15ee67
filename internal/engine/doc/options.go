package doc

import (
	"io"
	"log/slog"

	"github.com/dshills/richtextarea/internal/engine/history"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithLogger sets the logger commands report rejections to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
// A positive engine.Config.MaxUndoEntries takes precedence.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
