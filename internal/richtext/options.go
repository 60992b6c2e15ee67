package richtext

import (
	"context"
	"io"
	"log/slog"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/position"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// Option configures an Area.
type Option func(*Area)

// WithLogger sets the logger for the area, its toolbar and session.
func WithLogger(l *slog.Logger) Option {
	return func(a *Area) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRegistry sets the action registry. The default holds every control.
func WithRegistry(r *toolbar.Registry) Option {
	return func(a *Area) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithEngine sets the engine factory. The default is the in-memory
// reference engine.
func WithEngine(f engine.Factory) Option {
	return func(a *Area) {
		if f != nil {
			a.factory = f
		}
	}
}

// WithGeometry sets the layout provider menus are positioned with.
func WithGeometry(g position.Geometry) Option {
	return func(a *Area) {
		a.sessionOpts = append(a.sessionOpts, toolbar.WithGeometry(g))
	}
}

// WithMenuGap sets the distance between menus and their controls.
func WithMenuGap(gap float64) Option {
	return func(a *Area) {
		a.sessionOpts = append(a.sessionOpts, toolbar.WithMenuGap(gap))
	}
}

// WithContext sets the parent context of dialog waits.
func WithContext(ctx context.Context) Option {
	return func(a *Area) {
		a.sessionOpts = append(a.sessionOpts, toolbar.WithContext(ctx))
	}
}

// WithMaxUndoEntries bounds the undo history.
func WithMaxUndoEntries(n int) Option {
	return func(a *Area) {
		a.maxUndo = n
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
