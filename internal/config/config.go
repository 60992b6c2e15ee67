package config

import (
	"errors"
	"strings"

	"github.com/dshills/richtextarea/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RICHTEXT_"

// Config is the complete tool configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging" yaml:"logging" envPrefix:"LOG_"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor" envPrefix:"EDITOR_"`
	Menu    MenuConfig    `toml:"menu" yaml:"menu" envPrefix:"MENU_"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level" env:"LEVEL"`
	// Format is text or json.
	Format string `toml:"format" yaml:"format" env:"FORMAT"`
}

// EditorConfig configures the engine.
type EditorConfig struct {
	// MaxUndoEntries bounds the undo history. Zero is the engine default.
	MaxUndoEntries int `toml:"maxUndoEntries" yaml:"maxUndoEntries" env:"MAX_UNDO_ENTRIES"`
}

// MenuConfig configures dropdown placement.
type MenuConfig struct {
	// Gap is the distance between a menu and its control.
	Gap float64 `toml:"gap" yaml:"gap" env:"GAP"`
	// ViewportWidth and ViewportHeight bound menu placement. Zero disables
	// flipping and shifting.
	ViewportWidth  float64 `toml:"viewportWidth" yaml:"viewportWidth" env:"VIEWPORT_WIDTH"`
	ViewportHeight float64 `toml:"viewportHeight" yaml:"viewportHeight" env:"VIEWPORT_HEIGHT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Editor:  EditorConfig{MaxUndoEntries: 100},
		Menu:    MenuConfig{Gap: 0},
	}
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs      loader.FileSystem
	environ map[string]string
}

// WithFS reads files from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvironment replaces the process environment.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load resolves defaults, the file at path (when path is not empty and
// the file exists) and the environment, then validates the result.
func Load(path string, opts ...Option) (Config, error) {
	o := options{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		if _, err := loader.File(o.fs, path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loader.Env(EnvPrefix, o.environ, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every unusable setting.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "unknown level", Value: c.Logging.Level})
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, &ValidationError{Path: "logging.format", Message: "must be text or json", Value: c.Logging.Format})
	}
	if c.Editor.MaxUndoEntries < 0 {
		errs = append(errs, &ValidationError{Path: "editor.maxUndoEntries", Message: "must not be negative", Value: c.Editor.MaxUndoEntries})
	}
	if c.Menu.Gap < 0 {
		errs = append(errs, &ValidationError{Path: "menu.gap", Message: "must not be negative", Value: c.Menu.Gap})
	}
	if c.Menu.ViewportWidth < 0 || c.Menu.ViewportHeight < 0 {
		errs = append(errs, &ValidationError{
			Path:    "menu.viewport",
			Message: "must not be negative",
			Value:   [2]float64{c.Menu.ViewportWidth, c.Menu.ViewportHeight},
		})
	}
	return errors.Join(errs...)
}
