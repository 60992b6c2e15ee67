package config

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/richtextarea/internal/config/loader"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(s), nil
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	files := memFS{
		"/rt.toml": `
[logging]
level = "debug"

[menu]
gap = 4
viewportWidth = 800
viewportHeight = 600
`,
	}
	cfg, err := Load("/rt.toml",
		WithFS(files),
		WithEnvironment(map[string]string{
			"RICHTEXT_LOG_FORMAT":              "json",
			"RICHTEXT_EDITOR_MAX_UNDO_ENTRIES": "20",
		}),
	)
	require.NoError(t, err)

	want := Config{
		Logging: LoggingConfig{Level: "debug", Format: "json"},
		Editor:  EditorConfig{MaxUndoEntries: 20},
		Menu:    MenuConfig{Gap: 4, ViewportWidth: 800, ViewportHeight: 600},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	files := memFS{"/rt.yaml": "editor:\n  maxUndoEntries: 5\n"}
	cfg, err := Load("/rt.yaml", WithFS(files), WithEnvironment(map[string]string{"RICHTEXT_MENU_GAP": "2.5"}))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Editor.MaxUndoEntries)
	assert.Equal(t, 2.5, cfg.Menu.Gap)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("/absent.toml", WithFS(memFS{}), WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/rt.json", WithFS(memFS{}))
	assert.True(t, errors.Is(err, loader.ErrUnknownFormat))

	_, err = Load("/rt.toml", WithFS(memFS{"/rt.toml": "[logging]\nlevel = 3"}))
	var pe *loader.ParseError
	assert.True(t, errors.As(err, &pe))

	_, err = Load("", WithEnvironment(map[string]string{"RICHTEXT_LOG_LEVEL": "loud"}))
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "trace"
	cfg.Logging.Format = "xml"
	cfg.Editor.MaxUndoEntries = -1
	cfg.Menu.Gap = -2
	cfg.Menu.ViewportHeight = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	var paths []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		require.True(t, errors.As(e, &ve))
		paths = append(paths, ve.Path)
	}
	assert.Equal(t, []string{"logging.level", "logging.format", "editor.maxUndoEntries", "menu.gap", "menu.viewport"}, paths)
}
