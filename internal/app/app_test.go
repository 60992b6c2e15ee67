package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/richtextarea/internal/config"
)

const page = `<main>
<div class="dj-richtext-wrapper">
<div role="menubar">
<button id="b" richtext-click="bold"></button>
<button richtext-click="link"></button>
</div>
<dialog richtext-opener="link"><form method="dialog">
<input name="text"><input name="url" type="url" required>
<button name="close">Close</button><button name="save">Save</button><button name="remove">Remove</button>
</form></dialog>
<textarea name="body" required><p>hello world</p></textarea>
</div>
<div class="dj-richtext-wrapper"><textarea name="notes"></textarea></div>
</main>`

func run(t *testing.T, script string) (*Result, error) {
	t.Helper()
	s, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	return New(config.Default()).Run(context.Background(), strings.NewReader(page), s)
}

func TestRunBoldAndLink(t *testing.T) {
	res, err := run(t, `
field: body
steps:
  - select: [0, 5]
  - click: b
  - select: [6, 11]
  - click: link
  - fill: {url: "https://example.com"}
  - click: save
  - blur: true
`)
	require.NoError(t, err)
	assert.Equal(t, "body", res.Field)
	assert.False(t, res.JSON)
	assert.True(t, res.Valid)
	assert.Equal(t, `<p><strong>hello</strong> <a href="https://example.com">world</a></p>`, res.Value)
	assert.Contains(t, res.Markup, `dj-concealed`)
}

func TestRunSelectsFieldByName(t *testing.T) {
	res, err := run(t, `
field: notes
steps:
  - type: "abc"
`)
	require.NoError(t, err)
	assert.Equal(t, "notes", res.Field)
	assert.Equal(t, "<p>abc</p>", res.Value)
}

func TestRunReset(t *testing.T) {
	res, err := run(t, `
steps:
  - type: "x"
  - reset: true
`)
	require.NoError(t, err)
	assert.Equal(t, "body", res.Field)
	assert.Equal(t, "<p>hello world</p>", res.Value)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
		step   int
	}{
		{"unknown field", "field: nope\n", ErrNoField, -1},
		{"unknown target", "steps:\n  - click: frob\n", ErrUnknownTarget, 0},
		{"fill without dialog", "steps:\n  - fill: {url: x}\n", ErrNoOpenDialog, 0},
		{"unknown dialog field", "steps:\n  - select: [0, 5]\n  - click: link\n  - fill: {href: x}\n", ErrUnknownField, 2},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (pre-go1.22 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.script)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
			var oe *OperationError
			if tt.step < 0 {
				assert.False(t, errors.As(err, &oe))
				return
			}
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, tt.step, oe.Step)
		})
	}
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Script{Steps: []Step{{Type: "x"}}}
	_, err := New(config.Default()).Run(ctx, strings.NewReader(page), s)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunLogs(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Logging = config.LoggingConfig{Level: "debug", Format: "json"}
	a := New(cfg, WithLogger(NewLogger(&buf, cfg.Logging)))
	_, err := a.Run(context.Background(), strings.NewReader(page), &Script{Steps: []Step{{Focus: true}}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"script step"`)
	assert.Contains(t, buf.String(), `"msg":"script replayed"`)
}

func TestParseScriptRejectsBadSteps(t *testing.T) {
	for _, src := range []string{
		"steps:\n  - {}\n",
		"steps:\n  - click: b\n    type: x\n",
		"steps:\n  - select: [1]\n",
	} {
		_, err := ParseScript(strings.NewReader(src))
		assert.True(t, errors.Is(err, ErrInvalidStep), src)
	}
	_, err := ParseScript(strings.NewReader("stepz: []\n"))
	assert.Error(t, err)

	s, err := ParseScript(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"info", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input).String(); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "blur"}, "step 1: blur"},
		{"op and target", &OperationError{Op: "click", Target: "bold", Step: 2}, "step 3: click bold"},
		{"full", &OperationError{Op: "click", Target: "x", Err: ErrUnknownTarget}, "step 1: click x: app: unknown click target"},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (pre-go1.22 loop semantics)
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", got, tt.expected)
			}
		})
	}
}
