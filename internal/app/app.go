package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/config"
	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/position"
	"github.com/dshills/richtextarea/internal/richtext"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// Option configures an App.
type Option func(*App)

// WithLogger overrides the logger built from the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// App replays scripts against richtext fields in hosting markup.
type App struct {
	cfg    config.Config
	logger *slog.Logger
}

// New creates an App. Without WithLogger, logs go nowhere.
func New(cfg config.Config, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		logger: NewLogger(io.Discard, cfg.Logging),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the state of a field after a script ran.
type Result struct {
	Field string
	JSON  bool
	Value string
	Valid bool
	// Markup is the whole hosting document, textarea included.
	Markup string
}

// Run parses the hosting markup from r, binds the scripted field and
// replays the steps. The first failing step aborts the run.
func (a *App) Run(ctx context.Context, r io.Reader, script *Script) (*Result, error) {
	if script == nil {
		script = &Script{}
	}
	root, err := markup.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("app: parse markup: %w", err)
	}
	wrapper, name, err := findField(root, script.Field)
	if err != nil {
		return nil, err
	}
	area, err := richtext.New(wrapper, a.areaOptions(ctx)...)
	if err != nil {
		return nil, err
	}
	defer area.Close()

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		kind, err := step.Kind()
		if err == nil {
			a.logger.Debug("script step", "index", i, "op", kind, "target", step.Target())
			err = a.apply(root, area, kind, step)
		}
		if err != nil {
			return nil, NewOperationError(i, kind, step.Target(), err)
		}
	}

	res := &Result{
		Field: name,
		JSON:  area.JSON(),
		Value: area.Value(),
		Valid: area.Valid(),
	}
	res.Markup = markup.Render(root)
	a.logger.Info("script replayed", "field", name, "steps", len(script.Steps), "valid", res.Valid)
	return res, nil
}

func (a *App) areaOptions(ctx context.Context) []richtext.Option {
	opts := []richtext.Option{
		richtext.WithLogger(a.logger),
		richtext.WithContext(ctx),
		richtext.WithMaxUndoEntries(a.cfg.Editor.MaxUndoEntries),
		richtext.WithMenuGap(a.cfg.Menu.Gap),
	}
	if a.cfg.Menu.ViewportWidth > 0 && a.cfg.Menu.ViewportHeight > 0 {
		opts = append(opts, richtext.WithGeometry(position.AttrGeometry{
			View: position.Rect{Width: a.cfg.Menu.ViewportWidth, Height: a.cfg.Menu.ViewportHeight},
		}))
	}
	return opts
}

func (a *App) apply(root *html.Node, area *richtext.Area, kind string, step Step) error {
	switch kind {
	case OpSelect:
		return area.Select(step.Select[0], step.Select[1])
	case OpClick:
		target := resolveTarget(root, area, step.Click)
		if target == nil {
			return ErrUnknownTarget
		}
		if err := area.Click(target); err != nil {
			return err
		}
		// A dialog left open resolves on a later step.
		if openDialog(area) == nil {
			area.Wait()
		}
		return nil
	case OpType:
		return area.Type(step.Type)
	case OpFill:
		return fill(area, step.Fill)
	case OpFocus:
		return area.Focus()
	case OpBlur:
		return area.Blur()
	case OpReset:
		return area.Reset()
	}
	return ErrInvalidStep
}

func isWrapper(n *html.Node) bool {
	return markup.IsElement(n, "") && markup.HasClass(n, richtext.WrapperClass)
}

// findField returns the wrapper whose textarea is named name, or the
// first wrapper for an empty name.
func findField(root *html.Node, name string) (*html.Node, string, error) {
	for _, w := range markup.FindAll(root, isWrapper) {
		ta := markup.Find(w, markup.Tag("textarea"))
		if ta == nil {
			continue
		}
		got := markup.GetAttr(ta, "name")
		if name == "" || got == name {
			return w, got, nil
		}
	}
	if name == "" {
		return nil, "", ErrNoField
	}
	return nil, "", fmt.Errorf("%w named %q", ErrNoField, name)
}

type dialogAction interface {
	Dialog() *toolbar.Dialog
}

func openDialog(area *richtext.Area) *toolbar.Dialog {
	for _, act := range area.Toolbar().Actions() {
		if da, ok := act.(dialogAction); ok && da.Dialog().IsOpen() {
			return da.Dialog()
		}
	}
	return nil
}

func resolveTarget(root *html.Node, area *richtext.Area, name string) *html.Node {
	if n := markup.Find(root, markup.AttrEquals("id", name)); n != nil {
		return n
	}
	if act := area.Toolbar().Action(name); act != nil {
		return act.Control()
	}
	if d := openDialog(area); d != nil {
		return d.Form().Button(name)
	}
	return nil
}

func fill(area *richtext.Area, values map[string]string) error {
	var err error
	doErr := area.Do(func(engine.Engine) {
		d := openDialog(area)
		if d == nil {
			err = ErrNoOpenDialog
			return
		}
		names := make([]string, 0, len(values))
		for k := range values {
			names = append(names, k)
		}
		slices.Sort(names)
		for _, k := range names {
			f := d.Field(k)
			if f == nil {
				err = fmt.Errorf("%w %q", ErrUnknownField, k)
				return
			}
			f.SetValue(values[k])
		}
	})
	if doErr != nil {
		return doErr
	}
	return err
}
