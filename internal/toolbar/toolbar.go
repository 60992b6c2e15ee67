package toolbar

import (
	"io"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
)

// Option configures a Toolbar.
type Option func(*Toolbar)

// WithLogger sets the toolbar logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Toolbar) {
		if l != nil {
			t.logger = l
		}
	}
}

// Toolbar owns the actions built from a menubar.
type Toolbar struct {
	actions []Action
	modules *extension.Set
	logger  *slog.Logger
	offs    []func()
}

var isActionButton = markup.All(markup.Tag("button"), markup.WithAttr(ClickAttr))

// Build creates one action per <button richtext-click> in menubar and
// contributes their modules into set. Buttons inside a menu are items of
// their menu's action, not actions. A nil menubar yields an empty toolbar.
func Build(wrapper, menubar *html.Node, reg *Registry, set *extension.Set, opts ...Option) (*Toolbar, error) {
	t := &Toolbar{
		modules: set,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.modules == nil {
		t.modules = &extension.Set{}
	}
	if menubar == nil {
		return t, nil
	}
	for _, btn := range markup.FindAll(menubar, isActionButton) {
		if btn.Parent != nil && markup.Closest(btn.Parent, isMenu) != nil {
			continue
		}
		id := markup.GetAttr(btn, ClickAttr)
		if id == "" {
			return nil, NewConfigError(btn, ErrMissingAttribute)
		}
		f, err := reg.Resolve(id)
		if err != nil {
			return nil, NewConfigError(btn, err)
		}
		a, err := f(wrapper, id, btn)
		if err != nil {
			return nil, NewConfigError(btn, err)
		}
		if a == nil {
			return nil, NewConfigError(btn, ErrNotAction)
		}
		if err := a.Contribute(t.modules); err != nil {
			return nil, NewConfigError(btn, err)
		}
		category, _ := SplitIdentifier(id)
		t.logger.Debug("action created", "action", id, "type", TypeName(category))
		t.actions = append(t.actions, a)
	}
	return t, nil
}

// Actions returns the actions in menubar order.
func (t *Toolbar) Actions() []Action {
	return t.actions
}

// Action returns the first action named name, or nil.
func (t *Toolbar) Action(name string) Action {
	for _, a := range t.actions {
		if a.Name() == name {
			return a
		}
	}
	return nil
}

// Modules returns the merged module set.
func (t *Toolbar) Modules() *extension.Set {
	return t.modules
}

// Install routes control clicks to the actions, lets each action install
// its own listeners and subscribes the toolbar to engine events:
// selection updates activate every action, blur deactivates them.
func (t *Toolbar) Install(s *Session) {
	for _, a := range t.actions {
		a := a // per-iteration copy (pre-go1.22 loop semantics)
		s.OnClick(a.Control(), func(*ClickEvent) { a.Clicked(s) })
		a.Install(s)
	}
	eng := s.Engine()
	t.offs = append(t.offs,
		eng.On(engine.EventSelectionUpdate, func() { t.Activate(s) }),
		eng.On(engine.EventBlur, t.Deactivate),
	)
}

// Uninstall removes the engine subscriptions.
func (t *Toolbar) Uninstall() {
	for _, off := range t.offs {
		off()
	}
	t.offs = nil
}

// Activate renders engine state onto every action.
func (t *Toolbar) Activate(s *Session) {
	for _, a := range t.actions {
		a.Activate(s)
	}
}

// Deactivate clears the rendered state of every action.
func (t *Toolbar) Deactivate() {
	for _, a := range t.actions {
		a.Deactivate()
	}
}
