package controls

import (
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// command runs one engine operation per click.
type command struct {
	toolbar.Base
	run       func(s *toolbar.Session) bool
	activates bool
}

func (a *command) Clicked(s *toolbar.Session) {
	a.run(s)
	if a.activates {
		a.Activate(s)
	}
}

// chained builds a factory for a command that commits one focused chain.
func chained(activates bool, build func(s *toolbar.Session, c engine.Chain) engine.Chain, modules ...*extension.Module) toolbar.Factory {
	return func(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
		a := &command{Base: toolbar.NewBase(name, control, modules...), activates: activates}
		a.run = func(s *toolbar.Session) bool {
			return a.Run(s, func(c engine.Chain) engine.Chain { return build(s, c.Focus()) })
		}
		return a, nil
	}
}

func toggleMark(m *extension.Module) toolbar.Factory {
	return chained(true, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
		return c.ToggleMark(m.Name, nil)
	}, m)
}

// exclusiveMark toggles m after removing other, so subscript and
// superscript never overlap.
func exclusiveMark(m *extension.Module, other string) toolbar.Factory {
	return chained(true, func(s *toolbar.Session, c engine.Chain) engine.Chain {
		if s.Engine().IsActive(other, nil) {
			c = c.UnsetMark(other)
		}
		return c.ToggleMark(m.Name, nil)
	}, m)
}

func toggleWrap(modules ...*extension.Module) toolbar.Factory {
	name := modules[0].Name
	return chained(true, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
		return c.ToggleWrap(name)
	}, modules...)
}

func toggleBlock(m *extension.Module) toolbar.Factory {
	return chained(true, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
		return c.ToggleBlock(m.Name, nil)
	}, m)
}

var hardBreak = chained(true, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
	return c.InsertNode(extension.NameHardBreak, nil)
})

var horizontalRule = chained(false, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
	return c.InsertNode(extension.NameHorizontalRule, nil)
}, extension.HorizontalRule)

var clearFormat = chained(true, func(_ *toolbar.Session, c engine.Chain) engine.Chain {
	return c.ClearNodes().UnsetAllMarks()
})

func historyStep(undo bool) toolbar.Factory {
	return func(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
		a := &command{Base: toolbar.NewBase(name, control, extension.History)}
		a.run = func(s *toolbar.Session) bool {
			if undo {
				return s.Engine().Undo()
			}
			return s.Engine().Redo()
		}
		return a, nil
	}
}
