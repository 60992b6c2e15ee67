package controls

import (
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// textIndent toggles the indentation named by its parameter.
type textIndent struct {
	toolbar.Base
}

func newTextIndent(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	return &textIndent{Base: toolbar.NewBase(name, control, extension.TextIndent())}, nil
}

func (a *textIndent) active(s *toolbar.Session) bool {
	return s.Engine().IsActive("", engine.Attrs{extension.NameTextIndent: a.Param()})
}

func (a *textIndent) Clicked(s *toolbar.Session) {
	on := a.active(s)
	a.Run(s, func(c engine.Chain) engine.Chain {
		if on {
			return c.Focus().UnsetBlockAttr(extension.NameTextIndent)
		}
		return c.Focus().SetBlockAttr(extension.NameTextIndent, a.Param())
	})
	a.Activate(s)
}

func (a *textIndent) Activate(s *toolbar.Session) {
	a.SetActive(a.active(s))
}

// Contribute adds the indentation module unless one exists.
func (a *textIndent) Contribute(set *extension.Set) error {
	set.AddOnce(a.Modules()[0])
	return nil
}

// textMargin steps the margin level up or down, or clears it.
type textMargin struct {
	toolbar.Base
}

func newTextMargin(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	m := extension.TextMargin(extension.DefaultMaxMarginLevel)
	return &textMargin{Base: toolbar.NewBase(name, control, m)}, nil
}

func (a *textMargin) Clicked(s *toolbar.Session) {
	a.Run(s, func(c engine.Chain) engine.Chain {
		switch a.Param() {
		case "increase":
			return c.Focus().AdjustBlockAttr(extension.NameTextMargin, 1)
		case "decrease":
			return c.Focus().AdjustBlockAttr(extension.NameTextMargin, -1)
		default:
			return c.Focus().UnsetBlockAttr(extension.NameTextMargin)
		}
	})
	a.Activate(s)
}

// Activate compares the stored level with the parameter, which only a
// numeric parameter can match.
func (a *textMargin) Activate(s *toolbar.Session) {
	a.SetActive(s.Engine().IsActive("", engine.Attrs{extension.NameTextMargin: a.Param()}))
}

// Contribute adds the margin module unless one exists.
func (a *textMargin) Contribute(set *extension.Set) error {
	set.AddOnce(a.Modules()[0])
	return nil
}
