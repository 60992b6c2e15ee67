package controls

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/toolbar"
)

var (
	styleColor = regexp.MustCompile(`^rgb\(\d{1,3}, \d{1,3}, \d{1,3}\)$`)
	classColor = regexp.MustCompile(`^-?[_a-zA-Z]+[_a-zA-Z0-9-]*$`)
)

// unsetColor is the item value that removes the text color.
const unsetColor = "null"

// Text color errors.
var (
	ErrMixedColors  = errors.New("controls: can not mix class based with style based colors")
	ErrInvalidColor = errors.New("controls: not a valid color")
	ErrSecondColor  = errors.New("controls: only one control element with 'textColor' is allowed")
)

// textColor picks the text color from its menu. Colors are either all
// inline rgb() styles or all CSS classes.
type textColor struct {
	toolbar.Base
	menu    *toolbar.Menu
	styles  []string
	classes []string
}

func newTextColor(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	menu, err := toolbar.FindMenu(control, "color")
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, toolbar.ErrMissingMenu
	}
	a := &textColor{Base: toolbar.NewBase(name, control), menu: menu}
	for _, it := range menu.Items() {
		v := it.Value
		switch {
		case v == unsetColor:
		case styleColor.MatchString(v):
			if len(a.classes) > 0 {
				return nil, toolbar.NewConfigError(it.Node, ErrMixedColors)
			}
			a.styles = append(a.styles, v)
		case classColor.MatchString(v):
			if len(a.styles) > 0 {
				return nil, toolbar.NewConfigError(it.Node, ErrMixedColors)
			}
			a.classes = append(a.classes, v)
		default:
			return nil, toolbar.NewConfigError(it.Node, fmt.Errorf("%w: %s", ErrInvalidColor, v))
		}
	}
	return a, nil
}

func (a *textColor) colorActive(s *toolbar.Session, color string) bool {
	if color == unsetColor {
		return false
	}
	return s.Engine().IsActive("", engine.Attrs{extension.NameTextColor: color})
}

func (a *textColor) Install(s *toolbar.Session) {
	a.menu.ItemActive = func(s *toolbar.Session, it toolbar.Item) bool { return a.colorActive(s, it.Value) }
	a.menu.Install(s, func(s *toolbar.Session, it toolbar.Item) {
		a.Run(s, func(c engine.Chain) engine.Chain {
			if it.Value == unsetColor {
				return c.Focus().UnsetMark(extension.NameTextColor)
			}
			return c.Focus().SetMark(extension.NameTextColor, engine.Attrs{extension.NameTextColor: it.Value})
		})
		a.Activate(s)
	})
}

// Clicked toggles the menu.
func (a *textColor) Clicked(s *toolbar.Session) {
	a.menu.Toggle(s)
}

var isSwatch = func(n *html.Node) bool {
	return markup.IsElement(n, "rect") && n.Parent != nil && markup.IsElement(n.Parent, "svg")
}

// Activate paints the swatch of the control in the active color.
func (a *textColor) Activate(s *toolbar.Session) {
	rect := markup.Find(a.Control(), isSwatch)
	active := false
	for _, it := range a.menu.Items() {
		if !a.colorActive(s, it.Value) {
			continue
		}
		active = true
		if rect == nil {
			continue
		}
		if len(a.classes) == 0 {
			markup.SetAttr(rect, "fill", it.Value)
		} else {
			markup.ClearClasses(rect)
			markup.AddClass(rect, it.Value)
		}
	}
	a.SetActive(active)
	if !active && rect != nil {
		if len(a.classes) == 0 {
			markup.RemoveAttr(rect, "fill")
		} else {
			markup.ClearClasses(rect)
		}
	}
}

// Contribute adds the text color module. A second text color control is
// an error.
func (a *textColor) Contribute(set *extension.Set) error {
	if set.Has(extension.NameTextColor) {
		return ErrSecondColor
	}
	return set.Add(extension.TextColor(a.classes...))
}

// Classes returns the class based colors.
func (a *textColor) Classes() []string {
	return a.classes
}
