package controls

import (
	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/toolbar"
)

// picker is a choice among values, offered either by a menu below the
// control or, standalone, by the control's own identifier. The control
// shows the icon of the active choice.
type picker struct {
	toolbar.Base
	menu        *toolbar.Menu
	values      []string
	defaultIcon *html.Node

	// markControl toggles the control's active class in menu mode.
	markControl bool
	isActive    func(s *toolbar.Session, value string) bool
	apply       func(s *toolbar.Session, value string) bool
}

// newPicker reads the choices of control. parse validates each value.
func newPicker(name string, control *html.Node, prefix string, parse func(n *html.Node, value string) error) (*picker, error) {
	p := &picker{Base: toolbar.NewBase(name, control)}
	menu, err := toolbar.FindMenu(control, prefix)
	if err != nil {
		return nil, err
	}
	p.menu = menu
	if menu != nil {
		for _, it := range menu.Items() {
			if err := parse(it.Node, it.Value); err != nil {
				return nil, err
			}
			p.values = append(p.values, it.Value)
		}
	} else {
		if err := parse(control, p.Param()); err != nil {
			return nil, err
		}
		p.values = []string{p.Param()}
	}
	p.defaultIcon = markup.Clone(markup.Find(control, markup.Tag("svg")))
	return p, nil
}

func (p *picker) Install(s *toolbar.Session) {
	if p.menu == nil {
		return
	}
	p.menu.ItemActive = func(s *toolbar.Session, it toolbar.Item) bool { return p.isActive(s, it.Value) }
	p.menu.Install(s, func(s *toolbar.Session, it toolbar.Item) { p.pick(s, it.Node, it.Value) })
}

func (p *picker) Clicked(s *toolbar.Session) {
	if p.menu != nil {
		p.menu.Toggle(s)
		return
	}
	p.pick(s, nil, p.values[0])
}

func (p *picker) pick(s *toolbar.Session, item *html.Node, value string) {
	p.apply(s, value)
	p.Activate(s)
	if icon := markup.Find(item, markup.Tag("svg")); icon != nil {
		markup.ReplaceChildren(p.Control(), markup.Clone(icon))
	}
}

func (p *picker) Activate(s *toolbar.Session) {
	if p.menu == nil {
		p.SetActive(p.isActive(s, p.values[0]))
		return
	}
	active := false
	for _, it := range p.menu.Items() {
		icon := markup.Find(it.Node, markup.Tag("svg"))
		if icon != nil && p.isActive(s, it.Value) {
			markup.ReplaceChildren(p.Control(), markup.Clone(icon))
			active = true
		}
	}
	if p.markControl {
		p.SetActive(active)
	}
	if !active && p.defaultIcon != nil {
		markup.ReplaceChildren(p.Control(), markup.Clone(p.defaultIcon))
	}
}

// Menu returns the picker's menu, or nil when standalone.
func (p *picker) Menu() *toolbar.Menu {
	return p.menu
}
