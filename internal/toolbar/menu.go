package toolbar

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
	"github.com/dshills/richtextarea/internal/position"
)

// Item is one entry of a dropdown menu.
type Item struct {
	Node  *html.Node
	Value string
}

// Menu is a dropdown list anchored to its control: the control's next
// element sibling <ul role="menu">.
type Menu struct {
	control *html.Node
	list    *html.Node
	prefix  string
	items   []Item
	open    bool

	// ItemActive reports whether an item's formatting applies. Items are
	// marked through the active class of their parent element on every
	// toggle.
	ItemActive func(s *Session, it Item) bool
}

var isMenu = markup.All(markup.Tag("ul"), markup.AttrEquals("role", "menu"))

var isItem = markup.All(markup.Any(markup.Tag("button"), markup.Tag("a")), markup.WithAttr(ClickAttr))

// FindMenu returns the menu of control, or nil when control has none.
// Items are the descendants whose identifier starts with prefix and a
// colon; each must hold exactly one colon.
func FindMenu(control *html.Node, prefix string) (*Menu, error) {
	list := markup.NextElementSibling(control)
	if list == nil || !isMenu(list) {
		return nil, nil
	}
	m := &Menu{control: control, list: list, prefix: prefix}
	for _, n := range markup.FindAll(list, markup.AttrPrefix(ClickAttr, prefix+":")) {
		parts := strings.Split(markup.GetAttr(n, ClickAttr), ":")
		if len(parts) != 2 {
			return nil, NewConfigError(n, fmt.Errorf("%w: %q", ErrMalformedItem, markup.GetAttr(n, ClickAttr)))
		}
		m.items = append(m.items, Item{Node: n, Value: parts[1]})
	}
	return m, nil
}

// Control returns the anchoring control.
func (m *Menu) Control() *html.Node { return m.control }

// List returns the menu element.
func (m *Menu) List() *html.Node { return m.list }

// Items returns the menu items in document order.
func (m *Menu) Items() []Item { return m.items }

// IsOpen reports whether the menu is expanded.
func (m *Menu) IsOpen() bool { return m.open }

// Item resolves a click target to the item it falls in.
func (m *Menu) Item(target *html.Node) (Item, bool) {
	for n := target; n != nil && n != m.list; n = n.Parent {
		if !isItem(n) {
			continue
		}
		for _, it := range m.items {
			if it.Node == n {
				return it, true
			}
		}
		return Item{}, false
	}
	return Item{}, false
}

// Install wires the menu transitions: a control click toggles, an item
// click runs onItem and closes, a click outside control and menu closes.
func (m *Menu) Install(s *Session, onItem func(s *Session, it Item)) {
	s.OnClick(m.list, func(ev *ClickEvent) {
		it, ok := m.Item(ev.Target)
		if !ok {
			return
		}
		onItem(s, it)
		m.Close(s)
	})
	s.OnDocumentClick(func(ev *ClickEvent) {
		if markup.Contains(m.control, ev.Target) || markup.Contains(m.list, ev.Target) {
			return
		}
		m.Close(s)
	})
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle(s *Session) {
	if m.open {
		m.Close(s)
	} else {
		m.Open(s)
	}
}

// Open expands the menu and positions it below its control.
func (m *Menu) Open(s *Session) {
	m.open = true
	markup.SetAttr(m.control, "aria-expanded", "true")
	if _, ok := position.Place(s.Geometry(), m.control, m.list, s.MenuGap()); !ok {
		s.Logger().Debug("menu has no layout", "control", markup.Describe(m.control))
	}
	m.Refresh(s)
}

// Close collapses the menu.
func (m *Menu) Close(s *Session) {
	m.open = false
	markup.SetAttr(m.control, "aria-expanded", "false")
	m.Refresh(s)
}

// Refresh marks the items whose formatting applies.
func (m *Menu) Refresh(s *Session) {
	if m.ItemActive == nil {
		return
	}
	for _, it := range m.items {
		if li := it.Node.Parent; li != nil && li != m.list {
			markup.ToggleClass(li, ActiveClass, m.ItemActive(s, it))
		}
	}
}
