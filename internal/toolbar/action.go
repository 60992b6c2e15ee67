package toolbar

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/markup"
)

// ClickAttr carries an action identifier.
const ClickAttr = "richtext-click"

// ActiveClass marks controls whose formatting applies at the selection.
const ActiveClass = "active"

// Action is one toolbar control bound to editing behavior.
type Action interface {
	// Name returns the full identifier, such as "heading:2".
	Name() string
	// Control returns the bound button.
	Control() *html.Node
	// Install registers listeners beyond the control click, which the
	// toolbar always routes to Clicked.
	Install(s *Session)
	// Clicked runs when the control is clicked.
	Clicked(s *Session)
	// Activate renders engine state onto the control.
	Activate(s *Session)
	// Deactivate clears the rendered state.
	Deactivate()
	// Contribute adds the action's capability modules to set.
	Contribute(set *extension.Set) error
}

// Factory creates the action for control. wrapper is the host element
// dialogs are looked up in.
type Factory func(wrapper *html.Node, name string, control *html.Node) (Action, error)

// SplitIdentifier splits "category:param" at the first colon.
func SplitIdentifier(id string) (category, param string) {
	category, param, _ = strings.Cut(id, ":")
	return category, param
}

// Base implements the default action behavior. Concrete actions embed it.
type Base struct {
	name    string
	control *html.Node
	modules []*extension.Module

	// ActiveName is queried by the default Activate. It defaults to the
	// identifier's category.
	ActiveName string
}

// NewBase creates a base action owning modules.
func NewBase(name string, control *html.Node, modules ...*extension.Module) Base {
	category, _ := SplitIdentifier(name)
	return Base{name: name, control: control, modules: modules, ActiveName: category}
}

// Name returns the full identifier.
func (b *Base) Name() string { return b.name }

// Control returns the bound button.
func (b *Base) Control() *html.Node { return b.control }

// Category returns the identifier part before the first colon.
func (b *Base) Category() string {
	c, _ := SplitIdentifier(b.name)
	return c
}

// Param returns the identifier part after the first colon.
func (b *Base) Param() string {
	_, p := SplitIdentifier(b.name)
	return p
}

// Modules returns the owned capability modules.
func (b *Base) Modules() []*extension.Module { return b.modules }

// Install does nothing.
func (b *Base) Install(*Session) {}

// Clicked does nothing.
func (b *Base) Clicked(*Session) {}

// Activate toggles the active class from the engine state of ActiveName.
func (b *Base) Activate(s *Session) {
	b.SetActive(s.Engine().IsActive(b.ActiveName, nil))
}

// Deactivate removes the active class.
func (b *Base) Deactivate() {
	b.SetActive(false)
}

// SetActive toggles the active class on the control.
func (b *Base) SetActive(on bool) {
	markup.ToggleClass(b.control, ActiveClass, on)
}

// IsActive reports whether the control carries the active class.
func (b *Base) IsActive() bool {
	return markup.HasClass(b.control, ActiveClass)
}

// Contribute adds every owned module. A module whose instance is already
// present is skipped.
func (b *Base) Contribute(set *extension.Set) error {
	for _, m := range b.modules {
		if err := set.Add(m); err != nil {
			return err
		}
	}
	return nil
}

// Run commits a chain built by fn, logging a rejected chain at debug level.
func (b *Base) Run(s *Session, fn func(engine.Chain) engine.Chain) bool {
	ok := fn(s.Engine().Chain()).Run()
	if !ok {
		s.Logger().Debug("command rejected", "action", b.name)
	}
	return ok
}

var _ Action = (*Base)(nil)
