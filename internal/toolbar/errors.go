package toolbar

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// Toolbar errors.
var (
	// ErrUnknownAction indicates no factory is registered for a category.
	ErrUnknownAction = errors.New("toolbar: unknown action class")

	// ErrNotAction indicates a factory produced no action.
	ErrNotAction = errors.New("toolbar: factory did not produce an action")

	// ErrMissingAttribute indicates an action button without identifier.
	ErrMissingAttribute = errors.New("toolbar: missing attribute 'richtext-click' on action button")

	// ErrInvalidCategory indicates an empty registry category.
	ErrInvalidCategory = errors.New("toolbar: invalid action category")

	// ErrDuplicateCategory indicates a category registered twice.
	ErrDuplicateCategory = errors.New("toolbar: duplicate action category")

	// ErrMalformedItem indicates a menu item or identifier whose value
	// does not parse.
	ErrMalformedItem = errors.New("toolbar: malformed item")

	// ErrMissingMenu indicates an action that requires a sibling menu.
	ErrMissingMenu = errors.New("toolbar: requires a sibling element <ul role=\"menu\">")

	// ErrSessionClosed indicates input on a closed session.
	ErrSessionClosed = errors.New("toolbar: session closed")
)

// ConfigError is a markup fault found while building the toolbar.
type ConfigError struct {
	Element string // start tag of the offending element
	Err     error
}

// NewConfigError wraps err with the element it concerns.
func NewConfigError(n *html.Node, err error) *ConfigError {
	return &ConfigError{Element: markup.Describe(n), Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%v (at %s)", e.Err, e.Element)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
