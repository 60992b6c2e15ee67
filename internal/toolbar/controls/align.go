package controls

import (
	"fmt"
	"slices"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/toolbar"
)

type textAlign struct {
	*picker
}

func newTextAlign(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	p, err := newPicker(name, control, "alignment", func(n *html.Node, v string) error {
		if !slices.Contains(extension.Alignments, v) {
			return toolbar.NewConfigError(n, fmt.Errorf("%w: alignment %q", toolbar.ErrMalformedItem, v))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Text always has some alignment, so a menu control is never marked.
	p.markControl = false
	p.isActive = func(s *toolbar.Session, v string) bool {
		return s.Engine().IsActive("", engine.Attrs{extension.NameTextAlign: v})
	}
	p.apply = func(s *toolbar.Session, v string) bool {
		return p.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().SetBlockAttr(extension.NameTextAlign, v)
		})
	}
	return &textAlign{picker: p}, nil
}

// Contribute merges the alignments into an existing alignment module.
func (a *textAlign) Contribute(set *extension.Set) error {
	if opts := extension.TextAlignConfig(set.Find(extension.NameTextAlign)); opts != nil {
		opts.Merge(a.values...)
		return nil
	}
	m, err := extension.TextAlign(a.values...)
	if err != nil {
		return toolbar.NewConfigError(a.Control(), err)
	}
	return set.Add(m)
}
