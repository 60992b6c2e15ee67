package controls

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
	"github.com/dshills/richtextarea/internal/toolbar"
)

type heading struct {
	*picker
	levels []int
}

func newHeading(_ *html.Node, name string, control *html.Node) (toolbar.Action, error) {
	a := &heading{}
	p, err := newPicker(name, control, extension.NameHeading, func(n *html.Node, v string) error {
		level, err := strconv.Atoi(v)
		if err != nil || level < 1 || level > extension.MaxHeadingLevel {
			return toolbar.NewConfigError(n, fmt.Errorf("%w: heading level %q", toolbar.ErrMalformedItem, v))
		}
		a.levels = append(a.levels, level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.markControl = true
	p.isActive = func(s *toolbar.Session, v string) bool {
		return s.Engine().IsActive(extension.NameHeading, engine.Attrs{"level": v})
	}
	p.apply = func(s *toolbar.Session, v string) bool {
		return p.Run(s, func(c engine.Chain) engine.Chain {
			return c.Focus().SetBlock(extension.NameHeading, engine.Attrs{"level": v})
		})
	}
	a.picker = p
	return a, nil
}

// Contribute merges the levels into an existing heading module.
func (a *heading) Contribute(set *extension.Set) error {
	if opts := extension.HeadingConfig(set.Find(extension.NameHeading)); opts != nil {
		opts.Merge(a.levels...)
		return nil
	}
	m, err := extension.Heading(a.levels...)
	if err != nil {
		return toolbar.NewConfigError(a.Control(), err)
	}
	return set.Add(m)
}

// Levels returns the heading levels the action offers.
func (a *heading) Levels() []int {
	return a.levels
}
