package model

import (
	"slices"

	"github.com/dshills/richtextarea/internal/engine"
	"github.com/dshills/richtextarea/internal/extension"
)

// Mark is a named inline format with optional attributes.
type Mark struct {
	Name  string
	Attrs engine.Attrs
}

// Equal reports whether m and o have the same name and attributes.
func (m Mark) Equal(o Mark) bool {
	if m.Name != o.Name || len(m.Attrs) != len(o.Attrs) {
		return false
	}
	return m.Attrs.Matches(o.Attrs)
}

// markRank orders marks from outermost to innermost when rendered.
var markRank = map[string]int{
	extension.NameLink:        0,
	extension.NameProcurator:  1,
	extension.NameTextColor:   2,
	extension.NameBold:        3,
	extension.NameItalic:      4,
	extension.NameUnderline:   5,
	extension.NameSubscript:   6,
	extension.NameSuperscript: 7,
}

// Inclusive reports whether text typed at the end of the mark extends it.
// Links and placeholder variables end where they end.
func Inclusive(name string) bool {
	return name != extension.NameLink && name != extension.NameProcurator
}

func rank(name string) int {
	if r, ok := markRank[name]; ok {
		return r
	}
	return len(markRank)
}

func cloneMarks(marks []Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	out := make([]Mark, len(marks))
	for i, m := range marks {
		out[i] = Mark{Name: m.Name, Attrs: m.Attrs.Clone()}
	}
	return out
}

// FindMark returns the mark named name on c.
func (c *Cell) FindMark(name string) (Mark, bool) {
	for _, m := range c.Marks {
		if m.Name == name {
			return m, true
		}
	}
	return Mark{}, false
}

// HasMark reports whether c carries a mark named name.
func (c *Cell) HasMark(name string) bool {
	_, ok := c.FindMark(name)
	return ok
}

// AddMark sets m on c, replacing a mark of the same name and keeping marks
// in rendering order.
func (c *Cell) AddMark(m Mark) {
	c.RemoveMark(m.Name)
	c.Marks = append(c.Marks, Mark{Name: m.Name, Attrs: m.Attrs.Clone()})
	slices.SortStableFunc(c.Marks, func(a, b Mark) int {
		return rank(a.Name) - rank(b.Name)
	})
}

// RemoveMark drops the mark named name from c.
func (c *Cell) RemoveMark(name string) {
	c.Marks = slices.DeleteFunc(c.Marks, func(m Mark) bool { return m.Name == name })
	if len(c.Marks) == 0 {
		c.Marks = nil
	}
}

// SameMarks reports whether two mark lists are equal.
func SameMarks(a, b []Mark) bool {
	return slices.EqualFunc(a, b, Mark.Equal)
}

// InheritedMarks returns the marks new text at the given cells should carry.
// Non-inclusive marks are dropped.
func InheritedMarks(marks []Mark) []Mark {
	var out []Mark
	for _, m := range marks {
		if Inclusive(m.Name) {
			out = append(out, Mark{Name: m.Name, Attrs: m.Attrs.Clone()})
		}
	}
	return out
}
