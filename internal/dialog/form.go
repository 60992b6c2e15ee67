package dialog

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// Form is a <form method="dialog"> and its named controls.
type Form struct {
	Node   *html.Node
	fields []*Field
}

var isControl = markup.Any(markup.Tag("input"), markup.Tag("textarea"), markup.Tag("select"))

// ParseForm collects the named controls of form. Inputs of type submit,
// button, reset and image are buttons, not fields.
func ParseForm(form *html.Node) *Form {
	f := &Form{Node: form}
	for _, n := range markup.FindAll(form, markup.All(isControl, markup.WithAttr("name"))) {
		if n.Data == "input" {
			switch markup.GetAttr(n, "type") {
			case "submit", "button", "reset", "image":
				continue
			}
		}
		f.fields = append(f.fields, newField(n))
	}
	return f
}

// Field returns the field named name, or nil.
func (f *Form) Field(name string) *Field {
	for _, fd := range f.fields {
		if fd.Name == name {
			return fd
		}
	}
	return nil
}

// Fields returns the fields in document order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Require checks that every named field exists.
func (f *Form) Require(names ...string) error {
	for _, name := range names {
		if f.Field(name) == nil {
			return fmt.Errorf("%w <input name=%q>", ErrMissingField, name)
		}
	}
	return nil
}

// Button returns the <button> named name, or nil.
func (f *Form) Button(name string) *html.Node {
	return markup.Find(f.Node, markup.All(markup.Tag("button"), markup.AttrEquals("name", name)))
}

// Valid reports whether every field is valid.
func (f *Form) Valid() bool {
	for _, fd := range f.fields {
		if !fd.Valid() {
			return false
		}
	}
	return true
}

// Invalid returns the names of the fields failing validation.
func (f *Form) Invalid() []string {
	var out []string
	for _, fd := range f.fields {
		if !fd.Valid() {
			out = append(out, fd.Name)
		}
	}
	return out
}

// Values returns the current field values by name.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		out[fd.Name] = fd.value
	}
	return out
}

// Reset restores every field to its pristine value.
func (f *Form) Reset() {
	for _, fd := range f.fields {
		fd.Reset()
	}
}
