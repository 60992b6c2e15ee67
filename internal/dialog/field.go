package dialog

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// Field is a named form control.
type Field struct {
	Node *html.Node
	Name string
	Type string

	Required  bool
	Disabled  bool
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int

	def   string
	value string
}

// newField reads the constraints of a form control. Invalid patterns are
// ignored the way browsers ignore them.
func newField(n *html.Node) *Field {
	f := &Field{
		Node:     n,
		Name:     markup.GetAttr(n, "name"),
		Type:     strings.ToLower(markup.GetAttr(n, "type")),
		Required: markup.HasAttr(n, "required"),
		Disabled: markup.HasAttr(n, "disabled"),
	}
	switch n.Data {
	case "textarea":
		f.Type = "textarea"
		f.def = markup.TextContent(n)
	case "select":
		f.Type = "select"
		f.def = selectedOption(n)
	default:
		if f.Type == "" {
			f.Type = "text"
		}
		f.def = markup.GetAttr(n, "value")
	}
	if p, ok := markup.Attr(n, "pattern"); ok {
		if re, err := regexp.Compile("^(?:" + p + ")$"); err == nil {
			f.Pattern = re
		}
	}
	f.MinLength = intAttr(n, "minlength")
	f.MaxLength = intAttr(n, "maxlength")
	f.value = f.def
	return f
}

func intAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(markup.GetAttr(n, key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func selectedOption(n *html.Node) string {
	opts := markup.FindAll(n, markup.Tag("option"))
	if len(opts) == 0 {
		return ""
	}
	chosen := opts[0]
	for _, o := range opts {
		if markup.HasAttr(o, "selected") {
			chosen = o
			break
		}
	}
	if v, ok := markup.Attr(chosen, "value"); ok {
		return v
	}
	return strings.TrimSpace(markup.TextContent(chosen))
}

// Value returns the current value.
func (f *Field) Value() string {
	return f.value
}

// Default returns the pristine value.
func (f *Field) Default() string {
	return f.def
}

// SetValue changes the current value and mirrors it into the markup.
func (f *Field) SetValue(v string) {
	f.value = v
	f.mirror()
}

// Reset restores the pristine value.
func (f *Field) Reset() {
	f.value = f.def
	f.mirror()
}

func (f *Field) mirror() {
	switch f.Type {
	case "textarea":
		markup.SetTextContent(f.Node, f.value)
	case "select":
		for _, o := range markup.FindAll(f.Node, markup.Tag("option")) {
			v, ok := markup.Attr(o, "value")
			if !ok {
				v = strings.TrimSpace(markup.TextContent(o))
			}
			if v == f.value {
				markup.SetAttr(o, "selected", "")
			} else {
				markup.RemoveAttr(o, "selected")
			}
		}
	default:
		if f.value == "" && f.def == "" {
			markup.RemoveAttr(f.Node, "value")
			return
		}
		markup.SetAttr(f.Node, "value", f.value)
	}
}

// Valid reports whether the value satisfies the field's constraints.
// Disabled and hidden fields are barred from validation.
func (f *Field) Valid() bool {
	return f.Problem() == ""
}

// Problem names the first violated constraint, or "" when valid.
func (f *Field) Problem() string {
	if f.Disabled || f.Type == "hidden" {
		return ""
	}
	v := f.value
	if v == "" {
		if f.Required {
			return "valueMissing"
		}
		return ""
	}
	switch f.Type {
	case "url":
		u, err := url.Parse(v)
		if err != nil || !u.IsAbs() {
			return "typeMismatch"
		}
	case "email":
		if _, err := mail.ParseAddress(v); err != nil {
			return "typeMismatch"
		}
	}
	n := utf8.RuneCountInString(v)
	if f.MaxLength > 0 && n > f.MaxLength {
		return "tooLong"
	}
	if f.MinLength > 0 && n < f.MinLength {
		return "tooShort"
	}
	if f.Pattern != nil && !f.Pattern.MatchString(v) {
		return "patternMismatch"
	}
	return ""
}
