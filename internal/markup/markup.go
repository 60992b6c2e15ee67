// Package markup provides helpers over golang.org/x/net/html trees for the
// hosting markup of a rich-text field: attribute and class manipulation,
// element navigation, selector-like lookups, cloning and rendering.
//
// The toolbar framework never keeps its own element model; every control,
// menu, dialog and field is a *html.Node owned by the parsed document.
package markup

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a complete HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse: %w", err)
	}
	return doc, nil
}

// ParseString parses a complete HTML document from a string.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses s as the children of a <body> element.
func ParseFragment(s string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), body)
	if err != nil {
		return nil, fmt.Errorf("markup: parse fragment: %w", err)
	}
	return nodes, nil
}

// IsElement reports whether n is an element with the given tag name.
// An empty tag matches any element.
func IsElement(n *html.Node, tag string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return tag == "" || n.Data == tag
}

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// GetAttr returns the value of attribute key or "" when absent.
func GetAttr(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

// HasAttr reports whether attribute key is present.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets attribute key to val, adding it when absent.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes attribute key.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	return strings.Fields(GetAttr(n, "class"))
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	for _, cls := range Classes(n) {
		if cls == c {
			return true
		}
	}
	return false
}

// AddClass adds classes to n, skipping those already present.
func AddClass(n *html.Node, classes ...string) {
	list := Classes(n)
	for _, c := range classes {
		if c == "" || HasClass(n, c) {
			continue
		}
		list = append(list, c)
		SetAttr(n, "class", strings.Join(list, " "))
	}
}

// RemoveClass removes classes from n. The attribute is dropped once empty.
func RemoveClass(n *html.Node, classes ...string) {
	if !HasAttr(n, "class") {
		return
	}
	drop := make(map[string]bool, len(classes))
	for _, c := range classes {
		drop[c] = true
	}
	var keep []string
	for _, c := range Classes(n) {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// ClearClasses removes every class from n.
func ClearClasses(n *html.Node) {
	RemoveAttr(n, "class")
}

// ToggleClass adds c when on is true and removes it otherwise.
func ToggleClass(n *html.Node, c string, on bool) {
	if on {
		AddClass(n, c)
	} else {
		RemoveClass(n, c)
	}
}

// SetStyle sets a single CSS property in the style attribute of n,
// preserving the other declarations.
func SetStyle(n *html.Node, prop, value string) {
	var decls []string
	replaced := false
	for _, d := range strings.Split(GetAttr(n, "style"), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.TrimSpace(name) == prop {
			decls = append(decls, prop+": "+value)
			replaced = true
			continue
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, prop+": "+value)
	}
	SetAttr(n, "style", strings.Join(decls, "; ")+";")
}

// Style returns the value of CSS property prop in the style attribute of n.
func Style(n *html.Node, prop string) string {
	for _, d := range strings.Split(GetAttr(n, "style"), ";") {
		name, value, ok := strings.Cut(d, ":")
		if ok && strings.TrimSpace(name) == prop {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Describe renders the start tag of n for use in error messages.
func Describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Type != html.ElementNode {
		return fmt.Sprintf("%q", n.Data)
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	b.WriteByte('>')
	return b.String()
}

// Render renders n and its subtree.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// RenderChildren renders the children of n, the equivalent of innerHTML.
func RenderChildren(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// TextContent returns the concatenated text of n's subtree.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return b.String()
}

// SetTextContent replaces the children of n with a single text node.
func SetTextContent(n *html.Node, s string) {
	ReplaceChildren(n, &html.Node{Type: html.TextNode, Data: s})
}
