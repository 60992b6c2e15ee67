package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Pred matches a node.
type Pred func(n *html.Node) bool

// Tag matches elements with the given tag name.
func Tag(name string) Pred {
	return func(n *html.Node) bool { return IsElement(n, name) }
}

// WithAttr matches elements carrying attribute key.
func WithAttr(key string) Pred {
	return func(n *html.Node) bool { return IsElement(n, "") && HasAttr(n, key) }
}

// AttrEquals matches elements whose attribute key equals val.
func AttrEquals(key, val string) Pred {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return IsElement(n, "") && ok && v == val
	}
}

// AttrPrefix matches elements whose attribute key starts with prefix.
func AttrPrefix(key, prefix string) Pred {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return IsElement(n, "") && ok && strings.HasPrefix(v, prefix)
	}
}

// All matches when every predicate matches.
func All(preds ...Pred) Pred {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(preds ...Pred) Pred {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Find returns the first descendant of root (excluding root) matching p in
// document order.
func Find(root *html.Node, p Pred) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if p(c) {
			return c
		}
		if found := Find(c, p); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of root (excluding root) matching p in
// document order.
func FindAll(root *html.Node, p Pred) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if p(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Closest returns n or its nearest ancestor matching p.
func Closest(n *html.Node, p Pred) *html.Node {
	for ; n != nil; n = n.Parent {
		if p(n) {
			return n
		}
	}
	return nil
}

// Contains reports whether n is ancestor or a descendant of ancestor.
func Contains(ancestor, n *html.Node) bool {
	if ancestor == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// NextElementSibling returns the next sibling of n that is an element.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of n detached from any tree.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(Clone(child))
	}
	return c
}

// Detach removes n from its parent.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceChildren removes every child of n and appends children.
func ReplaceChildren(n *html.Node, children ...*html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	for _, c := range children {
		if c == nil {
			continue
		}
		Detach(c)
		n.AppendChild(c)
	}
}

// InsertAfter moves n to directly after ref.
func InsertAfter(ref, n *html.Node) {
	Detach(n)
	if ref.NextSibling != nil {
		ref.Parent.InsertBefore(n, ref.NextSibling)
		return
	}
	ref.Parent.AppendChild(n)
}
