package position

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// Geometry reports the layout of rendered elements.
type Geometry interface {
	// Bounds returns the rectangle of n and whether it is laid out.
	Bounds(n *html.Node) (Rect, bool)
	// Viewport returns the visible area.
	Viewport() Rect
}

// RectAttr is the attribute AttrGeometry reads element rectangles from,
// written as "x,y,width,height".
const RectAttr = "data-rect"

// AttrGeometry reads rectangles recorded on the markup itself. It is the
// geometry used when no renderer is attached.
type AttrGeometry struct {
	View Rect
}

// Bounds parses the data-rect attribute of n.
func (g AttrGeometry) Bounds(n *html.Node) (Rect, bool) {
	v, ok := markup.Attr(n, RectAttr)
	if !ok {
		return Rect{}, false
	}
	return ParseRect(v)
}

// Viewport returns the configured view.
func (g AttrGeometry) Viewport() Rect {
	return g.View
}

// ParseRect parses "x,y,width,height".
func ParseRect(s string) (Rect, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, false
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, false
		}
		v[i] = f
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
}

// Place computes the position of floating against reference using g and
// writes it into floating's style. It reports false when either element
// has no layout.
func Place(g Geometry, reference, floating *html.Node, gap float64) (Result, bool) {
	ref, ok := g.Bounds(reference)
	if !ok {
		return Result{}, false
	}
	fl, ok := g.Bounds(floating)
	if !ok {
		return Result{}, false
	}
	res := Compute(ref, fl, Options{Boundary: g.Viewport(), Gap: gap})
	Apply(floating, res)
	return res, true
}
