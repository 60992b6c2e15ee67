// Package position places a floating element, such as a dropdown menu,
// relative to the control that anchors it.
//
// The default placement is below the anchor and horizontally centered on
// it. When a boundary is known and the floating element would overflow its
// bottom edge, the placement flips above the anchor. The floating element
// never overlaps the anchor.
package position

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/dshills/richtextarea/internal/markup"
)

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// IsZero reports whether r has no area.
func (r Rect) IsZero() bool { return r.Width <= 0 || r.Height <= 0 }

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Placement is the side of the anchor the floating element sits on.
type Placement int

const (
	Bottom Placement = iota
	Top
)

// String returns the placement name.
func (p Placement) String() string {
	if p == Top {
		return "top"
	}
	return "bottom"
}

// Options tune Compute.
type Options struct {
	// Boundary is the clipping area, usually the viewport. A zero
	// boundary disables flipping and shifting.
	Boundary Rect

	// Gap is the distance between anchor and floating element.
	Gap float64
}

// Result is a computed position for the floating element.
type Result struct {
	X, Y      float64
	Placement Placement
}

// Rect returns the floating rectangle at the computed position.
func (r Result) Rect(floating Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: floating.Width, Height: floating.Height}
}

// Compute places floating relative to reference.
func Compute(reference, floating Rect, opts Options) Result {
	res := Result{
		X:         reference.X + reference.Width/2 - floating.Width/2,
		Y:         reference.Bottom() + opts.Gap,
		Placement: Bottom,
	}
	b := opts.Boundary
	if b.IsZero() {
		return res
	}
	if res.Y+floating.Height > b.Bottom() {
		top := reference.Y - opts.Gap - floating.Height
		if top >= b.Y {
			res.Y, res.Placement = top, Top
		}
	}
	if res.X+floating.Width > b.Right() {
		res.X = b.Right() - floating.Width
	}
	if res.X < b.X {
		res.X = b.X
	}
	return res
}

// Apply writes the result into the left and top style properties of n.
func Apply(n *html.Node, r Result) {
	markup.SetStyle(n, "left", px(r.X))
	markup.SetStyle(n, "top", px(r.Y))
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
