// internal/geom/geom.go
package geom

import (
	"fmt"
	"strconv"
)

// -- Optional Coordinates --

// Opt is a float64 that may not have been computed yet. The zero value is
// unresolved, which keeps "not yet computed" apart from a computed 0.
type Opt struct {
	v  float64
	ok bool
}

// Some returns a resolved value.
func Some(v float64) Opt { return Opt{v: v, ok: true} }

// None returns the unresolved sentinel.
func None() Opt { return Opt{} }

// Get returns the value and whether it is resolved.
func (o Opt) Get() (float64, bool) { return o.v, o.ok }

// Valid reports whether the value is resolved.
func (o Opt) Valid() bool { return o.ok }

// Or returns the value, or d when unresolved.
func (o Opt) Or(d float64) float64 {
	if !o.ok {
		return d
	}
	return o.v
}

// Add sums two optionals. The result is unresolved if either side is.
func (o Opt) Add(other Opt) Opt {
	if !o.ok || !other.ok {
		return None()
	}
	return Some(o.v + other.v)
}

func (o Opt) String() string {
	if !o.ok {
		return "unresolved"
	}
	return strconv.FormatFloat(o.v, 'f', -1, 64)
}

// -- Points and Rectangles --

// Point is the top-left corner of a margin box. Each axis resolves independently.
type Point struct {
	X, Y Opt
}

// Resolved reports whether both coordinates are known.
func (p Point) Resolved() bool { return p.X.ok && p.Y.ok }

// Rect is a containing block: the rectangle that relative lengths resolve against.
type Rect struct {
	X, Y, W, H Opt
}

// Resolved converts the rectangle to a Box when every field is known.
func (r Rect) Resolved() (Box, bool) {
	if !r.X.ok || !r.Y.ok || !r.W.ok || !r.H.ok {
		return Box{}, false
	}
	return Box{X: r.X.v, Y: r.Y.v, Width: r.W.v, Height: r.H.v}, true
}

// RectOf builds a fully resolved Rect from a Box.
func RectOf(b Box) Rect {
	return Rect{X: Some(b.X), Y: Some(b.Y), W: Some(b.Width), H: Some(b.Height)}
}

// Box is a resolved rectangle in page coordinates (origin top-left, y down).
type Box struct {
	X, Y, Width, Height float64
}

// ExpandedBy returns a new box grown outward by the edge sizes.
func (b Box) ExpandedBy(e Edges) Box {
	return Box{
		X:      b.X - e.Left,
		Y:      b.Y - e.Top,
		Width:  b.Width + e.Left + e.Right,
		Height: b.Height + e.Top + e.Bottom,
	}
}

// ShrunkBy returns a new box moved inward by the edge sizes.
func (b Box) ShrunkBy(e Edges) Box {
	return Box{
		X:      b.X + e.Left,
		Y:      b.Y + e.Top,
		Width:  b.Width - e.Left - e.Right,
		Height: b.Height - e.Top - e.Bottom,
	}
}

// Right is the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom is the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

func (b Box) String() string {
	return fmt.Sprintf("(%g, %g, %g x %g)", b.X, b.Y, b.Width, b.Height)
}

// Edges holds one size per side.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal is left + right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical is top + bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }
