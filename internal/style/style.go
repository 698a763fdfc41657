// internal/style/style.go
package style

import (
	"errors"
	"slices"

	"github.com/xkilldash9x/folio/internal/geom"
)

// ErrDisposed is the panic value for any use of a released Style.
var ErrDisposed = errors.New("style: use of disposed style")

// -- Constants and Configuration --

const (
	DefaultDPI      = 96.0
	DefaultFontSize = 12.0 // pt
)

// Category tables. Membership is an exact string match.
var (
	PositionedTypes = []string{"relative", "absolute", "fixed"}
	BlockTypes      = []string{"block", "inline-block", "table-cell", "list-item"}
	InlineTypes     = []string{"inline"}
	TableTypes      = []string{
		"table", "inline-table", "table-row-group", "table-header-group",
		"table-footer-group", "table-row", "table-column-group", "table-column",
		"table-cell", "table-caption",
	}
	PreTypes = []string{"pre", "pre-wrap", "pre-line"}
)

// IsIn reports whether value is a member of set.
func IsIn(set []string, value string) bool {
	return slices.Contains(set, value)
}

// Side names one edge of a box.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides holds one length per edge.
type Sides struct {
	Top, Right, Bottom, Left Length
}

// Uniform returns Sides with the same length on every edge.
func Uniform(l Length) Sides { return Sides{l, l, l, l} }

// Get returns the length for one side.
func (s Sides) Get(side Side) Length {
	switch side {
	case Top:
		return s.Top
	case Right:
		return s.Right
	case Bottom:
		return s.Bottom
	default:
		return s.Left
	}
}

// Set replaces the length for one side.
func (s *Sides) Set(side Side, l Length) {
	switch side {
	case Top:
		s.Top = l
	case Right:
		s.Right = l
	case Bottom:
		s.Bottom = l
	default:
		s.Left = l
	}
}

// BorderStyles holds the border-*-style keyword per edge.
type BorderStyles struct {
	Top, Right, Bottom, Left string
}

// Style is the resolved set of CSS values for one frame. Box-model lengths
// stay in their specified units; LengthInPt converts them on demand.
// Border widths are already zero for edges whose border style is none or hidden.
type Style struct {
	Display    string
	Position   string
	Float      string
	WhiteSpace string

	Width  Length
	Height Length

	Margin       Sides
	Padding      Sides
	BorderWidth  Sides
	BorderStyle  BorderStyles
	Offsets      Sides // top, right, bottom, left
	Opacity      float64
	FontSize     float64 // pt
	Color        Color
	Background   Color
	BorderColor  Color
	ListStyle    string
	rootFontSize float64
	dpi          float64
	disposed     bool
}

// New returns a style carrying the initial value of every property.
func New() *Style {
	return &Style{
		Display:      "inline",
		Position:     "static",
		Float:        "none",
		WhiteSpace:   "normal",
		Width:        Auto,
		Height:       Auto,
		Offsets:      Uniform(Auto),
		BorderStyle:  BorderStyles{"none", "none", "none", "none"},
		Opacity:      1,
		FontSize:     DefaultFontSize,
		Color:        Color{0, 0, 0, 255},
		BorderColor:  Color{0, 0, 0, 255},
		ListStyle:    "disc",
		rootFontSize: DefaultFontSize,
		dpi:          DefaultDPI,
	}
}

// SetDPI sets the resolution used to convert px to pt.
func (s *Style) SetDPI(dpi float64) {
	s.live()
	if dpi > 0 {
		s.dpi = dpi
	}
}

// DPI returns the px conversion resolution.
func (s *Style) DPI() float64 {
	s.live()
	return s.dpi
}

// LengthInPt sums lengths against one reference dimension. The result is
// unresolved if any length is auto or none, or if a percentage (or normal)
// needs a reference that is itself unresolved.
func (s *Style) LengthInPt(ref geom.Opt, lengths ...Length) geom.Opt {
	s.live()
	total := 0.0
	for _, l := range lengths {
		v, ok := l.toPt(ref, s.FontSize, s.rootFontSize, s.dpi)
		if !ok {
			return geom.None()
		}
		total += v
	}
	return geom.Some(total)
}

// Clone returns a deep copy. Style holds no reference types, so a value
// copy is already deep.
func (s *Style) Clone() *Style {
	s.live()
	c := *s
	return &c
}

// Dispose releases the style. Any later method call panics.
func (s *Style) Dispose() {
	if s == nil {
		return
	}
	*s = Style{disposed: true}
}

// Disposed reports whether Dispose has been called.
func (s *Style) Disposed() bool { return s == nil || s.disposed }

func (s *Style) live() {
	if s == nil || s.disposed {
		panic(ErrDisposed)
	}
}
