// internal/layout/decorators.go
package layout

import (
	"strings"

	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// Reflower is the layout entry point every decorator variant implements.
// line is nil when the frame is placed by block flow, in which case its
// position has already been set by the parent.
type Reflower interface {
	frame.Decorator
	Reflow(e *Engine, line *lineCursor)
}

var (
	_ Reflower = (*Block)(nil)
	_ Reflower = (*ListItem)(nil)
	_ Reflower = (*Inline)(nil)
	_ Reflower = (*Text)(nil)
	_ Reflower = (*Image)(nil)
	_ Reflower = (*Null)(nil)
)

// -- Block --

// Block lays out block containers: its children stack vertically, with
// runs of inline-level children flowed into lines.
type Block struct {
	frame *frame.Frame
}

func (d *Block) Frame() *frame.Frame { return d.frame }

func (d *Block) Reflow(e *Engine, line *lineCursor) {
	f := d.frame
	if line == nil {
		e.layoutBlock(f, fillWidth, f.ContainingBlock().W.Or(0))
		return
	}
	// Inline-block: shrink to fit, then take a slot on the line.
	start := geom.Point{X: geom.Some(line.x), Y: geom.Some(line.top)}
	f.SetPosition(start)
	e.layoutBlock(f, shrinkToFit, line.width)
	e.placeOnLine(f, line, start)
}

// -- ListItem --

// ListItem is a block with a marker drawn in the left margin.
type ListItem struct {
	Block
	Marker string
}

// -- Inline --

// Inline flows its children into the enclosing line and wraps them with
// its own horizontal edges.
type Inline struct {
	frame *frame.Frame
}

func (d *Inline) Frame() *frame.Frame { return d.frame }

func (d *Inline) Reflow(e *Engine, line *lineCursor) {
	f := d.frame
	cb := f.ContainingBlock()
	if line == nil {
		line = newLineCursor(cb.X.Or(0), cb.Y.Or(0), cb.W.Or(0))
	}
	s := f.Style()
	ed := resolveEdges(s, cb.W)

	startX, startTop := line.x, line.top
	line.advance(ed.margin.Left + ed.border.Left + ed.padding.Left)
	for c := range f.Children().All() {
		c.SetContainingBlock(cb)
		if c.IsAbsolute() {
			continue
		}
		e.reflow(c, line)
	}
	line.advance(ed.padding.Right + ed.border.Right + ed.margin.Right)

	height := e.lineHeight(s)
	line.grow(height)

	width := line.x - startX - ed.horizontal()
	if line.top != startTop {
		// Spans more than one line: report the full measure.
		startX = line.left
		width = line.width - ed.horizontal()
	}
	// Vertical margins do not apply to inline boxes.
	ed.margin.Top, ed.margin.Bottom = 0, 0
	ed.padding.Top, ed.padding.Bottom = 0, 0
	ed.border.Top, ed.border.Bottom = 0, 0

	f.SetPosition(geom.Point{X: geom.Some(startX), Y: geom.Some(startTop)})
	writeUsed(s, ed, max(width, 0), height)
}

// -- Text --

// Text places one run of text as a single unbreakable box.
type Text struct {
	frame *frame.Frame
}

func (d *Text) Frame() *frame.Frame { return d.frame }

func (d *Text) Reflow(e *Engine, line *lineCursor) {
	f := d.frame
	cb := f.ContainingBlock()
	if line == nil {
		line = newLineCursor(cb.X.Or(0), cb.Y.Or(0), cb.W.Or(0))
	}
	s := f.Style()
	w := e.textWidth(f)
	h := e.lineHeight(s)
	x, y := line.place(w, h)
	f.SetPosition(geom.Point{X: geom.Some(x), Y: geom.Some(y)})
	writeUsed(s, boxEdges{}, w, h)
}

// -- Image --

// Image is a replaced element sized by its style or its width and height
// attributes.
type Image struct {
	frame *frame.Frame
	Src   string
}

func (d *Image) Frame() *frame.Frame { return d.frame }

func (d *Image) Reflow(e *Engine, line *lineCursor) {
	f := d.frame
	s := f.Style()
	cb := f.ContainingBlock()
	ed := resolveEdges(s, cb.W)
	ed.autoLeft, ed.autoRight = false, false

	w := intrinsicImageSize(f, s, s.Width, cb.W, "width")
	h := intrinsicImageSize(f, s, s.Height, cb.H, "height")
	writeUsed(s, ed, w, h)

	if line == nil {
		return
	}
	start := geom.Point{X: geom.Some(line.x), Y: geom.Some(line.top)}
	f.SetPosition(start)
	e.placeOnLine(f, line, start)
}

// intrinsicImageSize resolves one image dimension from the style, falling
// back to the pixel-valued attribute and then to zero.
func intrinsicImageSize(f *frame.Frame, s *style.Style, l style.Length, ref geom.Opt, attr string) float64 {
	if v, ok := s.LengthInPt(ref, l).Get(); ok {
		return max(v, 0)
	}
	raw, ok := f.Node().Attr(attr)
	if !ok {
		return 0
	}
	px, err := style.ParseNumber(strings.TrimSuffix(strings.TrimSpace(raw), "px"))
	if err != nil || px < 0 {
		return 0
	}
	return px * 72 / s.DPI()
}

// -- Null --

// Null decorates frames with display none. They occupy no space.
type Null struct {
	frame *frame.Frame
}

func (d *Null) Frame() *frame.Frame { return d.frame }

func (d *Null) Reflow(e *Engine, line *lineCursor) {
	f := d.frame
	cb := f.ContainingBlock()
	x, y := cb.X.Or(0), cb.Y.Or(0)
	if line != nil {
		x, y = line.x, line.top
	}
	f.SetPosition(geom.Point{X: geom.Some(x), Y: geom.Some(y)})
	writeUsed(f.Style(), boxEdges{}, 0, 0)
}
