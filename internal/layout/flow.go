// internal/layout/flow.go
package layout

import (
	"unicode/utf8"

	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// -- Box Model Calculations --

type widthMode int

const (
	// fillWidth gives an auto width everything the containing block leaves.
	fillWidth widthMode = iota
	// shrinkToFit sizes an auto width to its content.
	shrinkToFit
)

// boxEdges holds the resolved margin, border and padding of one frame.
type boxEdges struct {
	margin, border, padding geom.Edges
	autoLeft, autoRight     bool
}

func (b boxEdges) horizontal() float64 {
	return b.margin.Horizontal() + b.border.Horizontal() + b.padding.Horizontal()
}

// resolveEdges resolves every edge against the containing block width.
// Auto margins become 0 and are flagged; negative padding is clamped.
func resolveEdges(s *style.Style, ref geom.Opt) boxEdges {
	one := func(l style.Length) float64 { return s.LengthInPt(ref, l).Or(0) }
	e := boxEdges{
		margin: geom.Edges{
			Top: one(s.Margin.Top), Right: one(s.Margin.Right),
			Bottom: one(s.Margin.Bottom), Left: one(s.Margin.Left),
		},
		border: geom.Edges{
			Top: one(s.BorderWidth.Top), Right: one(s.BorderWidth.Right),
			Bottom: one(s.BorderWidth.Bottom), Left: one(s.BorderWidth.Left),
		},
		padding: geom.Edges{
			Top: max(one(s.Padding.Top), 0), Right: max(one(s.Padding.Right), 0),
			Bottom: max(one(s.Padding.Bottom), 0), Left: max(one(s.Padding.Left), 0),
		},
		autoLeft:  s.Margin.Left.IsAuto(),
		autoRight: s.Margin.Right.IsAuto(),
	}
	return e
}

func sidesOf(e geom.Edges) style.Sides {
	return style.Sides{Top: style.Pt(e.Top), Right: style.Pt(e.Right), Bottom: style.Pt(e.Bottom), Left: style.Pt(e.Left)}
}

// writeUsed stores used values in the current style so the frame's own
// geometry queries report the laid-out box.
func writeUsed(s *style.Style, e boxEdges, width, height float64) {
	s.Width = style.Pt(width)
	s.Height = style.Pt(height)
	s.Margin = sidesOf(e.margin)
	s.BorderWidth = sidesOf(e.border)
	s.Padding = sidesOf(e.padding)
}

// layoutBlock sizes f, lays out its children and records the used box.
// The position must already be set. avail is the width available to the
// margin box.
func (e *Engine) layoutBlock(f *frame.Frame, mode widthMode, avail float64) {
	s := f.Style()
	cb := f.ContainingBlock()
	ed := resolveEdges(s, cb.W)
	static := ed.border.Horizontal() + ed.padding.Horizontal()

	width, ok := s.LengthInPt(cb.W, s.Width).Get()
	switch {
	case !ok && mode == shrinkToFit:
		width = min(e.contentWidth(f), avail-static-ed.margin.Horizontal())
	case !ok:
		width = avail - static - ed.margin.Horizontal()
	case mode == fillWidth && ed.autoLeft && ed.autoRight:
		free := max(avail-static-width, 0)
		ed.margin.Left, ed.margin.Right = free/2, free/2
	case mode == fillWidth && ed.autoLeft:
		ed.margin.Left = max(avail-static-width-ed.margin.Right, 0)
	}
	width = max(width, 0)

	pos := f.Position()
	content := geom.Box{
		X:     pos.X.Or(0) + ed.margin.Left + ed.border.Left + ed.padding.Left,
		Y:     pos.Y.Or(0) + ed.margin.Top + ed.border.Top + ed.padding.Top,
		Width: width,
	}
	height := s.LengthInPt(cb.H, s.Height)
	used := e.flowChildren(f, content, height)
	writeUsed(s, ed, width, max(height.Or(used), 0))
}

// flowChildren lays out the children of f inside content and returns the
// height they occupy. Block children stack with adjacent vertical margins
// collapsed; runs of inline-level children share line boxes. Absolutely
// positioned children are left for the positioned pass.
func (e *Engine) flowChildren(f *frame.Frame, content geom.Box, height geom.Opt) float64 {
	cb := geom.Rect{
		X: geom.Some(content.X),
		Y: geom.Some(content.Y),
		W: geom.Some(content.Width),
		H: height,
	}
	cursor := content.Y
	prevMarginBottom := 0.0
	var line *lineCursor

	for c := range f.Children().All() {
		c.SetContainingBlock(cb)
		if c.IsAbsolute() {
			continue
		}
		if _, ok := c.Decorator().(*Null); ok {
			e.reflow(c, line)
			continue
		}
		if isInlineLevel(c) {
			if line == nil {
				line = newLineCursor(content.X, cursor, content.Width)
			}
			e.reflow(c, line)
			continue
		}
		if line != nil {
			cursor = line.bottom()
			line = nil
			prevMarginBottom = 0
		}
		if c.IsFloating() {
			e.layoutFloat(c, content, cursor)
			continue
		}

		ed := resolveEdges(c.Style(), cb.W)
		collapse := min(prevMarginBottom, ed.margin.Top)
		top := cursor - collapse
		c.SetPosition(geom.Point{X: geom.Some(content.X), Y: geom.Some(top)})
		e.reflow(c, nil)

		cursor = top + c.MarginHeight().Or(0)
		prevMarginBottom = ed.margin.Bottom
	}
	if line != nil {
		cursor = line.bottom()
	}
	return cursor - content.Y
}

// layoutFloat shrink-wraps a floating child and pins it to the left or
// right edge at the current cursor. Floats do not push later content aside.
func (e *Engine) layoutFloat(c *frame.Frame, content geom.Box, cursor float64) {
	c.SetPosition(geom.Point{X: geom.Some(content.X), Y: geom.Some(cursor)})
	e.layoutBlock(c, shrinkToFit, content.Width)
	if c.Style().Float == "right" {
		dx := content.Right() - c.MarginWidth().Or(0) - content.X
		shiftSubtree(c, dx, 0)
	}
}

// placeOnLine reserves the margin box of a laid-out frame on line and moves
// the frame from start to the slot it was given.
func (e *Engine) placeOnLine(f *frame.Frame, line *lineCursor, start geom.Point) {
	x, y := line.place(f.MarginWidth().Or(0), f.MarginHeight().Or(0))
	shiftSubtree(f, x-start.X.Or(0), y-start.Y.Or(0))
}

// shiftSubtree moves f and everything laid out inside it. Fixed frames keep
// their page position.
func shiftSubtree(f *frame.Frame, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	move(f, dx, dy, false)
}

func move(f *frame.Frame, dx, dy float64, moveBlock bool) {
	if moveBlock && f.Style().Position == "fixed" {
		return
	}
	p := f.Position()
	f.SetPosition(geom.Point{X: geom.Some(p.X.Or(0) + dx), Y: geom.Some(p.Y.Or(0) + dy)})
	if moveBlock {
		cb := f.ContainingBlock()
		f.SetContainingBlock(geom.Rect{X: geom.Some(cb.X.Or(0) + dx), Y: geom.Some(cb.Y.Or(0) + dy)})
	}
	for c := range f.Children().All() {
		move(c, dx, dy, true)
	}
}

func isInlineLevel(f *frame.Frame) bool {
	if f.IsTextNode() || f.IsInline() {
		return true
	}
	switch f.Style().Display {
	case "inline-block", "inline-table":
		return !f.IsFloating()
	}
	return false
}

// -- Measurement --

// textWidth estimates the advance of a text frame from its character count.
func (e *Engine) textWidth(f *frame.Frame) float64 {
	return float64(utf8.RuneCountInString(f.Node().Text())) * f.Style().FontSize * e.cfg.CharWidth
}

func (e *Engine) lineHeight(s *style.Style) float64 {
	return s.FontSize * e.cfg.LineHeight
}

// contentWidth is the max-content width of f's children: inline-level
// children sit side by side, block children take the widest.
func (e *Engine) contentWidth(f *frame.Frame) float64 {
	inline, block := 0.0, 0.0
	for c := range f.Children().All() {
		if c.IsAbsolute() {
			continue
		}
		w := e.outerWidth(c)
		if isInlineLevel(c) {
			inline += w
		} else {
			block = max(block, w)
		}
	}
	return max(inline, block)
}

// outerWidth is the max-content margin box width of f.
func (e *Engine) outerWidth(f *frame.Frame) float64 {
	if f.IsTextNode() {
		return e.textWidth(f)
	}
	if _, ok := f.Decorator().(*Null); ok {
		return 0
	}
	s := f.Style()
	ed := resolveEdges(s, geom.None())
	if img, ok := f.Decorator().(*Image); ok {
		return intrinsicImageSize(img.frame, s, s.Width, geom.None(), "width") + ed.horizontal()
	}
	if w, ok := s.LengthInPt(geom.None(), s.Width).Get(); ok {
		return w + ed.horizontal()
	}
	return e.contentWidth(f) + ed.horizontal()
}
