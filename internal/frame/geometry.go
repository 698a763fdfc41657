// internal/frame/geometry.go
package frame

import "github.com/xkilldash9x/folio/internal/geom"

// Box-model queries. Each is a pure function of the current style, the
// containing block and the position; nothing is cached. Vertical lengths
// resolve against the containing block height and horizontal lengths
// against its width.

// MarginHeight is the outer height: height plus top and bottom margins,
// borders and paddings.
func (f *Frame) MarginHeight() geom.Opt {
	s := f.mustStyle()
	return s.LengthInPt(f.containingBlock.H,
		s.Height,
		s.Margin.Top, s.Margin.Bottom,
		s.BorderWidth.Top, s.BorderWidth.Bottom,
		s.Padding.Top, s.Padding.Bottom,
	)
}

// MarginWidth is the outer width: width plus left and right margins,
// borders and paddings.
func (f *Frame) MarginWidth() geom.Opt {
	s := f.mustStyle()
	return s.LengthInPt(f.containingBlock.W,
		s.Width,
		s.Margin.Left, s.Margin.Right,
		s.BorderWidth.Left, s.BorderWidth.Right,
		s.Padding.Left, s.Padding.Right,
	)
}

// BreakMargins is the vertical space the frame adds around its content
// height: MarginHeight without the intrinsic height.
func (f *Frame) BreakMargins() geom.Opt {
	s := f.mustStyle()
	return s.LengthInPt(f.containingBlock.H,
		s.Margin.Top, s.Margin.Bottom,
		s.BorderWidth.Top, s.BorderWidth.Bottom,
		s.Padding.Top, s.Padding.Bottom,
	)
}

// PaddingBox returns the rectangle inside the borders. ok is false while
// the position or any contributing length is unresolved.
func (f *Frame) PaddingBox() (b geom.Box, ok bool) {
	s := f.mustStyle()
	cb := f.containingBlock
	r := geom.Rect{
		X: f.position.X.Add(s.LengthInPt(cb.W, s.Margin.Left, s.BorderWidth.Left)),
		Y: f.position.Y.Add(s.LengthInPt(cb.H, s.Margin.Top, s.BorderWidth.Top)),
		W: s.LengthInPt(cb.W, s.Padding.Left, s.Width, s.Padding.Right),
		H: s.LengthInPt(cb.H, s.Padding.Top, s.Height, s.Padding.Bottom),
	}
	return r.Resolved()
}

// BorderBox returns the rectangle inside the margins.
func (f *Frame) BorderBox() (b geom.Box, ok bool) {
	s := f.mustStyle()
	cb := f.containingBlock
	r := geom.Rect{
		X: f.position.X.Add(s.LengthInPt(cb.W, s.Margin.Left)),
		Y: f.position.Y.Add(s.LengthInPt(cb.H, s.Margin.Top)),
		W: s.LengthInPt(cb.W, s.BorderWidth.Left, s.Padding.Left, s.Width, s.Padding.Right, s.BorderWidth.Right),
		H: s.LengthInPt(cb.H, s.BorderWidth.Top, s.Padding.Top, s.Height, s.Padding.Bottom, s.BorderWidth.Bottom),
	}
	return r.Resolved()
}

// ContentBox returns the padding box shrunk by the padding.
func (f *Frame) ContentBox() (b geom.Box, ok bool) {
	pb, ok := f.PaddingBox()
	if !ok {
		return geom.Box{}, false
	}
	s := f.style
	cb := f.containingBlock
	pad, ok := f.edges(
		s.LengthInPt(cb.H, s.Padding.Top),
		s.LengthInPt(cb.W, s.Padding.Right),
		s.LengthInPt(cb.H, s.Padding.Bottom),
		s.LengthInPt(cb.W, s.Padding.Left),
	)
	if !ok {
		return geom.Box{}, false
	}
	return pb.ShrunkBy(pad), true
}

// MarginBox returns the full outer rectangle starting at the position.
func (f *Frame) MarginBox() (b geom.Box, ok bool) {
	pos := f.Position()
	r := geom.Rect{
		X: pos.X,
		Y: pos.Y,
		W: f.MarginWidth(),
		H: f.MarginHeight(),
	}
	return r.Resolved()
}

// edges packs four optional sizes into geom.Edges.
func (f *Frame) edges(top, right, bottom, left geom.Opt) (geom.Edges, bool) {
	t, ok1 := top.Get()
	r, ok2 := right.Get()
	b, ok3 := bottom.Get()
	l, ok4 := left.Get()
	return geom.Edges{Top: t, Right: r, Bottom: b, Left: l}, ok1 && ok2 && ok3 && ok4
}
