// internal/frame/predicates.go
package frame

import "github.com/xkilldash9x/folio/internal/style"

type predicate uint8

const (
	predTextNode predicate = iota
	predPositioned
	predAbsolute
	predBlock
	predInline
	predTable
	predFloating
	predInFlow
	predPre
)

// memo returns the cached answer for p, computing it on first use. The
// cache lives until Reset, so style changes made during layout are not
// observed by a predicate that has already been asked.
func (f *Frame) memo(p predicate, compute func() bool) bool {
	f.live()
	if v, ok := f.cache[p]; ok {
		return v
	}
	v := compute()
	f.cache[p] = v
	return v
}

// IsTextNode reports whether the frame observes a text node.
func (f *Frame) IsTextNode() bool {
	return f.memo(predTextNode, func() bool {
		return f.node != nil && f.node.Name() == TextNodeName
	})
}

// IsPositioned reports position relative, absolute or fixed.
func (f *Frame) IsPositioned() bool {
	return f.memo(predPositioned, func() bool {
		return style.IsIn(style.PositionedTypes, f.mustStyle().Position)
	})
}

// IsAbsolute reports position absolute or fixed.
func (f *Frame) IsAbsolute() bool {
	return f.memo(predAbsolute, func() bool {
		p := f.mustStyle().Position
		return p == "absolute" || p == "fixed"
	})
}

// IsBlock reports a block-level display type.
func (f *Frame) IsBlock() bool {
	return f.memo(predBlock, func() bool {
		return style.IsIn(style.BlockTypes, f.mustStyle().Display)
	})
}

// IsInline reports display inline.
func (f *Frame) IsInline() bool {
	return f.memo(predInline, func() bool {
		return style.IsIn(style.InlineTypes, f.mustStyle().Display)
	})
}

// IsTable reports any table display type.
func (f *Frame) IsTable() bool {
	return f.memo(predTable, func() bool {
		return style.IsIn(style.TableTypes, f.mustStyle().Display)
	})
}

// IsFloating reports float other than none.
func (f *Frame) IsFloating() bool {
	return f.memo(predFloating, func() bool {
		return f.mustStyle().Float != "none"
	})
}

// IsInFlow reports a frame that is neither floating nor absolutely positioned.
func (f *Frame) IsInFlow() bool {
	return f.memo(predInFlow, func() bool {
		return !f.IsFloating() && !f.IsAbsolute()
	})
}

// IsPre reports a white-space value that preserves spaces.
func (f *Frame) IsPre() bool {
	return f.memo(predPre, func() bool {
		return style.IsIn(style.PreTypes, f.mustStyle().WhiteSpace)
	})
}
