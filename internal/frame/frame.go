// internal/frame/frame.go
package frame

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// idCounter hands out frame ids. Ids are unique and strictly increasing
// for the life of the process.
var idCounter atomic.Int64

// Frame is the layout box for one document node. It holds the tree links,
// the current and original style, resolved geometry, the effective opacity
// and an optional decorator.
//
// A Frame is not safe for concurrent use. A tree and everything reachable
// from it belong to one goroutine at a time.
type Frame struct {
	id   int
	node Node

	style         *style.Style
	originalStyle *style.Style

	parent      *Frame
	firstChild  *Frame
	lastChild   *Frame
	prevSibling *Frame
	nextSibling *Frame
	children    *List

	containingBlock geom.Rect
	position        geom.Point
	opacity         float64

	decorator Decorator
	cache     map[predicate]bool
	tree      *Tree
	disposed  bool
}

// New creates a frame observing node. Geometry starts unresolved and the
// opacity at 1. The style must be supplied with SetStyle before any
// geometry or predicate query.
func New(node Node) *Frame {
	f := &Frame{
		node:    node,
		opacity: 1,
		cache:   make(map[predicate]bool),
	}
	f.SetID(int(idCounter.Add(1) - 1))
	return f
}

// -- Identity --

// ID returns the frame id.
func (f *Frame) ID() int {
	f.live()
	return f.id
}

// SetID replaces the id and mirrors it onto the node's frame_id attribute.
// Nodes that cannot carry attributes are left untouched.
func (f *Frame) SetID(id int) {
	f.live()
	old := f.id
	f.id = id
	if f.node != nil && f.node.Kind() == ElementNode {
		f.node.SetAttr(IDAttr, strconv.Itoa(id))
	}
	if f.tree != nil {
		f.tree.rekey(old, f)
	}
}

// Node returns the observed document node.
func (f *Frame) Node() Node {
	f.live()
	return f.node
}

func (f *Frame) String() string {
	if f.disposed {
		return "frame(disposed)"
	}
	name := "?"
	if f.node != nil {
		name = f.node.Name()
	}
	return fmt.Sprintf("frame#%d<%s>", f.id, name)
}

// -- Style --

// Style returns the current style, or nil before SetStyle.
func (f *Frame) Style() *style.Style {
	f.live()
	return f.style
}

// OriginalStyle returns the snapshot taken on the first SetStyle.
func (f *Frame) OriginalStyle() *style.Style {
	f.live()
	return f.originalStyle
}

// SetStyle makes s the current style. The first call also snapshots a deep
// copy of s as the original style. The frame takes ownership of s.
func (f *Frame) SetStyle(s *style.Style) {
	f.live()
	if f.originalStyle == nil {
		f.originalStyle = s.Clone()
	}
	f.style = s
}

// mustStyle returns the current style or panics when none was set.
func (f *Frame) mustStyle() *style.Style {
	f.live()
	if f.style == nil {
		panic(ErrNoStyle)
	}
	return f.style
}

// Reset returns the frame to its pre-layout state: geometry unresolved,
// the current style replaced with a fresh copy of the original and the
// predicate cache cleared.
func (f *Frame) Reset() {
	f.live()
	f.position = geom.Point{}
	f.containingBlock = geom.Rect{}
	if f.originalStyle != nil {
		if f.style != nil && f.style != f.originalStyle {
			f.style.Dispose()
		}
		f.style = f.originalStyle.Clone()
	}
	clear(f.cache)
}

// -- Geometry state --

// ContainingBlock returns the rectangle relative lengths resolve against.
func (f *Frame) ContainingBlock() geom.Rect {
	f.live()
	return f.containingBlock
}

// SetContainingBlock overwrites each field of the containing block for
// which r carries a resolved value. Unresolved fields keep their prior value.
func (f *Frame) SetContainingBlock(r geom.Rect) {
	f.live()
	cb := &f.containingBlock
	if r.X.Valid() {
		cb.X = r.X
	}
	if r.Y.Valid() {
		cb.Y = r.Y
	}
	if r.W.Valid() {
		cb.W = r.W
	}
	if r.H.Valid() {
		cb.H = r.H
	}
}

// Position returns the top-left corner of the margin box.
func (f *Frame) Position() geom.Point {
	f.live()
	return f.position
}

// SetPosition overwrites each coordinate for which p carries a resolved value.
func (f *Frame) SetPosition(p geom.Point) {
	f.live()
	if p.X.Valid() {
		f.position.X = p.X
	}
	if p.Y.Valid() {
		f.position.Y = p.Y
	}
}

// Opacity returns the effective opacity.
func (f *Frame) Opacity() float64 {
	f.live()
	return f.opacity
}

// SetOpacity sets the effective opacity to the parent's effective opacity
// (1 at the root) multiplied by own. own is clamped to [0, 1]; NaN counts
// as fully opaque.
func (f *Frame) SetOpacity(own float64) {
	f.live()
	if math.IsNaN(own) {
		own = 1
	}
	own = min(max(own, 0), 1)
	base := 1.0
	if f.parent != nil {
		base = f.parent.opacity
	}
	f.opacity = base * own
}

// -- Lifecycle --

// Dispose releases the frame. With recursive set the whole subtree goes
// first; otherwise the children are orphaned. The frame is unlinked from
// its parent and siblings, its node is removed from the parent's node,
// and both styles are released. Any later use of the frame panics.
func (f *Frame) Dispose(recursive bool) {
	f.live()

	if recursive {
		for f.firstChild != nil {
			f.firstChild.Dispose(true)
		}
	} else {
		for c := f.firstChild; c != nil; {
			next := c.nextSibling
			c.parent, c.prevSibling, c.nextSibling = nil, nil, nil
			c = next
		}
		f.firstChild, f.lastChild = nil, nil
	}

	parent := f.parent
	f.unlink()
	if parent != nil && parent.node != nil && f.node != nil {
		parent.node.RemoveChild(f.node)
	}

	if f.style != nil && f.style != f.originalStyle {
		f.style.Dispose()
	}
	f.originalStyle.Dispose()
	f.style, f.originalStyle = nil, nil

	if f.tree != nil {
		f.tree.forget(f)
	}
	f.decorator = nil
	f.children = nil
	f.cache = nil
	f.disposed = true
}

// Disposed reports whether Dispose has run. It is the only method that is
// safe to call on a disposed frame.
func (f *Frame) Disposed() bool { return f.disposed }

func (f *Frame) live() {
	if f.disposed {
		panic(ErrDisposed)
	}
}
