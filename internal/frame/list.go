// internal/frame/list.go
package frame

import "iter"

// List is a read view over the children of one frame. It owns no storage.
type List struct {
	frame *Frame
}

// All yields the children in order. The next sibling is captured before
// each yield, so the consumer may dispose or detach the frame it was
// handed. Iteration stops early if the captured sibling has since been
// disposed or moved under another parent.
func (l *List) All() iter.Seq[*Frame] {
	return func(yield func(*Frame) bool) {
		owner := l.frame
		c := owner.FirstChild()
		for c != nil {
			next := c.nextSibling
			if !yield(c) {
				return
			}
			if next != nil && (next.disposed || next.parent != owner) {
				return
			}
			c = next
		}
	}
}

// Len counts the children.
func (l *List) Len() int {
	n := 0
	for range l.All() {
		n++
	}
	return n
}

// Slice copies the children into a new slice.
func (l *List) Slice() []*Frame {
	var out []*Frame
	for c := range l.All() {
		out = append(out, c)
	}
	return out
}

// First returns the first child, or nil.
func (l *List) First() *Frame { return l.frame.FirstChild() }

// Last returns the last child, or nil.
func (l *List) Last() *Frame { return l.frame.LastChild() }
