// internal/frame/links.go
package frame

import "fmt"

// -- Navigation --

// Parent returns the parent frame, or nil at a root.
func (f *Frame) Parent() *Frame {
	f.live()
	return f.parent
}

// FirstChild returns the first child, or nil.
func (f *Frame) FirstChild() *Frame {
	f.live()
	return f.firstChild
}

// LastChild returns the last child, or nil.
func (f *Frame) LastChild() *Frame {
	f.live()
	return f.lastChild
}

// PrevSibling returns the previous sibling, or nil.
func (f *Frame) PrevSibling() *Frame {
	f.live()
	return f.prevSibling
}

// NextSibling returns the next sibling, or nil.
func (f *Frame) NextSibling() *Frame {
	f.live()
	return f.nextSibling
}

// Children returns the list view over the frame's children. The same view
// is returned on every call.
func (f *Frame) Children() *List {
	f.live()
	if f.children == nil {
		f.children = &List{frame: f}
	}
	return f.children
}

// -- Mutation --

// AppendChild links child as the last child of f.
func (f *Frame) AppendChild(child *Frame) error {
	if err := f.checkInsert(child); err != nil {
		return err
	}
	child.unlink()
	child.parent = f
	child.prevSibling = f.lastChild
	if f.lastChild != nil {
		f.lastChild.nextSibling = child
	} else {
		f.firstChild = child
	}
	f.lastChild = child
	return nil
}

// PrependChild links child as the first child of f.
func (f *Frame) PrependChild(child *Frame) error {
	if err := f.checkInsert(child); err != nil {
		return err
	}
	child.unlink()
	child.parent = f
	child.nextSibling = f.firstChild
	if f.firstChild != nil {
		f.firstChild.prevSibling = child
	} else {
		f.lastChild = child
	}
	f.firstChild = child
	return nil
}

// InsertBefore links child immediately before ref, which must be a child of f.
func (f *Frame) InsertBefore(child, ref *Frame) error {
	if err := f.checkRef(ref); err != nil {
		return err
	}
	if child == ref {
		return nil
	}
	if err := f.checkInsert(child); err != nil {
		return err
	}
	child.unlink()
	child.parent = f
	child.nextSibling = ref
	child.prevSibling = ref.prevSibling
	if ref.prevSibling != nil {
		ref.prevSibling.nextSibling = child
	} else {
		f.firstChild = child
	}
	ref.prevSibling = child
	return nil
}

// InsertAfter links child immediately after ref, which must be a child of f.
func (f *Frame) InsertAfter(child, ref *Frame) error {
	if err := f.checkRef(ref); err != nil {
		return err
	}
	if child == ref {
		return nil
	}
	if err := f.checkInsert(child); err != nil {
		return err
	}
	child.unlink()
	child.parent = f
	child.prevSibling = ref
	child.nextSibling = ref.nextSibling
	if ref.nextSibling != nil {
		ref.nextSibling.prevSibling = child
	} else {
		f.lastChild = child
	}
	ref.nextSibling = child
	return nil
}

// RemoveChild unlinks child from f. The child stays alive as a detached root.
func (f *Frame) RemoveChild(child *Frame) error {
	if err := f.checkRef(child); err != nil {
		return err
	}
	child.unlink()
	return nil
}

func (f *Frame) checkRef(ref *Frame) error {
	if f.disposed || ref == nil || ref.disposed {
		return ErrDisposed
	}
	if ref.parent != f {
		return ErrNotChild
	}
	return nil
}

func (f *Frame) checkInsert(child *Frame) error {
	if f.disposed || child == nil || child.disposed {
		return ErrDisposed
	}
	for a := f; a != nil; a = a.parent {
		if a == child {
			return ErrCycle
		}
	}
	return nil
}

// unlink detaches f from its parent and siblings, repairing their links.
func (f *Frame) unlink() {
	if f.prevSibling != nil {
		f.prevSibling.nextSibling = f.nextSibling
	}
	if f.nextSibling != nil {
		f.nextSibling.prevSibling = f.prevSibling
	}
	if p := f.parent; p != nil {
		if p.firstChild == f {
			p.firstChild = f.nextSibling
		}
		if p.lastChild == f {
			p.lastChild = f.prevSibling
		}
	}
	f.parent, f.prevSibling, f.nextSibling = nil, nil, nil
}

// -- Validation --

// Validate walks the subtree rooted at f and reports the first broken link:
// asymmetric siblings, a child whose parent is wrong, or first/last
// pointers that disagree with the sibling chain.
func (f *Frame) Validate() error {
	f.live()
	if f.firstChild == nil || f.lastChild == nil {
		if f.firstChild != f.lastChild {
			return fmt.Errorf("%w: %s has only one of first/last child", ErrBrokenLink, f)
		}
		return nil
	}
	if f.firstChild.prevSibling != nil {
		return fmt.Errorf("%w: first child of %s has a previous sibling", ErrBrokenLink, f)
	}

	var last *Frame
	for c := f.firstChild; c != nil; c = c.nextSibling {
		if c.disposed {
			return fmt.Errorf("%w: %s links a disposed child", ErrBrokenLink, f)
		}
		if c.parent != f {
			return fmt.Errorf("%w: %s is linked under %s but names another parent", ErrBrokenLink, c, f)
		}
		if c.nextSibling != nil && c.nextSibling.prevSibling != c {
			return fmt.Errorf("%w: %s and its next sibling disagree", ErrBrokenLink, c)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		last = c
	}
	if last != f.lastChild {
		return fmt.Errorf("%w: last child of %s is not the end of its sibling chain", ErrBrokenLink, f)
	}
	return nil
}
