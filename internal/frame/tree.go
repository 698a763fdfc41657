// internal/frame/tree.go
package frame

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
)

// ErrStopWalk may be returned from a Walk callback to end the walk early
// without reporting an error.
var ErrStopWalk = errors.New("frame: stop walk")

// Tree is the registry for the frames of one document: id lookup, the
// root and a run identifier used to correlate logs and output.
type Tree struct {
	id     uuid.UUID
	root   *Frame
	frames map[int]*Frame
}

// NewTree returns an empty registry with a fresh run id.
func NewTree() *Tree {
	return &Tree{
		id:     uuid.New(),
		frames: make(map[int]*Frame),
	}
}

// ID returns the run identifier.
func (t *Tree) ID() uuid.UUID { return t.id }

// NewFrame creates a frame for node and registers it.
func (t *Tree) NewFrame(node Node) *Frame {
	f := New(node)
	f.tree = t
	t.frames[f.id] = f
	return f
}

// Root returns the root frame, or nil.
func (t *Tree) Root() *Frame {
	if t.root != nil && t.root.disposed {
		t.root = nil
	}
	return t.root
}

// SetRoot records f as the root of the tree.
func (t *Tree) SetRoot(f *Frame) { t.root = f }

// Lookup returns the live frame registered under id.
func (t *Tree) Lookup(id int) (*Frame, bool) {
	f, ok := t.frames[id]
	return f, ok
}

// FrameFor maps a document node back to its frame through the frame_id
// attribute. Nodes without the attribute, such as text, are not found.
func (t *Tree) FrameFor(n Node) (*Frame, bool) {
	v, ok := n.Attr(IDAttr)
	if !ok {
		return nil, false
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return nil, false
	}
	return t.Lookup(id)
}

// Len returns the number of live registered frames.
func (t *Tree) Len() int { return len(t.frames) }

// Walk visits the subtree under the root in pre-order. A callback error
// stops the walk and is returned, except ErrStopWalk, which stops it quietly.
func (t *Tree) Walk(fn func(*Frame) error) error {
	root := t.Root()
	if root == nil {
		return nil
	}
	err := walk(root, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(f *Frame, fn func(*Frame) error) error {
	if err := fn(f); err != nil {
		return err
	}
	for c := range f.Children().All() {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Dispose releases every frame under the root.
func (t *Tree) Dispose() {
	if root := t.Root(); root != nil {
		root.Dispose(true)
	}
	t.root = nil
}

func (t *Tree) rekey(old int, f *Frame) {
	if t.frames[old] == f {
		delete(t.frames, old)
	}
	t.frames[f.id] = f
}

func (t *Tree) forget(f *Frame) {
	if t.frames[f.id] == f {
		delete(t.frames, f.id)
	}
}
