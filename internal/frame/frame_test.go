// internal/frame/frame_test.go
package frame_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

func TestNewAssignsIncreasingIDs(t *testing.T) {
	n1, n2 := elem("div"), elem("div")
	a := frame.New(n1)
	b := frame.New(n2)

	assert.Greater(t, b.ID(), a.ID())
	assert.Equal(t, map[string]string{frame.IDAttr: strconv.Itoa(a.ID())}, n1.attrs)

	assert.False(t, a.Position().X.Valid())
	assert.False(t, a.Position().Y.Valid())
	assert.Equal(t, geom.Rect{}, a.ContainingBlock())
	assert.Equal(t, 1.0, a.Opacity())
	assert.Nil(t, a.Style())
	assert.Nil(t, a.Decorator())
}

func TestSetID(t *testing.T) {
	n := elem("p")
	f := frame.New(n)
	f.SetID(42)
	assert.Equal(t, 42, f.ID())
	v, ok := n.Attr(frame.IDAttr)
	require.True(t, ok)
	assert.Equal(t, "42", v)

	tn := text("hello")
	tf := frame.New(tn)
	tf.SetID(7)
	assert.Equal(t, 7, tf.ID(), "text frames keep the id even though the node has no attributes")
	_, ok = tn.Attr(frame.IDAttr)
	assert.False(t, ok)
}

func TestSetStyleSnapshotsOriginal(t *testing.T) {
	f := frame.New(elem("div"))
	first := style.New()
	first.Width = style.Pt(100)
	f.SetStyle(first)

	require.NotNil(t, f.OriginalStyle())
	assert.NotSame(t, first, f.OriginalStyle())
	assert.Same(t, first, f.Style())

	first.Width = style.Pt(250)
	assert.Equal(t, style.Pt(100), f.OriginalStyle().Width, "original is a deep copy")

	second := style.New()
	second.Width = style.Pt(5)
	f.SetStyle(second)
	assert.Same(t, second, f.Style())
	assert.Equal(t, style.Pt(100), f.OriginalStyle().Width, "only the first SetStyle snapshots")
}

func TestReset(t *testing.T) {
	f := styled("div")
	f.SetContainingBlock(geom.RectOf(geom.Box{Width: 200, Height: 300}))
	f.SetPosition(geom.Point{X: geom.Some(1), Y: geom.Some(2)})

	used := f.Style()
	used.Width = style.Pt(99)
	assert.False(t, f.IsPositioned())
	used.Position = "relative"
	assert.False(t, f.IsPositioned(), "predicates are memoised until Reset")

	f.Reset()

	assert.Equal(t, geom.Point{}, f.Position())
	assert.Equal(t, geom.Rect{}, f.ContainingBlock())
	assert.NotSame(t, f.OriginalStyle(), f.Style())
	if diff := cmp.Diff(*f.OriginalStyle(), *f.Style(), cmp.AllowUnexported(style.Style{})); diff != "" {
		t.Errorf("style after reset differs from original (-want +got):\n%s", diff)
	}
	assert.True(t, used.Disposed(), "the discarded style is released")

	f.Style().Position = "relative"
	assert.True(t, f.IsPositioned(), "Reset clears the predicate cache")
}

func TestSetContainingBlockOverwritesOnlyResolvedFields(t *testing.T) {
	f := frame.New(elem("div"))
	f.SetContainingBlock(geom.RectOf(geom.Box{X: 1, Y: 2, Width: 3, Height: 4}))
	f.SetContainingBlock(geom.Rect{W: geom.Some(50)})

	want := geom.RectOf(geom.Box{X: 1, Y: 2, Width: 50, Height: 4})
	assert.Equal(t, want, f.ContainingBlock())

	f.SetPosition(geom.Point{X: geom.Some(10)})
	f.SetPosition(geom.Point{Y: geom.Some(20)})
	assert.Equal(t, geom.Point{X: geom.Some(10), Y: geom.Some(20)}, f.Position())
}

func TestSetOpacity(t *testing.T) {
	root, kids := family(1)
	child := kids[0]

	root.SetOpacity(0.5)
	child.SetOpacity(0.5)
	assert.Equal(t, 0.5, root.Opacity())
	assert.Equal(t, 0.25, child.Opacity())
	assert.LessOrEqual(t, child.Opacity(), root.Opacity())

	child.SetOpacity(1.5)
	assert.Equal(t, 0.5, child.Opacity(), "own opacity is clamped to 1")

	leaf := styled("span")
	require.NoError(t, child.AppendChild(leaf))
	root.SetOpacity(1)
	child.SetOpacity(0.5)
	leaf.SetOpacity(0.5)
	assert.Equal(t, 0.25, leaf.Opacity())

	orphan := styled("div")
	orphan.SetOpacity(0.3)
	assert.Equal(t, 0.3, orphan.Opacity())
	orphan.SetOpacity(-2)
	assert.Equal(t, 0.0, orphan.Opacity())
	orphan.SetOpacity(math.NaN())
	assert.Equal(t, 1.0, orphan.Opacity(), "NaN is treated as opaque")
	orphan.SetOpacity(math.Inf(1))
	assert.Equal(t, 1.0, orphan.Opacity())
}

func TestDisposeRecursive(t *testing.T) {
	root, kids := family(3)
	mid := kids[1]
	grand := styled("span")
	require.NoError(t, mid.AppendChild(grand))
	midStyle := mid.Style()
	grandNode := grand.Node()
	midNode := mid.Node()

	mid.Dispose(true)

	assert.True(t, mid.Disposed())
	assert.True(t, grand.Disposed())
	assert.True(t, midStyle.Disposed())

	assert.Same(t, kids[2], kids[0].NextSibling())
	assert.Same(t, kids[0], kids[2].PrevSibling())
	assert.Equal(t, 2, root.Children().Len())
	require.NoError(t, root.Validate())

	assert.Equal(t, []frame.Node{midNode}, root.Node().(*fakeNode).removed)
	assert.Equal(t, []frame.Node{grandNode}, midNode.(*fakeNode).removed)

	assert.PanicsWithValue(t, frame.ErrDisposed, func() { mid.ID() })
	assert.PanicsWithValue(t, frame.ErrDisposed, func() { grand.Parent() })
}

func TestDisposeEndsUpdateParent(t *testing.T) {
	root, kids := family(3)

	kids[0].Dispose(true)
	assert.Same(t, kids[1], root.FirstChild())
	assert.Nil(t, kids[1].PrevSibling())

	kids[2].Dispose(true)
	assert.Same(t, kids[1], root.LastChild())
	assert.Nil(t, kids[1].NextSibling())

	kids[1].Dispose(true)
	assert.Nil(t, root.FirstChild())
	assert.Nil(t, root.LastChild())
	require.NoError(t, root.Validate())
}

func TestDisposeNonRecursiveOrphansChildren(t *testing.T) {
	root, kids := family(2)
	root.Dispose(false)

	for _, k := range kids {
		assert.False(t, k.Disposed())
		assert.Nil(t, k.Parent())
		assert.Nil(t, k.PrevSibling())
		assert.Nil(t, k.NextSibling())
	}
}

func TestDecoratorSlot(t *testing.T) {
	f := styled("div")
	assert.PanicsWithValue(t, frame.ErrNoDecorator, func() { f.MustDecorator() })

	d := &stubDecorator{f: f}
	f.SetDecorator(d)
	assert.Same(t, d, f.MustDecorator())
	assert.Same(t, f, f.Decorator().Frame())
}

type stubDecorator struct{ f *frame.Frame }

func (d *stubDecorator) Frame() *frame.Frame { return d.f }

func TestStyleRequired(t *testing.T) {
	f := frame.New(elem("div"))
	assert.PanicsWithValue(t, frame.ErrNoStyle, func() { f.IsBlock() })
	assert.PanicsWithValue(t, frame.ErrNoStyle, func() { f.MarginHeight() })
}
