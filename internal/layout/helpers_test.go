// internal/layout/helpers_test.go
package layout

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/folio/internal/config"
	"github.com/xkilldash9x/folio/internal/dom"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// testPage is the page every layout test uses. At 72 DPI px equals pt.
var testPage = geom.Box{Width: 500, Height: 800}

func testLayoutConfig() config.LayoutConfig {
	cfg := config.NewDefaultConfig().Layout()
	cfg.DPI = 72
	return cfg
}

// buildTree parses src and builds its frame tree.
func buildTree(t *testing.T, src string) *frame.Tree {
	t.Helper()
	cfg := testLayoutConfig()
	doc, err := dom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	tree, err := NewBuilder(style.NewResolver(cfg.DPI, cfg.DefaultFontSize, nil), zap.NewNop()).Build(doc)
	require.NoError(t, err)
	return tree
}

// layoutTree builds src and lays it out on testPage.
func layoutTree(t *testing.T, src string) (*frame.Tree, *Engine) {
	t.Helper()
	tree := buildTree(t, src)
	e := NewEngine(testLayoutConfig(), zap.NewNop())
	require.NoError(t, e.Layout(context.Background(), tree, testPage))
	return tree, e
}

// byID finds the frame whose element carries the given id attribute.
func byID(t *testing.T, tree *frame.Tree, id string) *frame.Frame {
	t.Helper()
	var found *frame.Frame
	_ = tree.Walk(func(f *frame.Frame) error {
		if v, ok := f.Node().Attr("id"); ok && v == id {
			found = f
			return frame.ErrStopWalk
		}
		return nil
	})
	require.NotNil(t, found, "no frame with id %q", id)
	return found
}

// borderBox returns the laid-out border box of the frame with the given id.
func borderBox(t *testing.T, tree *frame.Tree, id string) geom.Box {
	t.Helper()
	bb, ok := byID(t, tree, id).BorderBox()
	require.True(t, ok, "border box of %q is unresolved", id)
	return bb
}

// textFrames returns the text frames of tree in document order.
func textFrames(tree *frame.Tree) []*frame.Frame {
	var out []*frame.Frame
	_ = tree.Walk(func(f *frame.Frame) error {
		if f.IsTextNode() {
			out = append(out, f)
		}
		return nil
	})
	return out
}
