// internal/inspect/inspect_test.go
package inspect

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/folio/internal/config"
	"github.com/xkilldash9x/folio/internal/dom"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/layout"
	"github.com/xkilldash9x/folio/internal/style"
)

const sample = `<html><body style="margin:0"><div style="height:10px;opacity:0.5">hi</div></body></html>`

func laidOut(t *testing.T, src string) *frame.Tree {
	t.Helper()
	cfg := config.NewDefaultConfig().Layout()
	cfg.DPI = 72
	doc, err := dom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	tree, err := layout.NewBuilder(style.NewResolver(cfg.DPI, cfg.DefaultFontSize, nil), nil).Build(doc)
	require.NoError(t, err)
	require.NoError(t, layout.NewEngine(cfg, nil).Layout(context.Background(), tree, geom.Box{Width: 200, Height: 300}))
	return tree
}

func TestSnapshot(t *testing.T) {
	tree := laidOut(t, sample)
	root := Snapshot(tree)
	require.NotNil(t, root)

	assert.Equal(t, "html", root.Node)
	assert.Equal(t, tree.Root().ID(), root.ID)
	require.Len(t, root.Children, 1)

	body := root.Children[0]
	require.Len(t, body.Children, 1)
	div := body.Children[0]
	assert.Equal(t, "div", div.Node)
	assert.Equal(t, "block", div.Display)
	assert.Equal(t, "static", div.Position)
	assert.Equal(t, 0.5, div.Opacity)
	assert.Equal(t, &Box{Width: 200, Height: 10}, div.Box)

	require.Len(t, div.Children, 1)
	assert.Equal(t, "hi", div.Children[0].Text)
	assert.Equal(t, frame.TextNodeName, div.Children[0].Node)

	assert.Nil(t, Snapshot(frame.NewTree()))
}

func TestSnapshotUnresolved(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	tree, err := layout.NewBuilder(style.NewResolver(72, 12, nil), nil).Build(doc)
	require.NoError(t, err)

	root := Snapshot(tree)
	require.NotNil(t, root)
	assert.Nil(t, root.Box)
}

func TestWriteText(t *testing.T) {
	tree := laidOut(t, sample)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, tree))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"+strconv.Itoa(tree.Root().ID())+" <html> block/static [0, 0, 200 x 10]"))
	assert.True(t, strings.HasPrefix(lines[2], "    #"), "depth indents two spaces per level")
	assert.Contains(t, lines[2], "<div> block/static [0, 0, 200 x 10] opacity=0.5")
	assert.Contains(t, lines[3], `"hi"`)

	buf.Reset()
	require.NoError(t, WriteText(&buf, frame.NewTree()))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	tree := laidOut(t, sample)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tree))

	var got Entry
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Snapshot(tree), &got)
	assert.Contains(t, buf.String(), `"border_box"`)
}

func TestWriteXML(t *testing.T) {
	tree := laidOut(t, sample)
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, tree))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	top := doc.SelectElement("frames")
	require.NotNil(t, top)
	assert.Equal(t, tree.ID().String(), top.SelectAttrValue("run", ""))

	frames := doc.FindElements("//frame")
	require.Len(t, frames, 4)
	div := frames[2]
	assert.Equal(t, "div", div.SelectAttrValue("node", ""))
	assert.Equal(t, "0.5", div.SelectAttrValue("opacity", ""))
	box := div.SelectElement("box")
	require.NotNil(t, box)
	assert.Equal(t, "200", box.SelectAttrValue("width", ""))
	assert.Equal(t, "hi", frames[3].SelectElement("text").Text())
}

func TestWriteDispatch(t *testing.T) {
	tree := laidOut(t, sample)
	for _, format := range []string{"text", "json", "xml"} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, tree, format), format)
		assert.NotEmpty(t, buf.String(), format)
	}
	assert.Error(t, Write(&bytes.Buffer{}, tree, "yaml"))
}

func TestWriteSelection(t *testing.T) {
	tree := laidOut(t, `<html><body style="margin:0"><p id="a" style="margin:0">one</p><p id="b" style="margin:0">two</p></body></html>`)
	body := tree.Root().FirstChild()
	require.NotNil(t, body)
	ps := body.Children().Slice()
	require.Len(t, ps, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteSelection(&buf, tree, ps, "json"))
	var entries []*Entry
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, ps[0].ID(), entries[0].ID)
	assert.Equal(t, "two", entries[1].Children[0].Text)

	buf.Reset()
	require.NoError(t, WriteSelection(&buf, tree, ps, "text"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"), "selected frames start unindented")
	assert.True(t, strings.HasPrefix(lines[2], "#"))

	buf.Reset()
	require.NoError(t, WriteSelection(&buf, tree, nil, "xml"))
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	assert.Empty(t, doc.FindElements("//frame"))

	assert.Error(t, WriteSelection(&buf, tree, ps, "yaml"))
}
