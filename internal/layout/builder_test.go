// internal/layout/builder_test.go
package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/folio/internal/dom"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/style"
)

func TestBuildDecorators(t *testing.T) {
	tree := buildTree(t, `<html><body>
		<div id="block">x</div>
		<span id="inline">y</span>
		<img id="pic" src="logo.png" width="10" height="10">
		<ul><li id="item">z</li></ul>
		<p id="hidden" style="display:none"><b>gone</b></p>
	</body></html>`)

	require.NotNil(t, tree.Root())
	assert.Equal(t, "html", tree.Root().Node().Name())

	assert.IsType(t, &Block{}, byID(t, tree, "block").Decorator())
	assert.IsType(t, &Inline{}, byID(t, tree, "inline").Decorator())
	assert.IsType(t, &ListItem{}, byID(t, tree, "item").Decorator())
	assert.IsType(t, &Null{}, byID(t, tree, "hidden").Decorator())

	img, ok := byID(t, tree, "pic").Decorator().(*Image)
	require.True(t, ok)
	assert.Equal(t, "logo.png", img.Src)

	for _, f := range textFrames(tree) {
		assert.IsType(t, &Text{}, f.Decorator())
	}

	// Every decorator points back at its own frame.
	require.NoError(t, tree.Walk(func(f *frame.Frame) error {
		assert.Same(t, f, f.MustDecorator().Frame())
		return nil
	}))
}

func TestBuildSkipsNonRenderedContent(t *testing.T) {
	tree := buildTree(t, `<html><head><title>t</title><style>p{color:red}</style></head>
		<body><script>var x = 1;</script><p id="p">text</p><template><p>tpl</p></template></body></html>`)

	require.NoError(t, tree.Walk(func(f *frame.Frame) error {
		switch f.Node().Name() {
		case "head", "script", "style", "template", "title":
			t.Errorf("unexpected frame for <%s>", f.Node().Name())
		}
		return nil
	}))
	assert.Equal(t, frame.ElementNode, byID(t, tree, "p").Node().Kind())
}

func TestBuildDisplayNoneKeepsNoChildren(t *testing.T) {
	tree := buildTree(t, `<html><body><div id="hidden" style="display:none"><p>a</p><p>b</p></div></body></html>`)
	hidden := byID(t, tree, "hidden")
	assert.Zero(t, hidden.Children().Len())
}

func TestBuildWhitespace(t *testing.T) {
	tree := buildTree(t, "<html><body>\n  <div>\n    <p id=\"p\">  hello \n\t world  </p>\n  </div>\n</body></html>")

	texts := textFrames(tree)
	require.Len(t, texts, 1, "blank text between blocks is dropped")
	assert.Equal(t, "hello world", texts[0].Node().Text())
	assert.Same(t, byID(t, tree, "p"), texts[0].Parent())
}

func TestBuildPreservesPre(t *testing.T) {
	tree := buildTree(t, "<html><body><pre id=\"code\">  a\n  b</pre></body></html>")
	texts := textFrames(tree)
	require.Len(t, texts, 1)
	assert.Equal(t, "  a\n  b", texts[0].Node().Text())
}

func textContents(tree *frame.Tree) []string {
	var got []string
	for _, f := range textFrames(tree) {
		got = append(got, f.Node().Text())
	}
	return got
}

func TestBuildInlineWhitespaceState(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"separators between inline runs", `<p>  one <b>two</b> three</p>`, []string{"one ", "two", " three"}},
		{"whitespace-only run between inline elements", `<p><b>Hello</b> <i>world</i></p>`, []string{"Hello", " ", "world"}},
		{"newlines after inline content collapse", "<p>Hello\n      <b>bold</b>\n      again\n    </p>", []string{"Hello ", "bold", " again"}},
		{"trailing space dropped at block end", `<div><span>x</span> </div><div>y </div>`, []string{"x", "y"}},
		{"images keep surrounding spaces", `<p>a <img src="x.png"> b</p>`, []string{"a ", " b"}},
		{"inline block starts its own line", `<p>a <span style="display:inline-block"> in </span> b</p>`, []string{"a ", "in", " b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, "<html><body>"+tt.body+"</body></html>")
			assert.Equal(t, tt.want, textContents(tree))
		})
	}
}

func TestBuildKeepsNoBreakSpaces(t *testing.T) {
	tree := buildTree(t, `<html><body><p>&nbsp;&nbsp;indented</p><p id="e">&nbsp;</p></body></html>`)
	assert.Equal(t, []string{"\u00a0\u00a0indented", "\u00a0"}, textContents(tree))
	assert.Equal(t, 1, byID(t, tree, "e").Children().Len())
}

func TestBuildListMarkers(t *testing.T) {
	tree := buildTree(t, `<html><body>
		<ol><li id="o1">a</li><li id="o2">b</li><li id="o3">c</li></ol>
		<ul style="list-style-type:square"><li id="s1">a</li></ul>
		<ul style="list-style-type:lower-alpha"><li id="a1">a</li><li id="a2">b</li></ul>
		<ul><li id="d1">a</li></ul>
	</body></html>`)

	marker := func(id string) string {
		li, ok := byID(t, tree, id).Decorator().(*ListItem)
		require.True(t, ok, "%s is not a list item", id)
		return li.Marker
	}
	assert.Equal(t, "1.", marker("o1"))
	assert.Equal(t, "2.", marker("o2"))
	assert.Equal(t, "3.", marker("o3"))
	assert.Equal(t, "-", marker("s1"))
	assert.Equal(t, "a.", marker("a1"))
	assert.Equal(t, "b.", marker("a2"))
	assert.Equal(t, "*", marker("d1"))
}

func TestMarkerFor(t *testing.T) {
	tests := []struct {
		listStyle string
		n         int
		want      string
	}{
		{"decimal", 12, "12."},
		{"lower-alpha", 1, "a."},
		{"lower-alpha", 26, "z."},
		{"lower-alpha", 27, "aa."},
		{"upper-latin", 28, "AB."},
		{"circle", 3, "o"},
		{"square", 1, "-"},
		{"disc", 1, "*"},
		{"none", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.listStyle, func(t *testing.T) {
			assert.Equal(t, tt.want, markerFor(tt.listStyle, tt.n))
		})
	}
}

func TestBuildFrameIDs(t *testing.T) {
	tree := buildTree(t, `<html><body><div id="d">x</div></body></html>`)
	d := byID(t, tree, "d")

	attr, ok := d.Node().Attr(frame.IDAttr)
	require.True(t, ok)
	assert.NotEmpty(t, attr)

	got, ok := tree.FrameFor(d.Node())
	require.True(t, ok)
	assert.Same(t, d, got)

	looked, ok := tree.Lookup(d.ID())
	require.True(t, ok)
	assert.Same(t, d, looked)
}

func TestBuildNoRoot(t *testing.T) {
	b := NewBuilder(style.NewResolver(72, 12, nil), nil)

	_, err := b.Build(&html.Node{Type: html.DocumentNode})
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = b.Build(nil)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestBuildLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	doc, err := dom.Parse(strings.NewReader(`<html><head><style>p{margin:0}</style></head><body><p>a</p></body></html>`))
	require.NoError(t, err)

	tree, err := NewBuilder(style.NewResolver(72, 12, nil), zap.New(core)).Build(doc)
	require.NoError(t, err)

	entries := logs.FilterMessage("Frame tree built.").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, tree.ID().String(), fields["run_id"])
	assert.EqualValues(t, tree.Len(), fields["frames"])
	assert.EqualValues(t, 1, fields["stylesheets"])
	assert.Equal(t, "builder", entries[0].LoggerName)
}
