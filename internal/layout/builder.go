// internal/layout/builder.go
package layout

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/folio/internal/dom"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/style"
)

// ErrNoRoot is returned when a document has no root element.
var ErrNoRoot = errors.New("layout: document has no root element")

// skippedElements never produce frames.
var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
}

// Builder turns a parsed document into a decorated frame tree.
type Builder struct {
	resolver *style.Resolver
	logger   *zap.Logger
}

// NewBuilder creates a builder that styles frames with resolver.
func NewBuilder(resolver *style.Resolver, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{resolver: resolver, logger: logger.Named("builder")}
}

// Build creates the frame tree for doc. Stylesheets embedded in the
// document are added to the resolver first.
func (b *Builder) Build(doc *html.Node) (*frame.Tree, error) {
	root := rootElement(doc)
	if root == nil {
		return nil, ErrNoRoot
	}
	sheets := b.resolver.AddDocumentSheets(doc)

	tree := frame.NewTree()
	fl := &flow{ws: frame.WSSpace}
	rf := b.build(tree, root, nil, fl)
	b.endLine(fl)
	tree.SetRoot(rf)
	if err := rf.Validate(); err != nil {
		return nil, fmt.Errorf("frame tree is inconsistent: %w", err)
	}

	b.logger.Debug("Frame tree built.",
		zap.Stringer("run_id", tree.ID()),
		zap.Int("frames", tree.Len()),
		zap.Int("stylesheets", sheets))
	return tree, nil
}

// flow carries the whitespace state through one document in tree order.
type flow struct {
	ws frame.WSState
	// last is the most recent collapsible text frame on the current line.
	last *frame.Frame
}

// endLine closes the current line at a block boundary. A trailing space on
// the line's last text is dropped, and so is the frame if nothing is left.
func (b *Builder) endLine(fl *flow) {
	last := fl.last
	fl.ws, fl.last = frame.WSSpace, nil
	if last == nil || last.Disposed() {
		return
	}
	if !last.TrimTrailingSpace() {
		last.Dispose(false)
	}
}

// build creates the frame for n and its subtree. It returns nil for nodes
// that produce no frame.
func (b *Builder) build(tree *frame.Tree, n *html.Node, parent *style.Style, fl *flow) *frame.Frame {
	switch n.Type {
	case html.TextNode:
		return b.buildText(tree, n, parent, fl)
	case html.ElementNode:
	default:
		return nil
	}
	if skippedElements[n.Data] {
		return nil
	}

	f := tree.NewFrame(dom.Wrap(n))
	s := b.resolver.Resolve(n, parent)
	f.SetStyle(s)

	if s.Display == "none" {
		f.SetDecorator(&Null{frame: f})
		return f
	}

	// Inline blocks sit on the surrounding line but start their own.
	atomic := s.Display == "inline-block" || s.Display == "inline-table"
	blockLevel := !atomic && (f.IsBlock() || f.IsTable())
	inner := fl
	if atomic {
		inner = &flow{ws: frame.WSSpace}
	}
	if blockLevel {
		b.endLine(fl)
	}

	items := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cf := b.build(tree, c, s, inner)
		if cf == nil {
			continue
		}
		if err := f.AppendChild(cf); err != nil {
			// Unreachable for freshly built frames.
			panic(err)
		}
		if cf.Style().Display == "list-item" {
			items++
			if li, ok := cf.Decorator().(*ListItem); ok {
				li.Marker = markerFor(cf.Style().ListStyle, items)
			}
		}
	}

	switch {
	case atomic:
		b.endLine(inner)
		fl.ws, fl.last = frame.WSText, nil
	case blockLevel:
		b.endLine(fl)
	}
	f.SetDecorator(decoratorFor(f, n, s))
	return f
}

// buildText creates a text frame. Whitespace between inline content is
// kept as a single space; at the start of a line it produces no frame.
func (b *Builder) buildText(tree *frame.Tree, n *html.Node, parent *style.Style, fl *flow) *frame.Frame {
	if parent == nil {
		return nil
	}
	f := tree.NewFrame(dom.Wrap(n))
	f.SetStyle(b.resolver.Resolve(n, parent))
	fl.ws = f.TrimWhitespace(fl.ws)
	if f.Node().Text() == "" {
		f.Dispose(false)
		return nil
	}
	fl.last = f
	if f.IsPre() {
		fl.last = nil
	}
	f.SetDecorator(&Text{frame: f})
	return f
}

// decoratorFor picks the layout behaviour from the element and its display.
func decoratorFor(f *frame.Frame, n *html.Node, s *style.Style) frame.Decorator {
	switch {
	case n.Data == "img":
		src, _ := dom.Wrap(n).Attr("src")
		return &Image{frame: f, Src: src}
	case s.Display == "list-item":
		return &ListItem{Block: Block{frame: f}}
	case s.Display == "inline":
		return &Inline{frame: f}
	default:
		return &Block{frame: f}
	}
}

// markerFor renders the list marker of the n-th item (1-based).
func markerFor(listStyle string, n int) string {
	switch listStyle {
	case "none":
		return ""
	case "decimal":
		return strconv.Itoa(n) + "."
	case "lower-alpha", "lower-latin":
		return alpha(n, 'a') + "."
	case "upper-alpha", "upper-latin":
		return alpha(n, 'A') + "."
	case "circle":
		return "o"
	case "square":
		return "-"
	default:
		return "*"
	}
}

func alpha(n int, base rune) string {
	var out []rune
	for n > 0 {
		n--
		out = append([]rune{base + rune(n%26)}, out...)
		n /= 26
	}
	return string(out)
}

func rootElement(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
