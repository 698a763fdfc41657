// internal/frame/helpers_test.go
package frame_test

import (
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/style"
)

// fakeNode is an in-memory frame.Node that records removals.
type fakeNode struct {
	kind    frame.NodeKind
	name    string
	attrs   map[string]string
	text    string
	removed []frame.Node
}

func elem(name string) *fakeNode {
	return &fakeNode{kind: frame.ElementNode, name: name, attrs: map[string]string{}}
}

func text(s string) *fakeNode {
	return &fakeNode{kind: frame.TextNode, name: frame.TextNodeName, text: s}
}

func (n *fakeNode) Kind() frame.NodeKind { return n.kind }
func (n *fakeNode) Name() string { return n.name }

func (n *fakeNode) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

func (n *fakeNode) SetAttr(key, val string) bool {
	if n.kind != frame.ElementNode {
		return false
	}
	n.attrs[key] = val
	return true
}

func (n *fakeNode) Text() string { return n.text }
func (n *fakeNode) SetText(s string) { n.text = s }
func (n *fakeNode) RemoveChild(c frame.Node) { n.removed = append(n.removed, c) }

// styled creates a frame over a new element and gives it an initial style.
func styled(name string, mutate ...func(*style.Style)) *frame.Frame {
	f := frame.New(elem(name))
	s := style.New()
	for _, m := range mutate {
		m(s)
	}
	f.SetStyle(s)
	return f
}

// family builds parent with n styled children appended in order.
func family(n int) (*frame.Frame, []*frame.Frame) {
	parent := styled("div")
	kids := make([]*frame.Frame, n)
	for i := range kids {
		kids[i] = styled("p")
		if err := parent.AppendChild(kids[i]); err != nil {
			panic(err)
		}
	}
	return parent, kids
}
