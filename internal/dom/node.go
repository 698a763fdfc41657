// internal/dom/node.go
package dom

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/folio/internal/frame"
)

// Node adapts an *html.Node to the frame.Node interface. Wrappers are cheap
// and several may exist for one underlying node; identity is the html node.
type Node struct {
	n *html.Node
}

var _ frame.Node = (*Node)(nil)

// Wrap returns the adapter for n.
func Wrap(n *html.Node) *Node {
	return &Node{n: n}
}

// HTML returns the underlying parser node.
func (d *Node) HTML() *html.Node { return d.n }

func (d *Node) Kind() frame.NodeKind {
	switch d.n.Type {
	case html.ElementNode:
		return frame.ElementNode
	case html.TextNode:
		return frame.TextNode
	default:
		return frame.OtherNode
	}
}

func (d *Node) Name() string {
	switch d.n.Type {
	case html.ElementNode:
		return strings.ToLower(d.n.Data)
	case html.TextNode:
		return frame.TextNodeName
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return "#doctype"
	default:
		return ""
	}
}

func (d *Node) Attr(key string) (string, bool) {
	for _, a := range d.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute. Only elements carry attributes.
func (d *Node) SetAttr(key, val string) bool {
	if d.n.Type != html.ElementNode {
		return false
	}
	for i, a := range d.n.Attr {
		if a.Namespace == "" && a.Key == key {
			d.n.Attr[i].Val = val
			return true
		}
	}
	d.n.Attr = append(d.n.Attr, html.Attribute{Key: key, Val: val})
	return true
}

// Text returns the data of a text node, or the concatenated text of an
// element's descendants.
func (d *Node) Text() string {
	if d.n.Type == html.TextNode {
		return d.n.Data
	}
	return htmlquery.InnerText(d.n)
}

// SetText replaces the data of a text node. On an element it replaces all
// children with one text node.
func (d *Node) SetText(s string) {
	if d.n.Type == html.TextNode {
		d.n.Data = s
		return
	}
	for c := d.n.FirstChild; c != nil; c = d.n.FirstChild {
		d.n.RemoveChild(c)
	}
	d.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// RemoveChild detaches child when it is a direct child of d.
func (d *Node) RemoveChild(child frame.Node) {
	c, ok := child.(*Node)
	if !ok || c.n == nil || c.n.Parent != d.n {
		return
	}
	d.n.RemoveChild(c.n)
}

func (d *Node) String() string {
	return d.Name()
}
