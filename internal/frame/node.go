// internal/frame/node.go
package frame

// NodeKind discriminates document node types.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	OtherNode
)

// TextNodeName is the node name every text node reports.
const TextNodeName = "#text"

// IDAttr is the attribute that mirrors a frame id onto its element, so a
// document node can be mapped back to its frame.
const IDAttr = "frame_id"

// Node is the document node a frame observes. The document tree owns it.
type Node interface {
	Kind() NodeKind
	// Name is the lower-case tag name, or TextNodeName for text.
	Name() string
	Attr(key string) (string, bool)
	// SetAttr reports false when the node cannot carry attributes.
	SetAttr(key, val string) bool
	Text() string
	SetText(s string)
	// RemoveChild detaches child from this node. It is a no-op when child
	// is not a child of this node.
	RemoveChild(child Node)
}
