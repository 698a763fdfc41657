// internal/inspect/inspect.go
package inspect

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/folio/internal/frame"
)

// Box is a resolved border box.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Entry describes one frame and its subtree.
type Entry struct {
	ID       int      `json:"id"`
	Node     string   `json:"node"`
	Display  string   `json:"display"`
	Position string   `json:"position"`
	Box      *Box     `json:"border_box,omitempty"`
	Opacity  float64  `json:"opacity"`
	Text     string   `json:"text,omitempty"`
	Children []*Entry `json:"children,omitempty"`
}

// Snapshot captures tree as nested entries. It returns nil for an empty tree.
func Snapshot(tree *frame.Tree) *Entry {
	root := tree.Root()
	if root == nil {
		return nil
	}
	return entryFor(root)
}

func roots(tree *frame.Tree) []*Entry {
	if e := Snapshot(tree); e != nil {
		return []*Entry{e}
	}
	return nil
}

func entryFor(f *frame.Frame) *Entry {
	s := f.Style()
	e := &Entry{
		ID:       f.ID(),
		Node:     f.Node().Name(),
		Display:  s.Display,
		Position: s.Position,
		Opacity:  f.Opacity(),
	}
	if f.IsTextNode() {
		e.Text = f.Node().Text()
	}
	if bb, ok := f.BorderBox(); ok {
		e.Box = &Box{X: bb.X, Y: bb.Y, Width: bb.Width, Height: bb.Height}
	}
	for c := range f.Children().All() {
		e.Children = append(e.Children, entryFor(c))
	}
	return e
}

// Write dumps tree in one of the text, json or xml formats.
func Write(w io.Writer, tree *frame.Tree, format string) error {
	switch format {
	case "text":
		return WriteText(w, tree)
	case "json":
		return WriteJSON(w, tree)
	case "xml":
		return WriteXML(w, tree)
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}

// WriteSelection dumps the subtrees of the given frames of tree. JSON
// output is an array with one entry per frame.
func WriteSelection(w io.Writer, tree *frame.Tree, frames []*frame.Frame, format string) error {
	entries := make([]*Entry, 0, len(frames))
	for _, f := range frames {
		entries = append(entries, entryFor(f))
	}
	switch format {
	case "text":
		return writeText(w, entries)
	case "json":
		return writeJSON(w, entries)
	case "xml":
		return writeXML(w, tree.ID().String(), entries)
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}

// -- Text --

// WriteText writes one indented line per frame.
func WriteText(w io.Writer, tree *frame.Tree) error {
	return writeText(w, roots(tree))
}

func writeText(w io.Writer, entries []*Entry) error {
	var sb strings.Builder
	for _, e := range entries {
		writeLine(&sb, e, 0)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeLine(sb *strings.Builder, e *Entry, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "#%d <%s> %s/%s", e.ID, e.Node, e.Display, e.Position)
	if e.Box != nil {
		fmt.Fprintf(sb, " [%g, %g, %g x %g]", e.Box.X, e.Box.Y, e.Box.Width, e.Box.Height)
	} else {
		sb.WriteString(" [unresolved]")
	}
	if e.Opacity != 1 {
		fmt.Fprintf(sb, " opacity=%g", e.Opacity)
	}
	if e.Text != "" {
		fmt.Fprintf(sb, " %q", e.Text)
	}
	sb.WriteByte('\n')
	for _, c := range e.Children {
		writeLine(sb, c, depth+1)
	}
}

// -- JSON --

// WriteJSON writes the snapshot as indented JSON, or null for an empty tree.
func WriteJSON(w io.Writer, tree *frame.Tree) error {
	return writeJSON(w, Snapshot(tree))
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode frame tree: %w", err)
	}
	return nil
}

// -- XML --

// WriteXML writes the snapshot as a <frames> document of nested <frame>
// elements.
func WriteXML(w io.Writer, tree *frame.Tree) error {
	return writeXML(w, tree.ID().String(), roots(tree))
}

func writeXML(w io.Writer, runID string, entries []*Entry) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	top := doc.CreateElement("frames")
	top.CreateAttr("run", runID)
	for _, e := range entries {
		appendElement(top, e)
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write frame tree: %w", err)
	}
	return nil
}

func appendElement(parent *etree.Element, e *Entry) {
	el := parent.CreateElement("frame")
	el.CreateAttr("id", strconv.Itoa(e.ID))
	el.CreateAttr("node", e.Node)
	el.CreateAttr("display", e.Display)
	el.CreateAttr("position", e.Position)
	el.CreateAttr("opacity", formatFloat(e.Opacity))
	if e.Box != nil {
		box := el.CreateElement("box")
		box.CreateAttr("x", formatFloat(e.Box.X))
		box.CreateAttr("y", formatFloat(e.Box.Y))
		box.CreateAttr("width", formatFloat(e.Box.Width))
		box.CreateAttr("height", formatFloat(e.Box.Height))
	}
	if e.Text != "" {
		el.CreateElement("text").SetText(e.Text)
	}
	for _, c := range e.Children {
		appendElement(el, c)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
