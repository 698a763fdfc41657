// internal/frame/whitespace.go
package frame

import (
	"regexp"
	"strings"
)

// WSState tracks whether the text seen so far in the current line ended in
// collapsible space. Tree construction threads it from frame to frame.
type WSState int

const (
	// WSSpace means leading whitespace of the next text is insignificant.
	WSSpace WSState = iota
	// WSText means text has been emitted since the last line start.
	WSText
)

func (s WSState) String() string {
	if s == WSText {
		return "text"
	}
	return "space"
}

var wsRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// collapsible is the whitespace that collapses outside pre. The no-break
// space is not part of it.
const collapsible = " \t\r\n\f"

// TrimWhitespace applies whitespace collapsing to a text frame given the
// incoming state and returns the outgoing state. Frames whose white-space
// preserves spaces are left alone. Every whitespace run becomes one space;
// in WSSpace state the leading space is dropped as well. The outgoing state
// is WSSpace when the text ends in a space, so the next run's leading space
// is dropped, and WSText otherwise.
func (f *Frame) TrimWhitespace(state WSState) WSState {
	if f.IsPre() {
		return state
	}
	if !f.IsTextNode() {
		return state
	}
	text := f.node.Text()
	if text == "" {
		return state
	}
	collapsed := wsRun.ReplaceAllString(text, " ")
	if state == WSSpace {
		collapsed = strings.TrimPrefix(collapsed, " ")
	}
	f.node.SetText(collapsed)
	if collapsed == "" || strings.HasSuffix(collapsed, " ") {
		return WSSpace
	}
	return WSText
}

// TrimTrailingSpace drops the collapsible space that ends a text frame at
// a line boundary and reports whether any text is left.
func (f *Frame) TrimTrailingSpace() bool {
	f.live()
	if !f.IsTextNode() {
		return true
	}
	text := f.node.Text()
	if f.IsPre() {
		return text != ""
	}
	text = strings.TrimRight(text, collapsible)
	f.node.SetText(text)
	return text != ""
}

// IsWhitespaceText reports whether the frame contributes visible inline
// content: images always do, out-of-flow frames never do, text frames do
// when they are not blank, and every other frame does.
func (f *Frame) IsWhitespaceText() bool {
	f.live()
	if f.node != nil && f.node.Name() == "img" {
		return true
	}
	if !f.IsInFlow() {
		return false
	}
	if f.IsTextNode() {
		return strings.Trim(f.node.Text(), collapsible) != ""
	}
	return true
}
