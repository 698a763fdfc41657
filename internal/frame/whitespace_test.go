// internal/frame/whitespace_test.go
package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/style"
)

func textFrame(s string, whiteSpace string) (*frame.Frame, *fakeNode) {
	n := text(s)
	f := frame.New(n)
	st := style.New()
	st.WhiteSpace = whiteSpace
	f.SetStyle(st)
	return f, n
}

func TestTrimWhitespace(t *testing.T) {
	t.Run("space state drops the leading run and collapses", func(t *testing.T) {
		f, n := textFrame("  hello \n\t world  ", "normal")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSSpace), "ends in a space")
		assert.Equal(t, "hello world ", n.text)
	})

	t.Run("space state ending in text", func(t *testing.T) {
		f, n := textFrame("\n  hello", "normal")
		assert.Equal(t, frame.WSText, f.TrimWhitespace(frame.WSSpace))
		assert.Equal(t, "hello", n.text)
	})

	t.Run("text state collapses but keeps the leading space", func(t *testing.T) {
		f, n := textFrame("\n      again\n    ", "normal")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSText))
		assert.Equal(t, " again ", n.text)
	})

	t.Run("blank text between inline content becomes one space", func(t *testing.T) {
		f, n := textFrame(" \n ", "normal")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSText))
		assert.Equal(t, " ", n.text)
	})

	t.Run("pre keeps whitespace", func(t *testing.T) {
		f, n := textFrame("  code  ", "pre")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSSpace))
		assert.Equal(t, "  code  ", n.text)
	})

	t.Run("empty text does not advance", func(t *testing.T) {
		f, _ := textFrame("", "normal")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSSpace))
	})

	t.Run("blank text empties but keeps the space state", func(t *testing.T) {
		f, n := textFrame(" \n\t ", "normal")
		assert.Equal(t, frame.WSSpace, f.TrimWhitespace(frame.WSSpace))
		assert.Empty(t, n.text)
	})

	t.Run("no-break spaces are content", func(t *testing.T) {
		f, n := textFrame("\u00a0\u00a0indented", "normal")
		assert.Equal(t, frame.WSText, f.TrimWhitespace(frame.WSSpace))
		assert.Equal(t, "\u00a0\u00a0indented", n.text)

		only, m := textFrame(" \u00a0 ", "normal")
		assert.Equal(t, frame.WSSpace, only.TrimWhitespace(frame.WSSpace))
		assert.Equal(t, "\u00a0 ", m.text)
	})

	t.Run("elements pass the state through", func(t *testing.T) {
		assert.Equal(t, frame.WSSpace, styled("span").TrimWhitespace(frame.WSSpace))
		assert.Equal(t, frame.WSText, styled("span").TrimWhitespace(frame.WSText))
	})
}

func TestTrimTrailingSpace(t *testing.T) {
	f, n := textFrame("end \t", "normal")
	assert.True(t, f.TrimTrailingSpace())
	assert.Equal(t, "end", n.text)

	blank, _ := textFrame(" ", "normal")
	assert.False(t, blank.TrimTrailingSpace())

	nbsp, m := textFrame("\u00a0 ", "normal")
	assert.True(t, nbsp.TrimTrailingSpace())
	assert.Equal(t, "\u00a0", m.text)

	pre, p := textFrame("code  ", "pre")
	assert.True(t, pre.TrimTrailingSpace())
	assert.Equal(t, "code  ", p.text)

	assert.True(t, styled("span").TrimTrailingSpace())
}

func TestIsWhitespaceText(t *testing.T) {
	blank, _ := textFrame(" \n ", "normal")
	assert.False(t, blank.IsWhitespaceText())

	word, _ := textFrame(" a ", "normal")
	assert.True(t, word.IsWhitespaceText())

	nbsp, _ := textFrame("\u00a0", "normal")
	assert.True(t, nbsp.IsWhitespaceText(), "a no-break space is visible")

	assert.True(t, styled("img", func(s *style.Style) { s.Float = "left" }).IsWhitespaceText(), "images always count")
	assert.False(t, styled("span", func(s *style.Style) { s.Position = "absolute" }).IsWhitespaceText())
	assert.True(t, styled("span").IsWhitespaceText())
}

func TestWSStateString(t *testing.T) {
	assert.Equal(t, "space", frame.WSSpace.String())
	assert.Equal(t, "text", frame.WSText.String())
}
