// internal/frame/predicates_test.go
package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/style"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		set   func(*style.Style)
		check func(*frame.Frame) bool
		want  bool
	}{
		{"static is not positioned", func(s *style.Style) {}, (*frame.Frame).IsPositioned, false},
		{"relative is positioned", func(s *style.Style) { s.Position = "relative" }, (*frame.Frame).IsPositioned, true},
		{"relative is not absolute", func(s *style.Style) { s.Position = "relative" }, (*frame.Frame).IsAbsolute, false},
		{"fixed is absolute", func(s *style.Style) { s.Position = "fixed" }, (*frame.Frame).IsAbsolute, true},
		{"list-item is block", func(s *style.Style) { s.Display = "list-item" }, (*frame.Frame).IsBlock, true},
		{"inline is not block", func(s *style.Style) {}, (*frame.Frame).IsBlock, false},
		{"inline is inline", func(s *style.Style) {}, (*frame.Frame).IsInline, true},
		{"table-row is table", func(s *style.Style) { s.Display = "table-row" }, (*frame.Frame).IsTable, true},
		{"float left is floating", func(s *style.Style) { s.Float = "left" }, (*frame.Frame).IsFloating, true},
		{"static is in flow", func(s *style.Style) {}, (*frame.Frame).IsInFlow, true},
		{"floating is out of flow", func(s *style.Style) { s.Float = "right" }, (*frame.Frame).IsInFlow, false},
		{"absolute is out of flow", func(s *style.Style) { s.Position = "absolute" }, (*frame.Frame).IsInFlow, false},
		{"pre-line is pre", func(s *style.Style) { s.WhiteSpace = "pre-line" }, (*frame.Frame).IsPre, true},
		{"nowrap is not pre", func(s *style.Style) { s.WhiteSpace = "nowrap" }, (*frame.Frame).IsPre, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := styled("div", tt.set)
			assert.Equal(t, tt.want, tt.check(f))
			assert.Equal(t, tt.want, tt.check(f), "memoised answer is stable")
		})
	}
}

func TestIsTextNode(t *testing.T) {
	tf := frame.New(text("x"))
	tf.SetStyle(style.New())
	assert.True(t, tf.IsTextNode())
	assert.False(t, styled("p").IsTextNode())
}

func TestPredicatesAreMemoised(t *testing.T) {
	f := styled("div", func(s *style.Style) { s.Display = "block" })
	assert.True(t, f.IsBlock())
	f.Style().Display = "inline"
	assert.True(t, f.IsBlock(), "cache survives style mutation until Reset")
}
