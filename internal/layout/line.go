// internal/layout/line.go
package layout

// lineCursor places inline-level boxes left to right, starting a new line
// when the next box would cross the right edge. Whole boxes wrap; text is
// never broken.
type lineCursor struct {
	left, width float64
	x, top      float64
	height      float64 // tallest box on the current line
	count       int     // boxes on the current line
}

func newLineCursor(left, top, width float64) *lineCursor {
	return &lineCursor{left: left, width: width, x: left, top: top}
}

// place reserves a w by h slot and returns its top-left corner.
func (l *lineCursor) place(w, h float64) (x, y float64) {
	if l.count > 0 && l.x+w > l.left+l.width {
		l.newLine()
	}
	x, y = l.x, l.top
	l.x += w
	l.grow(h)
	l.count++
	return x, y
}

// advance moves the pen without placing a box.
func (l *lineCursor) advance(dx float64) { l.x += dx }

// grow raises the current line to at least h.
func (l *lineCursor) grow(h float64) { l.height = max(l.height, h) }

func (l *lineCursor) newLine() {
	l.top += l.height
	l.x = l.left
	l.height = 0
	l.count = 0
}

// bottom is the y coordinate below the last line.
func (l *lineCursor) bottom() float64 { return l.top + l.height }
