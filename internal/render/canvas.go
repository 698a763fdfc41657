// internal/render/canvas.go
package render

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// Canvas is a drawing surface in page coordinates: points, origin top-left,
// y growing down. Backends with another origin remap internally.
type Canvas interface {
	// SetOpacity sets the alpha applied to every following operation.
	SetOpacity(alpha float64)
	// FillRect paints b with c.
	FillRect(b geom.Box, c style.Color)
	// Text draws s with its top-left corner at (x, y).
	Text(x, y float64, s string, size float64, c style.Color)
	// Close finishes the surface and flushes any output.
	Close() error
}

// -- Recorder --

// Op is one recorded drawing operation.
type Op struct {
	Op     string   `json:"op"`
	X      float64  `json:"x,omitempty"`
	Y      float64  `json:"y,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Color  string   `json:"color,omitempty"`
	Text   string   `json:"text,omitempty"`
	Size   float64  `json:"size,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty"`
}

// Box returns the rectangle of a fill operation.
func (o Op) Box() geom.Box {
	return geom.Box{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// Recorder is a Canvas that keeps every operation. On Close the operations
// are written to the optional writer as a JSON array.
type Recorder struct {
	Ops    []Op
	w      io.Writer
	closed bool
}

// NewRecorder creates a recorder. w may be nil.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

func (r *Recorder) SetOpacity(alpha float64) {
	if r.closed {
		return
	}
	r.Ops = append(r.Ops, Op{Op: "opacity", Alpha: &alpha})
}

func (r *Recorder) FillRect(b geom.Box, c style.Color) {
	if r.closed {
		return
	}
	r.Ops = append(r.Ops, Op{Op: "fill", X: b.X, Y: b.Y, Width: b.Width, Height: b.Height, Color: hex(c)})
}

func (r *Recorder) Text(x, y float64, s string, size float64, c style.Color) {
	if r.closed {
		return
	}
	r.Ops = append(r.Ops, Op{Op: "text", X: x, Y: y, Text: s, Size: size, Color: hex(c)})
}

// Close writes the recorded operations. Closing twice is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.w == nil {
		return nil
	}
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	ops := r.Ops
	if ops == nil {
		ops = []Op{}
	}
	if err := enc.Encode(ops); err != nil {
		return fmt.Errorf("failed to write draw operations: %w", err)
	}
	return nil
}

// Filter returns the recorded operations of one kind.
func (r *Recorder) Filter(op string) []Op {
	var out []Op
	for _, o := range r.Ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

func hex(c style.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
