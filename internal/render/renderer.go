// internal/render/renderer.go
package render

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/xkilldash9x/folio/internal/config"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/layout"
	"github.com/xkilldash9x/folio/internal/style"
)

// markerAdvance is the glyph advance assumed for list markers, as a
// fraction of the font size.
const markerAdvance = 0.5

// imagePlaceholder fills the content box of images, which are not embedded.
var imagePlaceholder = style.Color{R: 220, G: 220, B: 220, A: 255}

// Renderer paints a laid-out frame tree onto a Canvas.
type Renderer struct {
	cfg    config.RenderConfig
	logger *zap.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(cfg config.RenderConfig, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{cfg: cfg, logger: logger.Named("render")}
}

// Render walks tree in document order and draws every frame with a
// resolved box. The canvas is left open.
func (r *Renderer) Render(ctx context.Context, tree *frame.Tree, c Canvas) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			perr, ok := rec.(error)
			if !ok {
				panic(rec)
			}
			err = fmt.Errorf("render aborted: %w", perr)
		}
	}()

	painted, skipped := 0, 0
	opacity := -1.0
	err = tree.Walk(func(f *frame.Frame) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := f.Decorator().(*layout.Null); ok {
			return nil
		}
		bb, ok := f.BorderBox()
		if !ok {
			skipped++
			r.logger.Debug("Skipping frame with unresolved box.", zap.Int("frame_id", f.ID()))
			return nil
		}
		if o := f.Opacity(); o != opacity {
			c.SetOpacity(o)
			opacity = o
		}
		r.paint(f, bb, c)
		painted++
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Render complete.",
		zap.Stringer("run_id", tree.ID()),
		zap.Int("painted", painted),
		zap.Int("skipped", skipped))
	return nil
}

func (r *Renderer) paint(f *frame.Frame, bb geom.Box, c Canvas) {
	s := f.Style()
	if !s.Background.Transparent() {
		c.FillRect(bb, s.Background)
	}
	if r.cfg.DrawBorders && !s.BorderColor.Transparent() {
		if pb, ok := f.PaddingBox(); ok {
			for _, strip := range borderStrips(bb, pb) {
				c.FillRect(strip, s.BorderColor)
			}
		}
	}

	content, ok := f.ContentBox()
	if !ok {
		return
	}
	switch d := f.Decorator().(type) {
	case *layout.Text:
		c.Text(content.X, content.Y, f.Node().Text(), s.FontSize, s.Color)
	case *layout.ListItem:
		if d.Marker != "" {
			advance := (float64(utf8.RuneCountInString(d.Marker)) + 1) * s.FontSize * markerAdvance
			c.Text(content.X-advance, content.Y, d.Marker, s.FontSize, s.Color)
		}
	case *layout.Image:
		if s.Background.Transparent() {
			c.FillRect(content, imagePlaceholder)
		}
	}
}

// borderStrips returns the non-empty rectangles between the border box and
// the padding box: top and bottom span the full width, left and right fill
// the height between them.
func borderStrips(bb, pb geom.Box) []geom.Box {
	strips := []geom.Box{
		{X: bb.X, Y: bb.Y, Width: bb.Width, Height: pb.Y - bb.Y},
		{X: pb.Right(), Y: pb.Y, Width: bb.Right() - pb.Right(), Height: pb.Height},
		{X: bb.X, Y: pb.Bottom(), Width: bb.Width, Height: bb.Bottom() - pb.Bottom()},
		{X: bb.X, Y: pb.Y, Width: pb.X - bb.X, Height: pb.Height},
	}
	out := strips[:0]
	for _, b := range strips {
		if b.Width > 0 && b.Height > 0 {
			out = append(out, b)
		}
	}
	return out
}
