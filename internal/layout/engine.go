// internal/layout/engine.go
package layout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/folio/internal/config"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/geom"
)

// ErrEmptyTree is returned when a tree has no root to lay out.
var ErrEmptyTree = errors.New("layout: tree has no root frame")

// -- Engine Core --

// Engine positions and sizes every frame of a tree on one page.
type Engine struct {
	cfg    config.LayoutConfig
	logger *zap.Logger
}

// NewEngine creates a layout engine.
func NewEngine(cfg config.LayoutConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger.Named("layout")}
}

// Page returns the content area of the configured page.
func (e *Engine) Page() geom.Box {
	m := e.cfg.PageMargin
	page := geom.Box{Width: e.cfg.PageWidth, Height: e.cfg.PageHeight}
	return page.ShrunkBy(geom.Edges{Top: m, Right: m, Bottom: m, Left: m})
}

// Layout lays out tree inside page. Passes run in order: effective
// opacity top-down, normal flow from the root, absolutely positioned
// frames, then relative offsets.
func (e *Engine) Layout(ctx context.Context, tree *frame.Tree, page geom.Box) (err error) {
	root := tree.Root()
	if root == nil {
		return ErrEmptyTree
	}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("layout aborted: %w", perr)
		}
	}()

	if err := tree.Walk(func(f *frame.Frame) error {
		f.SetOpacity(f.Style().Opacity)
		return ctx.Err()
	}); err != nil {
		return err
	}

	root.SetContainingBlock(geom.RectOf(page))
	root.SetPosition(geom.Point{X: geom.Some(page.X), Y: geom.Some(page.Y)})
	e.reflow(root, nil)
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := tree.Walk(func(f *frame.Frame) error {
		if f != root && f.IsAbsolute() {
			e.layoutAbsolute(f, page)
		}
		return ctx.Err()
	}); err != nil {
		return err
	}

	if err := tree.Walk(func(f *frame.Frame) error {
		if f.Style().Position == "relative" {
			e.applyRelative(f)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := root.Validate(); err != nil {
		return fmt.Errorf("layout left the tree inconsistent: %w", err)
	}
	e.logger.Debug("Layout complete.",
		zap.Stringer("run_id", tree.ID()),
		zap.Int("frames", tree.Len()),
		zap.Stringer("page", page),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Relayout resets every frame to its pre-layout state and lays the tree
// out again.
func (e *Engine) Relayout(ctx context.Context, tree *frame.Tree, page geom.Box) error {
	if err := tree.Walk(func(f *frame.Frame) error {
		f.Reset()
		return nil
	}); err != nil {
		return err
	}
	return e.Layout(ctx, tree, page)
}

// reflow dispatches to the frame's decorator.
func (e *Engine) reflow(f *frame.Frame, line *lineCursor) {
	r, ok := f.MustDecorator().(Reflower)
	if !ok {
		panic(fmt.Errorf("layout: decorator %T of %s cannot reflow", f.Decorator(), f))
	}
	r.Reflow(e, line)
}

// -- Positioning --

// layoutAbsolute places an absolutely positioned frame against the padding
// box of its nearest positioned ancestor. Fixed frames and frames without
// a positioned ancestor use the page.
func (e *Engine) layoutAbsolute(f *frame.Frame, page geom.Box) {
	pcb := e.positioningBlock(f, page)
	s := f.Style()
	ref := geom.Some(pcb.Width)
	refH := geom.Some(pcb.Height)
	left := s.LengthInPt(ref, s.Offsets.Left)
	right := s.LengthInPt(ref, s.Offsets.Right)
	top := s.LengthInPt(refH, s.Offsets.Top)
	bottom := s.LengthInPt(refH, s.Offsets.Bottom)

	f.SetContainingBlock(geom.RectOf(pcb))
	start := geom.Point{X: geom.Some(pcb.X + left.Or(0)), Y: geom.Some(pcb.Y + top.Or(0))}
	f.SetPosition(start)

	mode, avail := shrinkToFit, pcb.Width-left.Or(0)
	if left.Valid() && right.Valid() {
		mode, avail = fillWidth, pcb.Width-left.Or(0)-right.Or(0)
	}
	e.layoutBlock(f, mode, avail)

	x, y := start.X.Or(0), start.Y.Or(0)
	if !left.Valid() && right.Valid() {
		x = pcb.Right() - right.Or(0) - f.MarginWidth().Or(0)
	}
	if !top.Valid() && bottom.Valid() {
		y = pcb.Bottom() - bottom.Or(0) - f.MarginHeight().Or(0)
	}
	shiftSubtree(f, x-start.X.Or(0), y-start.Y.Or(0))
}

// positioningBlock returns the box absolute offsets of f resolve against.
func (e *Engine) positioningBlock(f *frame.Frame, page geom.Box) geom.Box {
	if f.Style().Position == "fixed" {
		return page
	}
	for a := f.Parent(); a != nil; a = a.Parent() {
		if !a.IsPositioned() {
			continue
		}
		if pb, ok := a.PaddingBox(); ok {
			return pb
		}
	}
	return page
}

// applyRelative offsets a relatively positioned frame and its subtree from
// its normal-flow position. left wins over right and top over bottom.
func (e *Engine) applyRelative(f *frame.Frame) {
	s := f.Style()
	cb := f.ContainingBlock()
	dx, dy := 0.0, 0.0
	if v, ok := s.LengthInPt(cb.W, s.Offsets.Left).Get(); ok {
		dx = v
	} else if v, ok := s.LengthInPt(cb.W, s.Offsets.Right).Get(); ok {
		dx = -v
	}
	if v, ok := s.LengthInPt(cb.H, s.Offsets.Top).Get(); ok {
		dy = v
	} else if v, ok := s.LengthInPt(cb.H, s.Offsets.Bottom).Get(); ok {
		dy = -v
	}
	shiftSubtree(f, dx, dy)
}
