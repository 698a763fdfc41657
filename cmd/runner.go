// -- cmd/runner.go --
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/folio/internal/config"
	"github.com/xkilldash9x/folio/internal/dom"
	"github.com/xkilldash9x/folio/internal/frame"
	"github.com/xkilldash9x/folio/internal/inspect"
	"github.com/xkilldash9x/folio/internal/layout"
	"github.com/xkilldash9x/folio/internal/observability"
	"github.com/xkilldash9x/folio/internal/render"
	"github.com/xkilldash9x/folio/internal/style"
)

// runner processes documents for the layout command. Every document gets
// its own frame tree; trees are never shared between goroutines.
type runner struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	sheet  *style.Sheet
	xpath  string
	pdfDir string
}

func newRunner(cfg *config.Config, logger *zap.Logger, out io.Writer) (*runner, error) {
	r := &runner{cfg: cfg, logger: logger, out: out}

	if path := cfg.Layout().UserStylesheet; path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read user stylesheet: %w", err)
		}
		r.sheet = style.ParseSheet(string(src))
	}

	if dir := cfg.Render().OutputDir; dir != "" {
		expanded, err := homedir.Expand(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to expand pdf directory %q: %w", dir, err)
		}
		if err := os.MkdirAll(expanded, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create pdf directory: %w", err)
		}
		r.pdfDir = expanded
	}
	return r, nil
}

// Run processes paths with bounded concurrency and writes each document's
// dump in argument order. The first failure cancels the remaining work.
func (r *runner) Run(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Engine().WorkerConcurrency)

	var pdfs []string
	if r.pdfDir != "" {
		pdfs = pdfNames(paths)
	}
	outputs := make([]bytes.Buffer, len(paths))
	for i, path := range paths {
		pdf := ""
		if pdfs != nil {
			pdf = filepath.Join(r.pdfDir, pdfs[i])
		}
		g.Go(func() error {
			if err := r.process(ctx, path, pdf, &outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	text := r.cfg.Render().Format == "text"
	for i := range outputs {
		if text && len(paths) > 1 {
			if _, err := fmt.Fprintf(r.out, "==> %s <==\n", paths[i]); err != nil {
				return err
			}
		}
		if _, err := outputs[i].WriteTo(r.out); err != nil {
			return err
		}
	}
	return nil
}

// pdfNames picks one output file name per input. Inputs that share a base
// name get a numeric suffix in argument order, so no two documents write
// the same file.
func pdfNames(paths []string) []string {
	names := make([]string, len(paths))
	taken := make(map[string]bool, len(paths))
	for i, path := range paths {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name := base + ".pdf"
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d.pdf", base, n)
		}
		taken[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

// process lays out one document and writes its dump to w. When pdf is set
// the document is also rendered to that file.
func (r *runner) process(ctx context.Context, path, pdf string, w io.Writer) error {
	if timeout := r.cfg.Engine().DocumentTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	start := time.Now()
	lcfg := r.cfg.Layout()

	doc, err := dom.Load(path)
	if err != nil {
		return err
	}

	resolver := style.NewResolver(lcfg.DPI, lcfg.DefaultFontSize, r.logger)
	if r.sheet != nil {
		resolver.AddSheet(r.sheet)
	}
	tree, err := layout.NewBuilder(resolver, r.logger).Build(doc)
	if err != nil {
		return err
	}
	defer tree.Dispose()
	logger := observability.ForDocument(r.logger, tree.ID(), path)

	engine := layout.NewEngine(lcfg, logger)
	if err := engine.Layout(ctx, tree, engine.Page()); err != nil {
		return err
	}

	if pdf != "" {
		if err := r.writePDF(ctx, tree, pdf, logger); err != nil {
			return err
		}
	}
	if err := r.dump(ctx, tree, doc, w, logger); err != nil {
		return err
	}

	logger.Info("Document processed", zap.Int("frames", tree.Len()), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (r *runner) dump(ctx context.Context, tree *frame.Tree, doc *html.Node, w io.Writer, logger *zap.Logger) error {
	format := r.cfg.Render().Format
	if format == "ops" {
		rec := render.NewRecorder(w)
		if err := render.NewRenderer(r.cfg.Render(), logger).Render(ctx, tree, rec); err != nil {
			return err
		}
		return rec.Close()
	}
	if r.xpath == "" {
		return inspect.Write(w, tree, format)
	}

	frames, err := r.selectFrames(tree, doc, logger)
	if err != nil {
		return err
	}
	return inspect.WriteSelection(w, tree, frames, format)
}

// selectFrames maps the elements matched by the XPath expression to their
// frames. Matches without a frame, such as elements in <head>, are skipped.
func (r *runner) selectFrames(tree *frame.Tree, doc *html.Node, logger *zap.Logger) ([]*frame.Frame, error) {
	nodes, err := dom.Query(doc, r.xpath)
	if err != nil {
		return nil, err
	}
	frames := make([]*frame.Frame, 0, len(nodes))
	for _, n := range nodes {
		f, ok := tree.FrameFor(dom.Wrap(n))
		if !ok {
			logger.Debug("XPath match has no frame", zap.String("element", n.Data))
			continue
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func (r *runner) writePDF(ctx context.Context, tree *frame.Tree, out string, logger *zap.Logger) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}
	defer f.Close()

	lcfg, rcfg := r.cfg.Layout(), r.cfg.Render()
	canvas := render.NewPDFCanvas(f, lcfg.PageWidth, lcfg.PageHeight, rcfg.FontFamily)
	if err := render.NewRenderer(rcfg, logger).Render(ctx, tree, canvas); err != nil {
		return err
	}
	if err := canvas.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close pdf: %w", err)
	}
	logger.Debug("PDF written", zap.String("output", out))
	return nil
}
