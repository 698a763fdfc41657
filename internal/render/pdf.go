// internal/render/pdf.go
package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/xkilldash9x/folio/internal/geom"
	"github.com/xkilldash9x/folio/internal/style"
)

// PDFCanvas draws onto a single PDF page and writes the document on Close.
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	w         io.Writer
	family    string
	opacity   float64
	translate func(string) string
	closed    bool
}

// NewPDFCanvas starts a one-page document of the given size in points.
// The core font family is used for all text.
func NewPDFCanvas(w io.Writer, width, height float64, family string) *PDFCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("folio", true)
	pdf.AddPage()
	pdf.SetFont(family, "", style.DefaultFontSize)

	return &PDFCanvas{
		pdf:       pdf,
		w:         w,
		family:    family,
		opacity:   1,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDFCanvas) SetOpacity(alpha float64) {
	p.opacity = alpha
}

// alpha applies the canvas opacity and the color's own alpha together.
func (p *PDFCanvas) alpha(c style.Color) {
	p.pdf.SetAlpha(p.opacity*float64(c.A)/255, "Normal")
}

func (p *PDFCanvas) FillRect(b geom.Box, c style.Color) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	p.alpha(c)
	p.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.pdf.Rect(b.X, b.Y, b.Width, b.Height, "F")
}

func (p *PDFCanvas) Text(x, y float64, s string, size float64, c style.Color) {
	if s == "" || size <= 0 {
		return
	}
	p.alpha(c)
	p.pdf.SetFont(p.family, "", size)
	p.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	// Text is positioned by its baseline.
	p.pdf.Text(x, y+size, p.translate(s))
}

// Close writes the document. Errors raised while drawing surface here.
func (p *PDFCanvas) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.pdf.Output(p.w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
