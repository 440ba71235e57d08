package export

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"

	"fyne.io/fyne/v2"
	"github.com/jung-kurt/gofpdf"
)

// A4 landscape, in millimetres.
const (
	pageW  = 297.0
	pageH  = 210.0
	margin = 10.0
)

// pxToMM converts a stroke width in scene units to millimetres at 96 dpi.
const pxToMM = 25.4 / 96

// Line is one straight segment to draw.
type Line struct {
	From  fyne.Position
	To    fyne.Position
	Color color.Color
	Width float32
}

// transform maps scene coordinates onto the page.
type transform struct {
	scale      float64
	offX, offY float64
}

func (t transform) apply(p fyne.Position) (float64, float64) {
	return float64(p.X)*t.scale + t.offX, float64(p.Y)*t.scale + t.offY
}

// fit scales the bounding box of lines into the printable area, keeping its
// aspect ratio and centring it. Drawings that already fit keep scale 1.
func fit(lines []Line) transform {
	if len(lines) == 0 {
		return transform{scale: 1, offX: margin, offY: margin}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, p := range []fyne.Position{l.From, l.To} {
			minX = math.Min(minX, float64(p.X))
			minY = math.Min(minY, float64(p.Y))
			maxX = math.Max(maxX, float64(p.X))
			maxY = math.Max(maxY, float64(p.Y))
		}
	}

	availW, availH := pageW-2*margin, pageH-2*margin
	w, h := maxX-minX, maxY-minY
	scale := 1.0
	if w > 0 {
		scale = math.Min(scale, availW/w)
	}
	if h > 0 {
		scale = math.Min(scale, availH/h)
	}
	return transform{
		scale: scale,
		offX:  margin + (availW-w*scale)/2 - minX*scale,
		offY:  margin + (availH-h*scale)/2 - minY*scale,
	}
}

func render(lines []Line) *gofpdf.Fpdf {
	p := gofpdf.New("L", "mm", "A4", "")
	p.SetTitle("SpiderWeb", true)
	p.AddPage()
	p.SetLineCapStyle("round")

	t := fit(lines)
	for _, l := range lines {
		r, g, b := rgb(l.Color)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(math.Max(float64(l.Width)*pxToMM*t.scale, 0.1))
		x1, y1 := t.apply(l.From)
		x2, y2 := t.apply(l.To)
		p.Line(x1, y1, x2, y2)
	}
	return p
}

// PDF writes lines as a single-page PDF to w.
func PDF(w io.Writer, lines []Line) error {
	if err := render(lines).Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	log.Printf("[EXPORT] wrote %d lines", len(lines))
	return nil
}

// PDFFile writes lines as a single-page PDF at path.
func PDFFile(path string, lines []Line) error {
	if err := render(lines).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	log.Printf("[EXPORT] wrote %d lines to %s", len(lines), path)
	return nil
}

func rgb(c color.Color) (int, int, int) {
	if c == nil {
		return 0, 0, 0
	}
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
