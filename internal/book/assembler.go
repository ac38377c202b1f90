package book

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/kozaktomas/photopdf/internal/layout"
)

// Assembler places rendered bitmaps onto the pages of a growing PDF document.
// Pages are started lazily as page indices advance; nothing is written out
// until Output, so an abandoned run leaves no partial artifact.
type Assembler struct {
	pdf         *gofpdf.Fpdf
	geom        layout.PageGeometry
	jpegQuality int
	currentPage int // index of the page being filled, -1 before the first
	placed      int
}

// NewAssembler creates an empty document with the geometry's page size.
func NewAssembler(geom layout.PageGeometry, jpegQuality int) *Assembler {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: geom.WidthMM, Ht: geom.HeightMM},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	return &Assembler{
		pdf:         pdf,
		geom:        geom,
		jpegQuality: jpegQuality,
		currentPage: -1,
	}
}

// fitMM computes the largest millimeter dimensions with the bitmap's aspect
// ratio that fit inside a cell box.
func fitMM(srcW, srcH int, boxW, boxH float64) (w, h float64) {
	ratio := float64(srcW) / float64(srcH)
	if ratio > boxW/boxH {
		return boxW, boxW / ratio
	}
	return boxH * ratio, boxH
}

// Place draws a bitmap inside a cell on the given page, starting new pages as
// needed. The bitmap is centered within the cell (letterboxing). It returns
// the actual placed rectangle in page millimeters. Page indices must arrive
// in non-decreasing order.
func (a *Assembler) Place(img image.Image, page int, cell layout.CellRect) (layout.CellRect, error) {
	if page < a.currentPage {
		return layout.CellRect{}, fmt.Errorf("page index moved backwards: %d after %d", page, a.currentPage)
	}
	for a.currentPage < page {
		a.pdf.AddPage()
		a.currentPage++
	}

	bounds := img.Bounds()
	w, h := fitMM(bounds.Dx(), bounds.Dy(), cell.W, cell.H)
	x := cell.X + (cell.W-w)/2
	y := cell.Y + (cell.H-h)/2

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: a.jpegQuality}); err != nil {
		return layout.CellRect{}, fmt.Errorf("failed to encode bitmap: %w", err)
	}

	name := fmt.Sprintf("photo-%d", a.placed)
	a.placed++

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	a.pdf.RegisterImageOptionsReader(name, opts, &buf)
	a.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := a.pdf.Error(); err != nil {
		return layout.CellRect{}, fmt.Errorf("failed to place bitmap: %w", err)
	}

	return layout.CellRect{X: x, Y: y, W: w, H: h}, nil
}

// PageCount returns the number of pages started so far.
func (a *Assembler) PageCount() int {
	return a.currentPage + 1
}

// Output finalizes the document and writes it to w.
func (a *Assembler) Output(w io.Writer) error {
	if err := a.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
