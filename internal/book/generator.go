// Package book generates a paginated PDF document from an ordered photo
// collection: plan the grid placements, then per photo decode, rotate, scale
// and place, strictly in sequence.
package book

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/kozaktomas/photopdf/internal/album"
	"github.com/kozaktomas/photopdf/internal/layout"
	"github.com/kozaktomas/photopdf/internal/render"
)

const (
	// lowResDPIThreshold marks placements whose source resolution falls
	// below acceptable print quality.
	lowResDPIThreshold = 150.0

	// DefaultDPI is the output density used when none is configured.
	DefaultDPI = 300

	// DefaultJPEGQuality is the embedded JPEG quality used when none is
	// configured.
	DefaultJPEGQuality = 90
)

// Generator renders photo collections into PDF documents.
type Generator struct {
	DPI         int
	JPEGQuality int

	// Progress, when set, is called after each photo is placed.
	Progress func(done, total int)
}

// NewGenerator creates a generator, substituting defaults for non-positive
// settings.
func NewGenerator(dpi, jpegQuality int) *Generator {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if jpegQuality <= 0 {
		jpegQuality = DefaultJPEGQuality
	}
	return &Generator{DPI: dpi, JPEGQuality: jpegQuality}
}

// effectiveDPI returns the print density a native pixel count yields over a
// placed width, rounded to one decimal.
func effectiveDPI(nativePx int, placedMM float64) float64 {
	if placedMM <= 0 {
		return 0
	}
	dpi := float64(nativePx) / placedMM * layout.MMPerInch
	return math.Round(dpi*10) / 10
}

// Generate renders the entries onto pages with the given geometry and writes
// the finished PDF to w. Photos are processed one at a time in album order; a
// photo that fails to decode aborts the whole run with an error naming the
// entry, and nothing is written to w. An empty entry list fails with
// layout.ErrNoEntries and produces no document.
func (g *Generator) Generate(ctx context.Context, entries []album.Entry, geom layout.PageGeometry, w io.Writer) (*Report, error) {
	placements, err := layout.Plan(len(entries), geom)
	if err != nil {
		return nil, err
	}

	asm := NewAssembler(geom, g.JPEGQuality)
	report := &Report{PhotoCount: len(entries)}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation abandoned: %w", err)
		}

		pl := placements[i]

		src, err := render.Decode(entry.Data)
		if err != nil {
			return nil, fmt.Errorf("photo %d (%s): %w", i, entry.Name, err)
		}

		targetW, targetH := layout.CellPixels(pl.Cell, g.DPI)
		bitmap, err := render.Compose(src, entry.Rotation, targetW, targetH)
		if err != nil {
			return nil, fmt.Errorf("photo %d (%s): %w", i, entry.Name, err)
		}

		placed, err := asm.Place(bitmap, pl.Page, pl.Cell)
		if err != nil {
			return nil, fmt.Errorf("photo %d (%s): %w", i, entry.Name, err)
		}

		// Quality is bounded by the source's native resolution, not the
		// resampled bitmap.
		nativeW := src.Bounds().Dx()
		if render.SwapsAxes(entry.Rotation) {
			nativeW = src.Bounds().Dy()
		}
		dpi := effectiveDPI(nativeW, placed.W)

		if i == 0 || pl.NewPage {
			report.Pages = append(report.Pages, ReportPage{PageNumber: pl.Page + 1})
		}
		page := &report.Pages[len(report.Pages)-1]
		page.Photos = append(page.Photos, ReportPhoto{
			Index:        i,
			Name:         entry.Name,
			Rotation:     entry.Rotation,
			EffectiveDPI: dpi,
			LowRes:       dpi > 0 && dpi < lowResDPIThreshold,
		})

		if g.Progress != nil {
			g.Progress(i+1, len(entries))
		}
	}

	report.PageCount = asm.PageCount()
	addLowResWarnings(report)

	if err := asm.Output(w); err != nil {
		return nil, err
	}
	return report, nil
}

// addLowResWarnings appends one warning per low-resolution placement.
func addLowResWarnings(report *Report) {
	for _, page := range report.Pages {
		for _, photo := range page.Photos {
			if photo.LowRes {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("page %d, photo %d (%s): effective DPI %.0f is below %d",
						page.PageNumber, photo.Index, photo.Name, photo.EffectiveDPI, int(lowResDPIThreshold)))
			}
		}
	}
}
