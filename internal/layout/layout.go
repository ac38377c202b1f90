// Package layout computes page placement rectangles for an ordered sequence
// of photos. Planning is pure arithmetic over the entry count and the page
// geometry; it never looks at image content, so recomputing a plan from the
// same inputs always yields identical placements.
package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry reports a page geometry that cannot hold any photo.
	ErrInvalidGeometry = errors.New("invalid page geometry")

	// ErrNoEntries reports a generation request with an empty photo list.
	ErrNoEntries = errors.New("no photos to lay out")
)

// PageGeometry describes the physical page size in millimeters and its grid
// subdivision. Rows x Columns of 1x1 means one photo per page.
type PageGeometry struct {
	WidthMM  float64
	HeightMM float64
	Columns  int
	Rows     int
}

// Validate checks that the geometry can hold at least one photo.
func (g PageGeometry) Validate() error {
	if g.Columns < 1 || g.Rows < 1 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidGeometry, g.Columns, g.Rows)
	}
	if g.WidthMM <= 0 || g.HeightMM <= 0 {
		return fmt.Errorf("%w: page %.1fx%.1f mm", ErrInvalidGeometry, g.WidthMM, g.HeightMM)
	}
	return nil
}

// PerPage returns the number of grid cells on one page.
func (g PageGeometry) PerPage() int {
	return g.Columns * g.Rows
}

// CellWidth returns the width of one grid cell in millimeters.
func (g PageGeometry) CellWidth() float64 {
	return g.WidthMM / float64(g.Columns)
}

// CellHeight returns the height of one grid cell in millimeters.
func (g PageGeometry) CellHeight() float64 {
	return g.HeightMM / float64(g.Rows)
}

// CellRect is the destination region for one photo in page millimeters,
// origin at the page top-left.
type CellRect struct {
	X, Y, W, H float64
}

// Placement assigns one entry (by its global index) to a page and cell.
type Placement struct {
	Index   int      // global entry index, 0-based
	Page    int      // physical page index, 0-based
	Cell    CellRect // destination rectangle in page mm
	NewPage bool     // true when this entry is the first on a new page (never for index 0)
}

// PlacementAt computes the placement for a single global index.
func PlacementAt(index int, g PageGeometry) Placement {
	perPage := g.PerPage()
	page := index / perPage
	onPage := index % perPage
	row := onPage / g.Columns
	col := onPage % g.Columns

	cw := g.CellWidth()
	ch := g.CellHeight()
	return Placement{
		Index: index,
		Page:  page,
		Cell: CellRect{
			X: float64(col) * cw,
			Y: float64(row) * ch,
			W: cw,
			H: ch,
		},
		NewPage: index > 0 && onPage == 0,
	}
}

// Plan computes placements for n entries in input order. The result is a pure
// function of n and the geometry.
func Plan(n int, g PageGeometry) ([]Placement, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, ErrNoEntries
	}

	placements := make([]Placement, n)
	for i := 0; i < n; i++ {
		placements[i] = PlacementAt(i, g)
	}
	return placements, nil
}

// PageCount returns the number of physical pages a plan for n entries occupies.
func PageCount(n int, g PageGeometry) int {
	if n <= 0 {
		return 0
	}
	perPage := g.PerPage()
	return (n + perPage - 1) / perPage
}
