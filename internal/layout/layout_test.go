package layout

import (
	"errors"
	"math"
	"testing"
)

func a4Portrait(cols, rows int) PageGeometry {
	return PageGeometry{WidthMM: 210, HeightMM: 297, Columns: cols, Rows: rows}
}

func TestPageGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		geom    PageGeometry
		wantErr bool
	}{
		{"single cell", a4Portrait(1, 1), false},
		{"2x2 grid", a4Portrait(2, 2), false},
		{"zero columns", a4Portrait(0, 1), true},
		{"zero rows", a4Portrait(1, 0), true},
		{"negative rows", a4Portrait(2, -1), true},
		{"zero width", PageGeometry{WidthMM: 0, HeightMM: 297, Columns: 1, Rows: 1}, true},
		{"negative height", PageGeometry{WidthMM: 210, HeightMM: -5, Columns: 1, Rows: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geom.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPlan_TwoByTwoFiveEntries(t *testing.T) {
	// 5 entries on A4 portrait 2x2: four cells on page 0, one on page 1.
	geom := a4Portrait(2, 2)
	placements, err := Plan(5, geom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(placements) != 5 {
		t.Fatalf("expected 5 placements, got %d", len(placements))
	}

	expected := []struct {
		page    int
		x, y    float64
		newPage bool
	}{
		{0, 0, 0, false},
		{0, 105, 0, false},
		{0, 0, 148.5, false},
		{0, 105, 148.5, false},
		{1, 0, 0, true},
	}
	for i, want := range expected {
		got := placements[i]
		if got.Index != i {
			t.Errorf("placement %d: index %d", i, got.Index)
		}
		if got.Page != want.page {
			t.Errorf("placement %d: expected page %d, got %d", i, want.page, got.Page)
		}
		if math.Abs(got.Cell.X-want.x) > 0.01 || math.Abs(got.Cell.Y-want.y) > 0.01 {
			t.Errorf("placement %d: expected origin (%.1f, %.1f), got (%.1f, %.1f)",
				i, want.x, want.y, got.Cell.X, got.Cell.Y)
		}
		if math.Abs(got.Cell.W-105) > 0.01 || math.Abs(got.Cell.H-148.5) > 0.01 {
			t.Errorf("placement %d: expected cell 105x148.5, got %.2fx%.2f", i, got.Cell.W, got.Cell.H)
		}
		if got.NewPage != want.newPage {
			t.Errorf("placement %d: expected NewPage=%v, got %v", i, want.newPage, got.NewPage)
		}
	}
}

func TestPlan_SinglePerPage(t *testing.T) {
	geom := a4Portrait(1, 1)
	placements, err := Plan(3, geom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range placements {
		if p.Page != i {
			t.Errorf("entry %d: expected page %d, got %d", i, i, p.Page)
		}
		if p.Cell.X != 0 || p.Cell.Y != 0 {
			t.Errorf("entry %d: expected cell at origin, got (%.1f, %.1f)", i, p.Cell.X, p.Cell.Y)
		}
		if math.Abs(p.Cell.W-geom.WidthMM) > 0.01 || math.Abs(p.Cell.H-geom.HeightMM) > 0.01 {
			t.Errorf("entry %d: cell should cover the full page, got %.1fx%.1f", i, p.Cell.W, p.Cell.H)
		}
		if p.NewPage != (i > 0) {
			t.Errorf("entry %d: NewPage=%v", i, p.NewPage)
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	geom := a4Portrait(3, 2)
	first, err := Plan(17, geom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Plan(17, geom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("placement %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPlan_Empty(t *testing.T) {
	_, err := Plan(0, a4Portrait(1, 1))
	if !errors.Is(err, ErrNoEntries) {
		t.Errorf("expected ErrNoEntries, got %v", err)
	}
}

func TestPlan_InvalidGeometry(t *testing.T) {
	_, err := Plan(4, a4Portrait(0, 2))
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestPlan_PageBoundaries(t *testing.T) {
	// 3x2 grid: 6 per page. Boundaries at global indices 6 and 12.
	geom := a4Portrait(3, 2)
	placements, err := Plan(14, geom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range placements {
		wantPage := i / 6
		if p.Page != wantPage {
			t.Errorf("entry %d: expected page %d, got %d", i, wantPage, p.Page)
		}
		wantNew := i > 0 && i%6 == 0
		if p.NewPage != wantNew {
			t.Errorf("entry %d: expected NewPage=%v, got %v", i, wantNew, p.NewPage)
		}
	}
}

func TestPageCount(t *testing.T) {
	geom := a4Portrait(2, 2)
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
	}
	for _, tt := range tests {
		if got := PageCount(tt.n, geom); got != tt.want {
			t.Errorf("PageCount(%d): expected %d, got %d", tt.n, tt.want, got)
		}
	}
}
