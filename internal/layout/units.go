package layout

import "math"

// MMPerInch is the conversion constant between millimeters and inches.
const MMPerInch = 25.4

// ToPixels converts a physical length in millimeters to a pixel count at the
// given output density. Rounding is half-away-from-zero (math.Round), applied
// identically to widths and heights so aspect ratios survive the conversion.
// ToPixels(25.4, d) == d for any density d.
func ToPixels(lengthMM float64, dpi int) int {
	return int(math.Round(lengthMM * float64(dpi) / MMPerInch))
}

// CellPixels returns the pixel dimensions of a cell rectangle at the given density.
func CellPixels(cell CellRect, dpi int) (width, height int) {
	return ToPixels(cell.W, dpi), ToPixels(cell.H, dpi)
}
