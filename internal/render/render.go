// Package render turns raw photo bytes into bitmaps sized for a layout cell.
// Rotation happens first at full native resolution; the single resampling
// pass comes after, so no resolution is lost before the fit step.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrDecode reports unreadable or unsupported image data.
	ErrDecode = errors.New("failed to decode image")

	// ErrInvalidRotation reports a rotation outside {0, 90, 180, 270}.
	ErrInvalidRotation = errors.New("rotation must be a multiple of 90 degrees")

	// ErrInvalidTarget reports a non-positive target bounding box.
	ErrInvalidTarget = errors.New("target dimensions must be positive")

	// ErrEmptySource reports a source bitmap with zero width or height.
	ErrEmptySource = errors.New("source bitmap is empty")
)

// Decode loads raw photo bytes into an in-memory bitmap.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrDecode)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Dimensions reads the pixel size of an encoded photo without decoding the
// full bitmap.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}

// SwapsAxes reports whether a rotation exchanges width and height.
func SwapsAxes(rotationDegrees int) bool {
	return rotationDegrees == 90 || rotationDegrees == 270
}

// rotate turns the source clockwise by a right-angle rotation without any
// resampling. The imaging rotate functions are counter-clockwise, hence the
// swapped 90/270 mapping.
func rotate(src image.Image, rotationDegrees int) (image.Image, error) {
	switch rotationDegrees {
	case 0:
		return src, nil
	case 90:
		return imaging.Rotate270(src), nil
	case 180:
		return imaging.Rotate180(src), nil
	case 270:
		return imaging.Rotate90(src), nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRotation, rotationDegrees)
	}
}

// FitWithin computes the largest dimensions with the source aspect ratio that
// fit entirely inside the target box. Both results are at least 1 pixel.
func FitWithin(srcW, srcH, targetW, targetH int) (width, height int) {
	ratio := float64(srcW) / float64(srcH)
	targetRatio := float64(targetW) / float64(targetH)

	var fw, fh float64
	if ratio > targetRatio {
		fw = float64(targetW)
		fh = float64(targetW) / ratio
	} else {
		fh = float64(targetH)
		fw = float64(targetH) * ratio
	}

	width = int(math.Round(fw))
	height = int(math.Round(fh))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Compose rotates a bitmap clockwise by a right-angle rotation and scales it
// to fit inside the target box, preserving the aspect ratio. The output never
// exceeds the target in either dimension. Resampling uses a Lanczos filter
// and happens exactly once, after rotation.
func Compose(src image.Image, rotationDegrees, targetW, targetH int) (image.Image, error) {
	if targetW <= 0 || targetH <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidTarget, targetW, targetH)
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrEmptySource
	}

	rotated, err := rotate(src, rotationDegrees)
	if err != nil {
		return nil, err
	}

	rb := rotated.Bounds()
	fw, fh := FitWithin(rb.Dx(), rb.Dy(), targetW, targetH)
	if fw == rb.Dx() && fh == rb.Dy() {
		return rotated, nil
	}
	return imaging.Resize(rotated, fw, fh, imaging.Lanczos), nil
}
