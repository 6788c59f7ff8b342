package detection

import (
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// BeanbagParams holds the size thresholds of the beanbag locator, in pixels.
type BeanbagParams struct {
	// MinArea rejects rectangles smaller than this (noise).
	MinArea int

	// MaxWidth and MaxHeight are the largest extents of a single bag. Larger
	// rectangles are assumed to be two touching bags and are split.
	MaxWidth  int
	MaxHeight int
}

// LocateBeanbags finds beanbag rectangles in a color mask. An empty result is
// a valid outcome.
func LocateBeanbags(mask *imaging.Mask, finder ContourFinder, p BeanbagParams) []Rect {
	return BeanbagRects(finder.FindContours(mask), p)
}

// BeanbagRects converts contours into beanbag rectangles: each contour's
// bounding rectangle, dropped when its area is below MinArea and split by
// SplitBeanbag otherwise.
func BeanbagRects(contours []Contour, p BeanbagParams) []Rect {
	var rects []Rect
	for _, c := range contours {
		r := BoundingRect(c)
		if r.Area() < p.MinArea {
			continue
		}
		rects = append(rects, SplitBeanbag(r, p.MaxWidth, p.MaxHeight)...)
	}
	return rects
}

// SplitBeanbag splits a rectangle that is too large for one bag into two
// halves.
//
//   - width over maxWidth: split along the longer axis, height-wise when the
//     rectangle is taller than wide, width-wise otherwise.
//   - only height over maxHeight: split height-wise.
//   - otherwise the rectangle is returned unchanged.
//
// Halves use integer division, so an odd extent loses its last pixel.
func SplitBeanbag(r Rect, maxWidth, maxHeight int) []Rect {
	switch {
	case r.Width > maxWidth:
		if r.Height > r.Width {
			return splitHeight(r)
		}
		return splitWidth(r)
	case r.Height > maxHeight:
		return splitHeight(r)
	default:
		return []Rect{r}
	}
}

func splitHeight(r Rect) []Rect {
	h := r.Height / 2
	return []Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: h},
		{X: r.X, Y: r.Y + h, Width: r.Width, Height: h},
	}
}

func splitWidth(r Rect) []Rect {
	w := r.Width / 2
	return []Rect{
		{X: r.X, Y: r.Y, Width: w, Height: r.Height},
		{X: r.X + w, Y: r.Y, Width: w, Height: r.Height},
	}
}
