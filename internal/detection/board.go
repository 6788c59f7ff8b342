package detection

import (
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// Margins describe the trusted interior of an image in pixels from each edge.
// Board-colored regions whose centroid falls outside it are background.
type Margins struct {
	Up    int `json:"up" yaml:"up"`
	Right int `json:"right" yaml:"right"`
	Down  int `json:"down" yaml:"down"`
	Left  int `json:"left" yaml:"left"`
}

// Interior returns the trusted region of a width × height image. Its right
// and bottom edges are inclusive, unlike image.Rectangle.
func (m Margins) Interior(width, height int) Rect {
	return Rect{X: m.Left, Y: m.Up, Width: width - m.Right - m.Left, Height: height - m.Down - m.Up}
}

// LocateBoard finds the board rectangle in a board-color mask. ok is false
// when no region survives filtering; the board is then undetected and the
// returned rectangle must not be used.
func LocateBoard(mask *imaging.Mask, finder ContourFinder, margins Margins) (board Rect, ok bool) {
	if mask == nil {
		return Rect{}, false
	}
	board, kept := BoardFromContours(finder.FindContours(mask), mask.Width, mask.Height, margins)
	return board, len(kept) > 0
}

// BoardFromContours keeps the contours whose centroid lies inside the margins
// (edges included) and returns the bounding rectangle of all their points,
// along with the kept contours. Zero-area contours have no centroid and are
// dropped.
func BoardFromContours(contours []Contour, width, height int, margins Margins) (Rect, []Contour) {
	interior := margins.Interior(width, height)

	var kept []Contour
	var points []Point
	for _, c := range contours {
		x, y, ok := c.Centroid()
		if !ok || !interior.Contains(float64(x), float64(y)) {
			continue
		}
		kept = append(kept, c)
		points = append(points, c...)
	}
	if len(kept) == 0 {
		return Rect{}, nil
	}
	return BoundingRect(points), kept
}
