package detection

import (
	"image"
	"math"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Rect is an axis-aligned rectangle with (X, Y) at the top-left corner.
// Width and Height are never negative.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width × Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the midpoint ((x + x + w) / 2, (y + y + h) / 2).
func (r Rect) Center() (float64, float64) {
	return float64(2*r.X+r.Width) / 2, float64(2*r.Y+r.Height) / 2
}

// Contains reports whether (x, y) lies in the closed rectangle, edges included.
func (r Rect) Contains(x, y float64) bool {
	return float64(r.X) <= x && x <= float64(r.X+r.Width) &&
		float64(r.Y) <= y && y <= float64(r.Y+r.Height)
}

// ContainsStrict reports whether (x, y) lies in the open rectangle. Points on
// an edge are outside.
func (r Rect) ContainsStrict(x, y float64) bool {
	return float64(r.X) < x && x < float64(r.X+r.Width) &&
		float64(r.Y) < y && y < float64(r.Y+r.Height)
}

// Image converts to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// BoundingRect returns the smallest rectangle covering every point, counted in
// whole pixels: a single point yields a 1x1 rectangle. No points yields the
// zero Rect.
func BoundingRect(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Circle is a circle with integer center and radius. A zero radius means "not
// found" and is never a valid detection.
type Circle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Found reports whether the circle is a real detection.
func (c Circle) Found() bool {
	return c.Radius > 0
}

// DistanceTo returns the Euclidean distance from the circle center to (x, y).
func (c Circle) DistanceTo(x, y float64) float64 {
	return math.Hypot(float64(c.X)-x, float64(c.Y)-y)
}
