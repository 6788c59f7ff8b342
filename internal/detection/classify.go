package detection

import (
	"fmt"
	"math"
)

// Location is where a beanbag rests relative to the board.
type Location string

const (
	LocationIn      Location = "in"
	LocationOn      Location = "on"
	LocationOff     Location = "off"
	LocationUnknown Location = "unknown"
)

// Points returns the unsigned score of a bag at this location.
func (l Location) Points() int {
	switch l {
	case LocationIn:
		return 3
	case LocationOn:
		return 1
	default:
		return 0
	}
}

// ParseLocation converts a stored location name. Unrecognized names are an
// error.
func ParseLocation(s string) (Location, error) {
	switch l := Location(s); l {
	case LocationIn, LocationOn, LocationOff, LocationUnknown:
		return l, nil
	}
	return LocationUnknown, fmt.Errorf("unknown location %q", s)
}

// Classify places a beanbag relative to the board and hole.
//
// The result is unknown when the board is undetected (nil) or the hole is
// undetected (zero radius). Otherwise the bag's center decides:
//
//   - not strictly inside the board: off (centers on an edge are off)
//   - within the hole's bounding square, |dx| < r and |dy| < r: in
//   - otherwise: on
//
// The square test over-approximates the round hole near its corners.
func Classify(bag Rect, board *Rect, hole Circle) Location {
	if board == nil || !hole.Found() {
		return LocationUnknown
	}

	x, y := bag.Center()
	if !board.ContainsStrict(x, y) {
		return LocationOff
	}

	r := float64(hole.Radius)
	if math.Abs(x-float64(hole.X)) < r && math.Abs(y-float64(hole.Y)) < r {
		return LocationIn
	}
	return LocationOn
}
