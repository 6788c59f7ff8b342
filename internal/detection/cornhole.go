package detection

import (
	"image"
	"math"

	"github.com/ironsheep/chuckvision/internal/imaging"
)

// Phase identifies which stage of the cornhole locator produced its answer.
type Phase int

const (
	// PhaseNone means the hole was not found, or no board was available.
	PhaseNone Phase = iota
	// PhaseColorMask means the enclosing circle of the hole-colored regions
	// was accepted.
	PhaseColorMask
	// PhaseHough means the Hough fallback produced the answer.
	PhaseHough
)

func (p Phase) String() string {
	switch p {
	case PhaseColorMask:
		return "color_mask"
	case PhaseHough:
		return "hough"
	default:
		return "none"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// CornholeParams bounds the accepted hole radius, in pixels.
type CornholeParams struct {
	MinRadius int
	MaxRadius int
}

// SelectionPolicy picks one hole among Hough candidates that already lie
// inside the board.
type SelectionPolicy interface {
	Select(candidates []Circle, board Rect) (Circle, bool)
}

// NearestToExpected selects the candidate closest to where the hole usually
// is: horizontally centered on the board, OffsetY pixels below its top edge.
// Ties go to the earlier (stronger) candidate.
type NearestToExpected struct {
	OffsetY int
}

// Select implements SelectionPolicy.
func (n NearestToExpected) Select(candidates []Circle, board Rect) (Circle, bool) {
	if len(candidates) == 0 {
		return Circle{}, false
	}
	ex := float64(board.X) + float64(board.Width)/2
	ey := float64(board.Y + n.OffsetY)

	best := candidates[0]
	bestDist := best.DistanceTo(ex, ey)
	for _, c := range candidates[1:] {
		if d := c.DistanceTo(ex, ey); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, true
}

// CornholeLocator finds the board's hole in two phases: the enclosing circle
// of hole-colored regions on the board, then a Hough transform fallback.
type CornholeLocator struct {
	Finder   ContourFinder
	Detector CircleDetector
	Policy   SelectionPolicy
	Params   CornholeParams
}

// CornholeResult is the outcome of CornholeLocator.Locate. Circle has a zero
// radius when the hole was not found.
type CornholeResult struct {
	Circle Circle
	Phase  Phase

	// Contours are the hole-colored regions inside the board used by the
	// color-mask phase, whether or not it was accepted.
	Contours []Contour

	// Candidates are the in-board Hough candidates, when that phase ran.
	Candidates []Circle
}

// Locate runs the two phases in order.
//
//	board absent                      -> none
//	color mask accepted               -> PhaseColorMask
//	color mask rejected, Hough picked -> PhaseHough
//	otherwise                         -> none
//
// img is the source image for the Hough phase and mask the hole-color mask of
// the same image. A nil mask skips the color-mask phase.
func (l CornholeLocator) Locate(img image.Image, mask *imaging.Mask, board *Rect) CornholeResult {
	var result CornholeResult
	if board == nil {
		return result
	}

	circle, contours, ok := l.TryColorMask(mask, *board)
	result.Contours = contours
	if ok {
		result.Circle = circle
		result.Phase = PhaseColorMask
		return result
	}

	circle, candidates, ok := l.TryHough(img, *board)
	result.Candidates = candidates
	if ok {
		result.Circle = circle
		result.Phase = PhaseHough
	}
	return result
}

// TryColorMask fits the minimum enclosing circle over every hole-colored
// contour whose centroid lies inside the board, edges included. The circle is
// accepted only when its radius is within [MinRadius, MaxRadius].
func (l CornholeLocator) TryColorMask(mask *imaging.Mask, board Rect) (Circle, []Contour, bool) {
	if mask == nil || l.Finder == nil {
		return Circle{}, nil, false
	}

	var kept []Contour
	var points []Point
	for _, c := range l.Finder.FindContours(mask) {
		x, y, ok := c.Centroid()
		if !ok || !board.Contains(float64(x), float64(y)) {
			continue
		}
		kept = append(kept, c)
		points = append(points, c...)
	}
	if len(points) == 0 {
		return Circle{}, kept, false
	}

	cx, cy, r := MinEnclosingCircle(points)
	if r < float64(l.Params.MinRadius) || r > float64(l.Params.MaxRadius) {
		return Circle{}, kept, false
	}
	circle := Circle{
		X:      int(math.Round(cx)),
		Y:      int(math.Round(cy)),
		Radius: int(math.Round(r)),
	}
	return circle, kept, circle.Found()
}

// TryHough runs the circle detector over img, discards candidates centered
// outside the board (edges count as inside) and lets the policy choose.
func (l CornholeLocator) TryHough(img image.Image, board Rect) (Circle, []Circle, bool) {
	if img == nil || l.Detector == nil {
		return Circle{}, nil, false
	}

	var inBoard []Circle
	for _, c := range l.Detector.DetectCircles(img, l.Params.MinRadius, l.Params.MaxRadius) {
		if board.Contains(float64(c.X), float64(c.Y)) && c.Found() {
			inBoard = append(inBoard, c)
		}
	}

	policy := l.Policy
	if policy == nil {
		policy = NearestToExpected{}
	}
	circle, ok := policy.Select(inBoard, board)
	if !ok || !circle.Found() {
		return Circle{}, inBoard, false
	}
	return circle, inBoard, true
}
