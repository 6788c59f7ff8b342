// Package acceptance measures pipeline accuracy against a ground-truth
// dataset: per-value percent error and per-image score difference.
package acceptance

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/bmharper/flatbush-go"
	"github.com/cyclopcam/logs"

	"github.com/ironsheep/chuckvision/internal/detection"
	"github.com/ironsheep/chuckvision/internal/estimate"
)

// ErrMissingTruth means the dataset has no entry for an image.
var ErrMissingTruth = errors.New("no ground truth for image")

// Dataset is the ground truth, one frame per image reference.
type Dataset struct {
	Frames []estimate.Frame
	byRef  map[string]int
}

// NewDataset indexes frames by reference. Later duplicates win.
func NewDataset(frames []estimate.Frame) *Dataset {
	d := &Dataset{Frames: frames, byRef: make(map[string]int, len(frames))}
	for i, f := range frames {
		d.byRef[f.Reference] = i
	}
	return d
}

// LoadDataset reads a JSON array of frame annotations.
func LoadDataset(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var frames []estimate.Frame
	if err := json.Unmarshal(b, &frames); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return NewDataset(frames), nil
}

// Truth returns the ground truth for reference.
func (d *Dataset) Truth(reference string) (estimate.Frame, error) {
	i, ok := d.byRef[reference]
	if !ok {
		return estimate.Frame{}, fmt.Errorf("%w: %s", ErrMissingTruth, reference)
	}
	return d.Frames[i], nil
}

// PointRow compares one measured value with its truth.
type PointRow struct {
	Reference    string
	Value        string
	Experimental float64
	Actual       float64
	PercentError float64
}

// ScoreRow compares one image's score with its truth.
type ScoreRow struct {
	Reference    string
	Experimental int
	Actual       int
	Difference   int
}

// Comparison is the outcome for one image.
type Comparison struct {
	Points []PointRow
	Score  ScoreRow

	// Unmatched counts detected beanbags with no truth bag of their color.
	Unmatched int
}

// PercentError returns |exp - real| / |real| × 100. A zero real value gives 0
// when exp is also zero and 100 otherwise.
func PercentError(exp, real float64) float64 {
	if real == 0 {
		if exp == 0 {
			return 0
		}
		return 100
	}
	return math.Abs(exp-real) / math.Abs(real) * 100
}

// Compare measures exp against truth.
//
// Each detected beanbag is matched to the truth bag of the same color with the
// nearest center, and its center and size are compared. The board center and
// size are always compared. The hole is compared only when both truth and
// detection have one. Finally the scores are compared.
func Compare(exp, truth estimate.Frame) Comparison {
	var c Comparison
	ref := exp.Reference
	add := func(value string, e, a float64) {
		c.Points = append(c.Points, PointRow{
			Reference:    ref,
			Value:        value,
			Experimental: e,
			Actual:       a,
			PercentError: PercentError(e, a),
		})
	}

	indexes := map[estimate.Color]*centerIndex{}
	for _, color := range []estimate.Color{estimate.ColorRed, estimate.ColorBlue} {
		var rects []detection.Rect
		for _, b := range truth.BeanBags {
			if b.Color == color {
				rects = append(rects, b.Rect)
			}
		}
		indexes[color] = newCenterIndex(rects)
	}

	for _, bag := range exp.BeanBags {
		idx := indexes[bag.Color]
		if idx == nil {
			c.Unmatched++
			continue
		}
		match, ok := idx.nearest(bag.Rect)
		if !ok {
			c.Unmatched++
			continue
		}
		name := titleCase(string(bag.Color)) + " Beanbag"
		ex, ey := bag.Rect.Center()
		ax, ay := match.Center()
		add(name+" X", ex, ax)
		add(name+" Y", ey, ay)
		add(name+" Height", float64(bag.Rect.Height), float64(match.Height))
		add(name+" Width", float64(bag.Rect.Width), float64(match.Width))
	}

	ex, ey := exp.Board.Rect.Center()
	ax, ay := truth.Board.Rect.Center()
	add("Board X", ex, ax)
	add("Board Y", ey, ay)
	add("Board Height", float64(exp.Board.Rect.Height), float64(truth.Board.Rect.Height))
	add("Board Width", float64(exp.Board.Rect.Width), float64(truth.Board.Rect.Width))

	if truth.Board.Hole.Found() && exp.Board.Hole.Found() {
		eh, th := exp.Board.Hole, truth.Board.Hole
		add("Cornhole X", float64(eh.X), float64(th.X))
		add("Cornhole Y", float64(eh.Y), float64(th.Y))
		add("Cornhole Radius", float64(eh.Radius), float64(th.Radius))
	}

	es, ts := exp.Score(), truth.Score()
	diff := es - ts
	if diff < 0 {
		diff = -diff
	}
	c.Score = ScoreRow{Reference: ref, Experimental: es, Actual: ts, Difference: diff}
	return c
}

// Report collects comparisons over a whole run.
type Report struct {
	Points []PointRow
	Scores []ScoreRow

	// Missing lists references absent from the dataset.
	Missing []string

	Unmatched int
}

// BuildReport compares every frame against the dataset. Frames without truth
// are listed in Missing and skipped.
func BuildReport(d *Dataset, frames []estimate.Frame, log logs.Log) *Report {
	r := &Report{}
	for _, f := range frames {
		truth, err := d.Truth(f.Reference)
		if err != nil {
			if log != nil {
				log.Warnf("%v", err)
			}
			r.Missing = append(r.Missing, f.Reference)
			continue
		}
		c := Compare(f, truth)
		r.Points = append(r.Points, c.Points...)
		r.Scores = append(r.Scores, c.Score)
		r.Unmatched += c.Unmatched
	}
	return r
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// centerIndex finds the rectangle whose center is nearest a query center.
// Centers are stored doubled so they stay integral.
type centerIndex struct {
	rects  []detection.Rect
	search func(minX, minY, maxX, maxY int32, results []int) []int
}

// initialSearch is the first search half-width in doubled pixels.
const initialSearch = 128

func newCenterIndex(rects []detection.Rect) *centerIndex {
	idx := &centerIndex{rects: rects}
	if len(rects) == 0 {
		return idx
	}
	fb := flatbush.NewFlatbush[int32]()
	fb.Reserve(len(rects))
	for _, r := range rects {
		x, y := doubledCenter(r)
		fb.Add(x, y, x, y)
	}
	fb.Finish()
	idx.search = fb.SearchFast
	return idx
}

func doubledCenter(r detection.Rect) (int32, int32) {
	return int32(2*r.X + r.Width), int32(2*r.Y + r.Height)
}

// nearest returns the indexed rectangle closest to q by center distance. Equal
// distances go to the earlier rectangle.
func (c *centerIndex) nearest(q detection.Rect) (detection.Rect, bool) {
	if c.search == nil {
		return detection.Rect{}, false
	}
	qx, qy := doubledCenter(q)
	var hits []int

	best, bestDist := -1, math.Inf(1)
	for half := int64(initialSearch); half < 1<<30; half *= 2 {
		minX, minY := clampInt32(int64(qx)-half), clampInt32(int64(qy)-half)
		maxX, maxY := clampInt32(int64(qx)+half), clampInt32(int64(qy)+half)
		hits = c.search(minX, minY, maxX, maxY, hits[:0])
		for _, i := range hits {
			x, y := doubledCenter(c.rects[i])
			d := math.Hypot(float64(x-qx), float64(y-qy))
			if d < bestDist || (d == bestDist && i < best) {
				best, bestDist = i, d
			}
		}
		// Anything outside the window is farther than half.
		if best >= 0 && bestDist <= float64(half) {
			return c.rects[best], true
		}
	}
	if best >= 0 {
		return c.rects[best], true
	}
	return detection.Rect{}, false
}

func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
