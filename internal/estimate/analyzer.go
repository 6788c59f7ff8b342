// Package estimate runs the cornhole state-estimation pipeline over one image
// and produces its annotation record and score.
package estimate

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/cyclopcam/logs"

	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/detection"
	"github.com/ironsheep/chuckvision/internal/imaging"
	"github.com/ironsheep/chuckvision/internal/logging"
)

// HSVConverter converts an image to per-pixel HSV. The default is
// imaging.NewHSVImage.
type HSVConverter func(img image.Image) (*imaging.HSVImage, error)

// Analyzer turns images into frames. It holds only configuration and
// stateless collaborators, so one Analyzer may serve many goroutines.
type Analyzer struct {
	cfg      config.Config
	toHSV    HSVConverter
	finder   detection.ContourFinder
	detector detection.CircleDetector
	policy   detection.SelectionPolicy
	log      logs.Log

	overlay  bool
	detailed bool
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithContourFinder replaces the pure-Go contour tracer.
func WithContourFinder(f detection.ContourFinder) Option {
	return func(a *Analyzer) { a.finder = f }
}

// WithCircleDetector replaces the pure-Go Hough transform.
func WithCircleDetector(d detection.CircleDetector) Option {
	return func(a *Analyzer) { a.detector = d }
}

// WithSelectionPolicy replaces the nearest-to-expected hole tie-break.
func WithSelectionPolicy(p detection.SelectionPolicy) Option {
	return func(a *Analyzer) { a.policy = p }
}

// WithHSVConverter replaces the color conversion.
func WithHSVConverter(c HSVConverter) Option {
	return func(a *Analyzer) { a.toHSV = c }
}

// WithLogger sets the logger for per-phase decisions.
func WithLogger(l logs.Log) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithOverlay makes Analyze return an annotated copy of the image. Detailed
// overlays also draw the raw contours and every Hough candidate.
func WithOverlay(detailed bool) Option {
	return func(a *Analyzer) {
		a.overlay = true
		a.detailed = detailed
	}
}

// New validates cfg and builds an Analyzer. An invalid config fails with an
// error wrapping config.ErrInvalidConfig.
func New(cfg config.Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{
		cfg:      cfg,
		toHSV:    imaging.NewHSVImage,
		finder:   detection.BorderTracer{},
		detector: cfg.HoughDetector(),
		policy:   detection.NearestToExpected{OffsetY: cfg.CornholeExpectedOffsetY},
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	return a, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() config.Config {
	return a.cfg
}

// Result is the outcome of analyzing one image.
type Result struct {
	Frame Frame
	Score int

	// Phase records which cornhole detector produced the hole.
	Phase detection.Phase

	// Annotated is a copy of the input with detections drawn, or nil when the
	// analyzer was built without WithOverlay.
	Annotated image.Image
}

// AnalyzeFile decodes path and analyzes it, using the base file name as the
// frame reference. Unreadable files fail with imaging.ErrInvalidInput.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(img, filepath.Base(path))
}

// Analyze runs the pipeline over img:
//
//  1. HSV masks for red, blue, board and hole colors
//  2. beanbag rectangles per color
//  3. board rectangle
//  4. cornhole circle, only with a board
//  5. location of every beanbag, then the score
//
// Detection misses are data: an undetected board is a zero rectangle and
// makes every location unknown, an undetected hole has radius 0. Only an
// invalid image is an error. img is never modified.
func (a *Analyzer) Analyze(img image.Image, reference string) (*Result, error) {
	if err := imaging.CheckImage(img); err != nil {
		return nil, err
	}
	hsv, err := a.toHSV(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reference, err)
	}

	redMask := hsv.Segment(a.cfg.RedLow, a.cfg.RedHigh)
	blueMask := hsv.Segment(a.cfg.Blue)
	boardMask := hsv.Segment(a.cfg.Board)
	holeMask := hsv.Segment(a.cfg.Cornhole)

	params := a.cfg.BeanbagParams()
	redContours := a.finder.FindContours(redMask)
	blueContours := a.finder.FindContours(blueMask)
	redRects := detection.BeanbagRects(redContours, params)
	blueRects := detection.BeanbagRects(blueContours, params)

	boardRect, boardContours := detection.BoardFromContours(
		a.finder.FindContours(boardMask), hsv.Width, hsv.Height, a.cfg.BoardMargins)
	var board *detection.Rect
	if len(boardContours) > 0 {
		board = &boardRect
	} else {
		a.log.Debugf("%s: board not detected", reference)
	}

	locator := detection.CornholeLocator{
		Finder:   a.finder,
		Detector: a.detector,
		Policy:   a.policy,
		Params:   a.cfg.CornholeParams(),
	}
	hole := locator.Locate(img, holeMask, board)
	if board != nil {
		a.log.Debugf("%s: cornhole %+v via %v (%d in-board candidates)",
			reference, hole.Circle, hole.Phase, len(hole.Candidates))
	}

	frame := Frame{Reference: reference, BeanBags: []BeanBag{}}
	for _, group := range []struct {
		color Color
		rects []detection.Rect
	}{
		{ColorRed, redRects},
		{ColorBlue, blueRects},
	} {
		for _, r := range group.rects {
			frame.BeanBags = append(frame.BeanBags, BeanBag{
				Rect:     r,
				Color:    group.color,
				Location: detection.Classify(r, board, hole.Circle),
			})
		}
	}
	if board != nil {
		frame.Board = Board{Rect: boardRect, Hole: hole.Circle}
	}

	result := &Result{
		Frame: frame,
		Score: frame.Score(),
		Phase: hole.Phase,
	}
	a.log.Debugf("%s: %d red, %d blue, score %+d", reference, len(redRects), len(blueRects), result.Score)

	if a.overlay {
		o := imaging.NewOverlay(img)
		if a.detailed {
			drawContours(o, redContours, imaging.OverlayRed)
			drawContours(o, blueContours, imaging.OverlayBlue)
			drawContours(o, boardContours, imaging.OverlayBoard)
			drawContours(o, hole.Contours, imaging.OverlayCornhole)
			for _, c := range hole.Candidates {
				o.Circle(c.X, c.Y, c.Radius, imaging.OverlayCornhole, 1)
			}
		}
		for _, b := range frame.BeanBags {
			c := imaging.OverlayRed
			if b.Color == ColorBlue {
				c = imaging.OverlayBlue
			}
			o.Rect(b.Rect.Image(), c, 2)
		}
		if board != nil {
			o.Rect(board.Image(), imaging.OverlayBoard, 2)
		}
		o.Circle(hole.Circle.X, hole.Circle.Y, hole.Circle.Radius, imaging.OverlayCornhole, 2)
		o.Caption(fmt.Sprintf("%s  score %+d", reference, result.Score))
		result.Annotated = o.Image()
	}
	return result, nil
}

func drawContours(o *imaging.Overlay, contours []detection.Contour, c color.Color) {
	for _, contour := range contours {
		pts := make([]image.Point, len(contour))
		for i, p := range contour {
			pts[i] = image.Point{X: p.X, Y: p.Y}
		}
		o.Polygon(pts, c, 1)
	}
}
