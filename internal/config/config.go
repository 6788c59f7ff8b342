// Package config holds the tunable constants of the cornhole pipeline.
//
// A Config is a plain value: Load or Default produce one, Validate checks it,
// and the analyzer keeps its own copy. Pixel thresholds assume the camera
// setup of the reference dataset (roughly 95 px per beanbag); recalibrate the
// HSV ranges with the calibrate tool when the lighting changes.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/chuckvision/internal/detection"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// ErrInvalidConfig is wrapped by every validation and parse failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the static configuration of one deployment.
type Config struct {
	// Color ranges, in 8-bit OpenCV HSV. Red wraps around hue 0, so it uses
	// two ranges that are OR-ed together.
	RedLow   imaging.HSVRange `json:"red_low" yaml:"red_low"`
	RedHigh  imaging.HSVRange `json:"red_high" yaml:"red_high"`
	Blue     imaging.HSVRange `json:"blue" yaml:"blue"`
	Board    imaging.HSVRange `json:"board" yaml:"board"`
	Cornhole imaging.HSVRange `json:"cornhole" yaml:"cornhole"`

	// MinBeanbagArea is the smallest bounding-box area, in px², kept as a bag.
	MinBeanbagArea int `json:"min_beanbag_area" yaml:"min_beanbag_area"`
	// MaxBeanbagWidth and MaxBeanbagHeight are the largest single-bag extents
	// in px. Larger regions are split in two.
	MaxBeanbagWidth  int `json:"max_beanbag_width" yaml:"max_beanbag_width"`
	MaxBeanbagHeight int `json:"max_beanbag_height" yaml:"max_beanbag_height"`

	// Accepted hole radius range in px, for both detection phases.
	MinCornholeRadius int `json:"min_cornhole_radius" yaml:"min_cornhole_radius"`
	MaxCornholeRadius int `json:"max_cornhole_radius" yaml:"max_cornhole_radius"`

	// BoardMargins is the trusted interior; board-colored regions centered
	// outside it are ignored.
	BoardMargins detection.Margins `json:"board_margins" yaml:"board_margins"`

	// CornholeExpectedOffsetY is how far below the board's top edge the hole
	// center usually sits, in px.
	CornholeExpectedOffsetY int `json:"cornhole_expected_offset_y" yaml:"cornhole_expected_offset_y"`

	Hough Hough `json:"hough" yaml:"hough"`
}

// Hough tunes the circle transform used when the color mask does not yield a
// hole.
type Hough struct {
	DP         float64 `json:"dp" yaml:"dp"`                   // inverse accumulator resolution
	MinDist    float64 `json:"min_dist" yaml:"min_dist"`       // px between centers
	CannyHigh  float64 `json:"canny_high" yaml:"canny_high"`   // upper edge threshold
	Votes      int     `json:"votes" yaml:"votes"`             // accumulator threshold
	BlurRadius float64 `json:"blur_radius" yaml:"blur_radius"` // Gaussian blur before edges
}

// Default returns the configuration tuned on the reference dataset.
func Default() Config {
	return Config{
		RedLow:   imaging.NewHSVRange(0, 70, 50, 10, 255, 255),
		RedHigh:  imaging.NewHSVRange(170, 70, 50, 180, 255, 255),
		Blue:     imaging.NewHSVRange(100, 120, 0, 140, 255, 255),
		Board:    imaging.NewHSVRange(30, 2, 235, 120, 5, 238),
		Cornhole: imaging.NewHSVRange(0, 0, 0, 180, 255, 40),

		MinBeanbagArea:   100,
		MaxBeanbagWidth:  109,
		MaxBeanbagHeight: 109,

		MinCornholeRadius: 30,
		MaxCornholeRadius: 50,

		BoardMargins:            detection.Margins{Up: 0, Right: 50, Down: 0, Left: 0},
		CornholeExpectedOffsetY: 85,

		Hough: Hough{
			DP:         1.2,
			MinDist:    100,
			CannyHigh:  50,
			Votes:      30,
			BlurRadius: 1,
		},
	}
}

// Load reads a YAML file over the defaults: keys missing from the file keep
// their default value. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every threshold is usable. Errors wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	ranges := []struct {
		name string
		r    imaging.HSVRange
	}{
		{"red_low", c.RedLow},
		{"red_high", c.RedHigh},
		{"blue", c.Blue},
		{"board", c.Board},
		{"cornhole", c.Cornhole},
	}
	for _, nr := range ranges {
		if err := nr.r.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, nr.name, err)
		}
	}

	switch {
	case c.MinBeanbagArea < 0:
		return fmt.Errorf("%w: min_beanbag_area must not be negative", ErrInvalidConfig)
	case c.MaxBeanbagWidth <= 0 || c.MaxBeanbagHeight <= 0:
		return fmt.Errorf("%w: max beanbag width and height must be positive", ErrInvalidConfig)
	case c.MinCornholeRadius <= 0:
		return fmt.Errorf("%w: min_cornhole_radius must be positive", ErrInvalidConfig)
	case c.MinCornholeRadius > c.MaxCornholeRadius:
		return fmt.Errorf("%w: min_cornhole_radius %d exceeds max_cornhole_radius %d",
			ErrInvalidConfig, c.MinCornholeRadius, c.MaxCornholeRadius)
	case c.BoardMargins.Up < 0 || c.BoardMargins.Right < 0 || c.BoardMargins.Down < 0 || c.BoardMargins.Left < 0:
		return fmt.Errorf("%w: board margins must not be negative", ErrInvalidConfig)
	case c.Hough.DP <= 0:
		return fmt.Errorf("%w: hough dp must be positive", ErrInvalidConfig)
	case c.Hough.MinDist < 0 || c.Hough.CannyHigh <= 0 || c.Hough.Votes <= 0 || c.Hough.BlurRadius < 0:
		return fmt.Errorf("%w: hough thresholds out of range", ErrInvalidConfig)
	}
	return nil
}

// BeanbagParams returns the beanbag locator thresholds.
func (c Config) BeanbagParams() detection.BeanbagParams {
	return detection.BeanbagParams{
		MinArea:   c.MinBeanbagArea,
		MaxWidth:  c.MaxBeanbagWidth,
		MaxHeight: c.MaxBeanbagHeight,
	}
}

// CornholeParams returns the accepted hole radius range.
func (c Config) CornholeParams() detection.CornholeParams {
	return detection.CornholeParams{
		MinRadius: c.MinCornholeRadius,
		MaxRadius: c.MaxCornholeRadius,
	}
}

// HoughDetector returns the pure-Go circle detector tuned by c.Hough.
func (c Config) HoughDetector() detection.HoughDetector {
	return detection.HoughDetector{
		DP:         c.Hough.DP,
		MinDist:    c.Hough.MinDist,
		CannyHigh:  c.Hough.CannyHigh,
		Votes:      c.Hough.Votes,
		BlurRadius: c.Hough.BlurRadius,
	}
}
