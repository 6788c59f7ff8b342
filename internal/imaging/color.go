package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSV is a color in the 8-bit hue/saturation/value convention used by OpenCV
// and by the calibration tooling:
//   - H: 0-179 (degrees halved, so 0=red, 60=green, 120=blue)
//   - S: 0-255 (0=gray, 255=vivid)
//   - V: 0-255 (0=black, 255=brightest)
//
// Thresholds are expressed in this space because hue is far less sensitive to
// lighting than raw channel intensities.
type HSV struct {
	H uint8 `json:"h" yaml:"h"`
	S uint8 `json:"s" yaml:"s"`
	V uint8 `json:"v" yaml:"v"`
}

// HSVRange is an inclusive lower/upper bound on all three HSV channels.
type HSVRange struct {
	Lower HSV `json:"lower" yaml:"lower"`
	Upper HSV `json:"upper" yaml:"upper"`
}

// NewHSVRange builds a range from the (min, max) triples used in the
// calibration output, e.g. NewHSVRange(0, 70, 50, 10, 255, 255).
func NewHSVRange(hLo, sLo, vLo, hHi, sHi, vHi uint8) HSVRange {
	return HSVRange{
		Lower: HSV{H: hLo, S: sLo, V: vLo},
		Upper: HSV{H: hHi, S: sHi, V: vHi},
	}
}

// Contains reports whether c lies inside the range on every channel.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// Validate returns an error if any lower bound exceeds its upper bound.
func (r HSVRange) Validate() error {
	if r.Lower.H > r.Upper.H || r.Lower.S > r.Upper.S || r.Lower.V > r.Upper.V {
		return fmt.Errorf("inverted HSV range %v..%v", r.Lower, r.Upper)
	}
	return nil
}

func (r HSVRange) String() string {
	return fmt.Sprintf("([%d, %d, %d], [%d, %d, %d])",
		r.Lower.H, r.Lower.S, r.Lower.V, r.Upper.H, r.Upper.S, r.Upper.V)
}

// ToHSV converts any color to 8-bit HSV.
func ToHSV(c color.Color) HSV {
	r, g, b, _ := c.RGBA()
	return rgbToHSV(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// rgbToHSV converts 8-bit RGB using go-colorful and rescales the result:
// hue degrees are halved and rounded, saturation and value are scaled to 0-255.
// A hue that rounds up to 180 wraps to 0.
func rgbToHSV(r, g, b uint8) HSV {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()

	hue := math.Round(h / 2)
	if hue >= 180 {
		hue = 0
	}
	return HSV{
		H: uint8(hue),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// SampleHSV returns the HSV value of the pixel at (x, y) in image coordinates.
func SampleHSV(img image.Image, x, y int) (HSV, error) {
	if err := CheckImage(img); err != nil {
		return HSV{}, err
	}
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return HSV{}, fmt.Errorf("coordinates (%d,%d) outside image bounds %v", x, y, img.Bounds())
	}
	return ToHSV(img.At(x, y)), nil
}
