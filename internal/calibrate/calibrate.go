// Package calibrate derives HSV threshold ranges from sample images, such as
// a crop containing a single beanbag.
package calibrate

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/chuckvision/internal/imaging"
)

// ErrInvalidAlpha is returned for a tolerance outside [0, 50].
var ErrInvalidAlpha = errors.New("alpha must be between 0 and 50")

// DefaultAlpha is the tolerance used when none is given.
const DefaultAlpha = 5

// Bounds returns, per HSV channel, the alpha and 100-alpha percentiles of the
// pixels in img. A non-nil region restricts sampling to that rectangle, which
// must lie inside the image.
//
// alpha trims outliers: 0 spans every pixel, 50 collapses each channel to its
// median.
func Bounds(img image.Image, region *image.Rectangle, alpha float64) (imaging.HSVRange, error) {
	if math.IsNaN(alpha) || alpha < 0 || alpha > 50 {
		return imaging.HSVRange{}, fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	if region != nil {
		cropped, err := imaging.Crop(img, *region)
		if err != nil {
			return imaging.HSVRange{}, err
		}
		img = cropped
	}
	hsv, err := imaging.NewHSVImage(img)
	if err != nil {
		return imaging.HSVRange{}, err
	}

	n := len(hsv.Pix)
	h, s, v := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, c := range hsv.Pix {
		h[i], s[i], v[i] = float64(c.H), float64(c.S), float64(c.V)
	}

	lo, hi := alpha/100, 1-alpha/100
	var r imaging.HSVRange
	r.Lower.H, r.Upper.H = channelBounds(h, lo, hi)
	r.Lower.S, r.Upper.S = channelBounds(s, lo, hi)
	r.Lower.V, r.Upper.V = channelBounds(v, lo, hi)
	return r, nil
}

func channelBounds(x []float64, lo, hi float64) (uint8, uint8) {
	sort.Float64s(x)
	return uint8(stat.Quantile(lo, stat.Empirical, x, nil)),
		uint8(stat.Quantile(hi, stat.Empirical, x, nil))
}
