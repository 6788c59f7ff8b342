package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Mask is a binary image the same size as its source. Coordinates are 0-based
// relative to the source's Bounds().Min, so (0,0) is always the top-left pixel.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask allocates an all-false mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

// At returns the mask value at (x, y). Points outside the mask are false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set assigns the mask value at (x, y). Points outside the mask are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// Or sets every pixel that is set in o. Both masks must be the same size.
func (m *Mask) Or(o *Mask) {
	for i, v := range o.Pix {
		if v {
			m.Pix[i] = true
		}
	}
}

// Gray renders the mask as a 0/255 grayscale image.
func (m *Mask) Gray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v {
			g.Pix[(i/m.Width)*g.Stride+i%m.Width] = 255
		}
	}
	return g
}

// MaskFromGray sets every nonzero pixel of g.
func MaskFromGray(g *image.Gray) *Mask {
	b := g.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if g.GrayAt(b.Min.X+x, b.Min.Y+y) != (color.Gray{}) {
				m.Pix[y*m.Width+x] = true
			}
		}
	}
	return m
}

// HSVImage holds the HSV value of every pixel of a source image, so several
// masks can be cut from one conversion.
type HSVImage struct {
	Width  int
	Height int
	Pix    []HSV
}

// NewHSVImage converts img to HSV. Returns ErrInvalidInput for a nil or
// empty image.
func NewHSVImage(img image.Image) (*HSVImage, error) {
	if err := CheckImage(img); err != nil {
		return nil, err
	}

	// Clone normalizes every source color model to 8-bit NRGBA with 0-based bounds.
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	out := &HSVImage{Width: w, Height: h, Pix: make([]HSV, w*h)}

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			out.Pix[y*w+x] = rgbToHSV(row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return out, nil
}

// Segment returns a mask of every pixel inside at least one of the ranges.
func (h *HSVImage) Segment(ranges ...HSVRange) *Mask {
	mask := NewMask(h.Width, h.Height)
	for i, c := range h.Pix {
		for _, r := range ranges {
			if r.Contains(c) {
				mask.Pix[i] = true
				break
			}
		}
	}
	return mask
}

// Segment thresholds an image into a mask of every pixel whose HSV value lies
// inside at least one of the given ranges.
//
// Red needs two ranges because its hue wraps around 0/180; every other target
// uses a single range. The ranges are combined with a logical OR.
//
// Returns ErrInvalidInput for a nil or empty image, or when no ranges are given.
func Segment(img image.Image, ranges ...HSVRange) (*Mask, error) {
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: segment: no color ranges given", ErrInvalidInput)
	}
	hsv, err := NewHSVImage(img)
	if err != nil {
		return nil, err
	}
	return hsv.Segment(ranges...), nil
}
