package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// EdgeMap is the output of Canny edge detection together with the Sobel
// gradients it was computed from. Circle detectors use the gradient direction
// at each edge pixel to vote for centers.
type EdgeMap struct {
	Width  int
	Height int

	// Edge marks pixels that survived non-maximum suppression and hysteresis.
	Edge []bool

	// DX and DY are the Sobel responses on the 0-255 grayscale image.
	DX []float64
	DY []float64
}

// At reports whether (x, y) is an edge pixel. Points outside the map are false.
func (e *EdgeMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= e.Width || y >= e.Height {
		return false
	}
	return e.Edge[y*e.Width+x]
}

// Grayscale returns the luminance of img as 0-255 values in row-major order,
// with an optional Gaussian blur applied first (blurRadius <= 0 disables it).
func Grayscale(img image.Image, blurRadius float64) (w, h int, pix []float64) {
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	w, h = b.Dx(), b.Dy()
	pix = make([]float64, w*h)

	if blurRadius > 0 {
		blurred := blur.Gaussian(gray, blurRadius)
		bb := blurred.Bounds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				// bild keeps gray input gray, so any channel is the luminance
				pix[y*w+x] = float64(blurred.RGBAAt(bb.Min.X+x, bb.Min.Y+y).R)
			}
		}
		return w, h, pix
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[y*w+x] = float64(gray.RGBAAt(b.Min.X+x, b.Min.Y+y).R)
		}
	}
	return w, h, pix
}

// Canny performs Canny edge detection on an image.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - low, high: Hysteresis thresholds on the L1 gradient magnitude
//     |Gx| + |Gy| of the 0-255 grayscale image. Pixels above high are strong
//     edges; pixels between low and high are kept only when connected to a
//     strong edge through other kept pixels.
//   - blurRadius: Gaussian blur radius applied before differentiation. Zero
//     disables blurring.
//
// # Algorithm
//
//  1. Grayscale conversion and optional blur (bild)
//  2. Sobel gradients (3x3, replicated borders)
//  3. Non-maximum suppression along the gradient direction
//  4. Hysteresis by flood fill from strong edges
func Canny(img image.Image, low, high, blurRadius float64) *EdgeMap {
	width, height, gray := Grayscale(img, blurRadius)

	dx := make([]float64, width*height)
	dy := make([]float64, width*height)
	mag := make([]float64, width*height)

	at := func(x, y int) float64 {
		return gray[clamp(y, 0, height-1)*width+clamp(x, 0, width-1)]
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) -
				2*at(x-1, y) + 2*at(x+1, y) -
				at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			i := y*width + x
			dx[i] = gx
			dy[i] = gy
			mag[i] = math.Abs(gx) + math.Abs(gy)
		}
	}

	// Non-maximum suppression. Border pixels are never edges.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			m := mag[i]
			if m < low {
				continue
			}

			angle := math.Atan2(dy[i], dx[i])
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = mag[i-1], mag[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = mag[i-width-1], mag[i+width+1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = mag[i-width], mag[i+width]
			default:
				n1, n2 = mag[i-width+1], mag[i+width-1]
			}

			// strict on one side so plateaus keep exactly one pixel
			if m > n1 && m >= n2 {
				suppressed[i] = m
			}
		}
	}

	edges := make([]bool, width*height)
	stack := make([]int, 0, 1024)
	for i, v := range suppressed {
		if v >= high && !edges[i] {
			edges[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for ky := -1; ky <= 1; ky++ {
			for kx := -1; kx <= 1; kx++ {
				px, py := x+kx, y+ky
				if px < 0 || py < 0 || px >= width || py >= height {
					continue
				}
				j := py*width + px
				if !edges[j] && suppressed[j] >= low {
					edges[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	return &EdgeMap{
		Width:  width,
		Height: height,
		Edge:   edges,
		DX:     dx,
		DY:     dy,
	}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
