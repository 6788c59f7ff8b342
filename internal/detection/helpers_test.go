package detection

import (
	"image"
	"image/color"

	"github.com/ironsheep/chuckvision/internal/imaging"
)

// maskWithRects creates a mask with each rectangle filled
func maskWithRects(width, height int, rects ...Rect) *imaging.Mask {
	m := imaging.NewMask(width, height)
	for _, r := range rects {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// fillDisk sets every mask pixel within radius of (cx, cy)
func fillDisk(m *imaging.Mask, cx, cy, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				m.Set(x, y, true)
			}
		}
	}
}

// createDiskImage creates a white image with a filled black disk
func createDiskImage(width, height, cx, cy, radius int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

// fixedDetector returns the same candidates for every image
type fixedDetector struct {
	circles []Circle
	calls   int
}

func (f *fixedDetector) DetectCircles(image.Image, int, int) []Circle {
	f.calls++
	return f.circles
}
