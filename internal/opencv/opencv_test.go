//go:build opencv

package opencv

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chuckvision/internal/detection"
	cvimg "github.com/ironsheep/chuckvision/internal/imaging"
)

func TestContourFinder_MatchesPureGo(t *testing.T) {
	m := cvimg.NewMask(100, 80)
	for y := 10; y < 30; y++ {
		for x := 20; x < 60; x++ {
			m.Set(x, y, true)
		}
	}

	cs := ContourFinder{}.FindContours(m)
	require.Len(t, cs, 1)
	require.Equal(t, detection.Rect{X: 20, Y: 10, Width: 40, Height: 20}, detection.BoundingRect(cs[0]))
}

func TestToHSV(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	hsv, err := ToHSV(img)
	require.NoError(t, err)
	require.Equal(t, cvimg.HSV{H: 120, S: 255, V: 255}, hsv.Pix[5])

	_, err = ToHSV(nil)
	require.ErrorIs(t, err, cvimg.ErrInvalidInput)
}

func TestCircleDetector(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 300, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			c := color.RGBA{R: 230, G: 230, B: 230, A: 255}
			if (x-150)*(x-150)+(y-140)*(y-140) <= 40*40 {
				c = color.RGBA{A: 255}
			}
			img.Set(x, y, c)
		}
	}

	d := CircleDetector{DP: 1.2, MinDist: 100, CannyHigh: 50, Votes: 20}
	circles := d.DetectCircles(img, 30, 50)
	require.NotEmpty(t, circles)
	require.InDelta(t, 150, circles[0].X, 3)
	require.InDelta(t, 140, circles[0].Y, 3)
	require.InDelta(t, 40, circles[0].Radius, 3)
}

func TestCircleFromVec_Rounds(t *testing.T) {
	require.Equal(t, detection.Circle{X: 150, Y: 141, Radius: 40}, circleFromVec([]float32{149.6, 140.5, 39.7}))
	require.Equal(t, detection.Circle{X: 10, Y: 20, Radius: 5}, circleFromVec([]float32{10.4, 19.5, 5.49}))
}
