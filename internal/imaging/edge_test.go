package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanny_VerticalEdge(t *testing.T) {
	img := createInMemoryImage(50, 50, color.Black)
	fillRect(img, image.Rect(25, 0, 50, 50), color.White)

	edges := Canny(img, 25, 50, 0)
	require.Equal(t, 50, edges.Width)
	require.Equal(t, 50, edges.Height)

	for y := 1; y < 49; y++ {
		found := false
		for x := 23; x <= 26; x++ {
			if edges.At(x, y) {
				found = true
			}
		}
		require.True(t, found, "row %d has no edge near x=25", y)

		for x := 0; x < 20; x++ {
			require.False(t, edges.At(x, y), "spurious edge at (%d,%d)", x, y)
		}
	}

	// dark-to-bright left to right gives a positive horizontal gradient
	require.Greater(t, edges.DX[10*50+24], 0.0)
}

func TestCanny_UniformImage(t *testing.T) {
	img := createInMemoryImage(30, 30, color.RGBA{128, 128, 128, 255})

	edges := Canny(img, 25, 50, 1)
	for i, e := range edges.Edge {
		require.False(t, e, "unexpected edge at index %d", i)
	}
}

func TestCanny_ThresholdsSuppressWeakEdges(t *testing.T) {
	img := createInMemoryImage(40, 40, color.RGBA{100, 100, 100, 255})
	fillRect(img, image.Rect(20, 0, 40, 40), color.RGBA{105, 105, 105, 255})

	// a step of 5 gray levels gives |Gx| of about 20
	weak := Canny(img, 5, 10, 0)
	strict := Canny(img, 100, 200, 0)

	count := func(e *EdgeMap) int {
		n := 0
		for _, v := range e.Edge {
			if v {
				n++
			}
		}
		return n
	}
	require.Greater(t, count(weak), 0)
	require.Equal(t, 0, count(strict))
}

func TestGrayscale_Blur(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)
	w, h, pix := Grayscale(img, 2)
	require.Equal(t, 20, w)
	require.Equal(t, 20, h)
	require.InDelta(t, 255, pix[10*20+10], 1)
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, clamp(-5, 0, 10))
	require.Equal(t, 10, clamp(15, 0, 10))
	require.Equal(t, 7, clamp(7, 0, 10))
}
