package estimate

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	sceneBackground = color.RGBA{128, 128, 128, 255}
	sceneBoard      = color.RGBA{233, 236, 236, 255} // H 90, S 3, V 236
	sceneHole       = color.RGBA{0, 0, 0, 255}
	sceneRed        = color.RGBA{255, 0, 0, 255}
	sceneBlue       = color.RGBA{0, 0, 255, 255}
)

func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), c)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func fillDisk(img *image.RGBA, cx, cy, radius int, c color.Color) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}
}

// createScene draws a 500x400 frame:
//   - board (100,100,300,200) with a radius-40 hole at (250,185)
//   - red bag partly over the hole, centered (265,185)
//   - red bag on the board, centered (140,250)
//   - blue bag off the board, centered (40,340)
func createScene() *image.RGBA {
	img := createTestImage(500, 400, sceneBackground)
	fillRect(img, image.Rect(100, 100, 400, 300), sceneBoard)
	fillDisk(img, 250, 185, 40, sceneHole)
	fillRect(img, image.Rect(250, 170, 280, 200), sceneRed)
	fillRect(img, image.Rect(120, 230, 160, 270), sceneRed)
	fillRect(img, image.Rect(20, 320, 60, 360), sceneBlue)
	return img
}

func writeTestPNG(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}
