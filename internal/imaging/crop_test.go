package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCrop(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	fillRect(img, image.Rect(40, 40, 60, 60), color.RGBA{0, 0, 255, 255})

	out, err := Crop(img, image.Rect(40, 40, 60, 60))
	require.NoError(t, err)
	require.Equal(t, 20, out.Bounds().Dx())
	require.Equal(t, 20, out.Bounds().Dy())

	c := ToHSV(out.At(out.Bounds().Min.X+10, out.Bounds().Min.Y+10))
	require.Equal(t, HSV{120, 255, 255}, c)
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name   string
		region image.Rectangle
	}{
		{"empty", image.Rect(10, 10, 10, 20)},
		{"negative origin", image.Rect(-1, 0, 50, 50)},
		{"too wide", image.Rect(0, 0, 101, 50)},
		{"too tall", image.Rect(0, 0, 50, 101)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.region)
			require.Error(t, err)
		})
	}
}
