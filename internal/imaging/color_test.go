package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color color.RGBA
		want  HSV
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, HSV{0, 255, 255}},
		{"pure green", color.RGBA{0, 255, 0, 255}, HSV{60, 255, 255}},
		{"pure blue", color.RGBA{0, 0, 255, 255}, HSV{120, 255, 255}},
		{"white", color.RGBA{255, 255, 255, 255}, HSV{0, 0, 255}},
		{"black", color.RGBA{0, 0, 0, 255}, HSV{0, 0, 0}},
		{"pink wraps high", color.RGBA{255, 0, 128, 255}, HSV{165, 255, 255}},
		{"dark red near wrap", color.RGBA{200, 0, 20, 255}, HSV{177, 255, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToHSV(tt.color))
		})
	}
}

func TestHSVRange_Contains(t *testing.T) {
	r := NewHSVRange(100, 120, 0, 140, 255, 255)

	require.True(t, r.Contains(HSV{120, 255, 255}))
	require.True(t, r.Contains(HSV{100, 120, 0}), "lower bound is inclusive")
	require.True(t, r.Contains(HSV{140, 255, 255}), "upper bound is inclusive")
	require.False(t, r.Contains(HSV{99, 200, 200}))
	require.False(t, r.Contains(HSV{120, 119, 200}))
}

func TestHSVRange_Validate(t *testing.T) {
	require.NoError(t, NewHSVRange(0, 70, 50, 10, 255, 255).Validate())
	require.Error(t, NewHSVRange(20, 70, 50, 10, 255, 255).Validate())
	require.Error(t, NewHSVRange(0, 70, 60, 10, 255, 50).Validate())
}

func TestHSVRange_String(t *testing.T) {
	require.Equal(t, "([0, 70, 50], [10, 255, 255])", NewHSVRange(0, 70, 50, 10, 255, 255).String())
}

func TestSampleHSV(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{0, 0, 255, 255})

	c, err := SampleHSV(img, 5, 5)
	require.NoError(t, err)
	require.Equal(t, HSV{120, 255, 255}, c)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := SampleHSV(img, p[0], p[1])
		require.Error(t, err, "point %v", p)
	}

	_, err = SampleHSV(nil, 0, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}
