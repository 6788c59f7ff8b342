package detection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testBeanbagParams = BeanbagParams{MinArea: 100, MaxWidth: 109, MaxHeight: 109}

func TestSplitBeanbag(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want []Rect
	}{
		{
			name: "within limits",
			in:   Rect{X: 10, Y: 20, Width: 90, Height: 95},
			want: []Rect{{X: 10, Y: 20, Width: 90, Height: 95}},
		},
		{
			name: "exactly at limits",
			in:   Rect{X: 0, Y: 0, Width: 109, Height: 109},
			want: []Rect{{X: 0, Y: 0, Width: 109, Height: 109}},
		},
		{
			name: "wide and short splits width-wise",
			in:   Rect{X: 10, Y: 20, Width: 200, Height: 90},
			want: []Rect{
				{X: 10, Y: 20, Width: 100, Height: 90},
				{X: 110, Y: 20, Width: 100, Height: 90},
			},
		},
		{
			name: "wide and taller splits height-wise",
			in:   Rect{X: 10, Y: 20, Width: 120, Height: 200},
			want: []Rect{
				{X: 10, Y: 20, Width: 120, Height: 100},
				{X: 10, Y: 120, Width: 120, Height: 100},
			},
		},
		{
			name: "square over width splits width-wise",
			in:   Rect{X: 0, Y: 0, Width: 150, Height: 150},
			want: []Rect{
				{X: 0, Y: 0, Width: 75, Height: 150},
				{X: 75, Y: 0, Width: 75, Height: 150},
			},
		},
		{
			name: "only height over",
			in:   Rect{X: 5, Y: 5, Width: 80, Height: 190},
			want: []Rect{
				{X: 5, Y: 5, Width: 80, Height: 95},
				{X: 5, Y: 100, Width: 80, Height: 95},
			},
		},
		{
			name: "odd width drops last column",
			in:   Rect{X: 0, Y: 0, Width: 201, Height: 50},
			want: []Rect{
				{X: 0, Y: 0, Width: 100, Height: 50},
				{X: 100, Y: 0, Width: 100, Height: 50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitBeanbag(tt.in, 109, 109))
		})
	}
}

func TestSplitBeanbag_HalvesShareOneAxis(t *testing.T) {
	for w := 110; w <= 260; w += 7 {
		for h := 1; h <= w; h += 11 {
			r := Rect{X: 3, Y: 7, Width: w, Height: h}
			got := SplitBeanbag(r, 109, 109)
			require.Len(t, got, 2)

			// wide rectangles split across their width
			require.Equal(t, got[0].Width, got[1].Width)
			require.Equal(t, r.X, got[0].X)
			require.Equal(t, r.X+w/2, got[1].X)
			require.Equal(t, 2*(w/2), got[0].Width+got[1].Width)
			for _, half := range got {
				require.Equal(t, r.Y, half.Y)
				require.Equal(t, r.Height, half.Height)
			}
		}
	}
}

func TestLocateBeanbags_SingleBlobRoundTrip(t *testing.T) {
	blob := Rect{X: 40, Y: 30, Width: 60, Height: 45}
	mask := maskWithRects(200, 150, blob)

	got := LocateBeanbags(mask, BorderTracer{}, testBeanbagParams)
	require.Equal(t, []Rect{blob}, got)
}

func TestLocateBeanbags_FiltersNoise(t *testing.T) {
	mask := maskWithRects(200, 150,
		Rect{X: 5, Y: 5, Width: 9, Height: 9}, // 81 px², below the floor
		Rect{X: 50, Y: 50, Width: 10, Height: 10},
	)

	got := LocateBeanbags(mask, BorderTracer{}, testBeanbagParams)
	require.Equal(t, []Rect{{X: 50, Y: 50, Width: 10, Height: 10}}, got)
}

func TestLocateBeanbags_SplitsMergedBags(t *testing.T) {
	mask := maskWithRects(400, 200, Rect{X: 20, Y: 40, Width: 190, Height: 95})

	got := LocateBeanbags(mask, BorderTracer{}, testBeanbagParams)
	require.Equal(t, []Rect{
		{X: 20, Y: 40, Width: 95, Height: 95},
		{X: 115, Y: 40, Width: 95, Height: 95},
	}, got)
}

func TestLocateBeanbags_EmptyMask(t *testing.T) {
	mask := maskWithRects(100, 100)
	require.Empty(t, LocateBeanbags(mask, BorderTracer{}, testBeanbagParams))
}
