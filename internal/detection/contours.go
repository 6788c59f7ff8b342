package detection

import (
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// Contour is the ordered outer boundary of one connected region of a mask.
// Consecutive points are 8-neighbors and the last point connects back to the
// first.
type Contour []Point

// ContourFinder extracts the external contours of a binary mask. Only outer
// boundaries are reported: regions lying inside a hole of another region are
// skipped.
type ContourFinder interface {
	FindContours(mask *imaging.Mask) []Contour
}

// BorderTracer is the pure-Go ContourFinder. Foreground regions are
// 8-connected and background regions 4-connected. Each region's boundary is
// walked with Moore-neighbor tracing starting from its top-left pixel, so the
// output order is the raster order of those starting pixels.
type BorderTracer struct{}

// moore lists the eight neighbor offsets clockwise (with Y pointing down),
// starting east.
var moore = [8]Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// FindContours implements ContourFinder.
func (BorderTracer) FindContours(mask *imaging.Mask) []Contour {
	if mask == nil || mask.Width == 0 || mask.Height == 0 {
		return nil
	}
	w, h := mask.Width, mask.Height
	outside := outsideBackground(mask)

	visited := make([]bool, w*h)
	var contours []Contour
	queue := make([]int, 0, 256)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if !mask.Pix[start] || visited[start] {
				continue
			}

			// Collect the component and check whether it touches the
			// background connected to the image border.
			external := false
			visited[start] = true
			queue = append(queue[:0], start)
			for len(queue) > 0 {
				i := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				px, py := i%w, i/w
				if px == 0 || py == 0 || px == w-1 || py == h-1 {
					external = true
				}
				for _, d := range moore {
					nx, ny := px+d.X, py+d.Y
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if mask.Pix[j] {
						if !visited[j] {
							visited[j] = true
							queue = append(queue, j)
						}
					} else if (d.X == 0 || d.Y == 0) && outside[j] {
						external = true
					}
				}
			}

			if external {
				contours = append(contours, traceBoundary(mask, Point{x, y}))
			}
		}
	}
	return contours
}

// outsideBackground marks the background pixels 4-connected to the image
// border. Background pixels left unmarked belong to holes.
func outsideBackground(mask *imaging.Mask) []bool {
	w, h := mask.Width, mask.Height
	outside := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))

	push := func(x, y int) {
		i := y*w + x
		if !mask.Pix[i] && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		if x > 0 {
			push(x-1, y)
		}
		if x < w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < h-1 {
			push(x, y+1)
		}
	}
	return outside
}

// traceBoundary walks the outer boundary of the region containing start,
// which must be the region's first pixel in raster order.
func traceBoundary(mask *imaging.Mask, start Point) Contour {
	contour := Contour{start}

	// The pixel west of the raster-first pixel is always background.
	current := start
	backtrack := Point{start.X - 1, start.Y}

	var second Point
	haveSecond := false

	// Each boundary pixel is entered at most once per direction.
	limit := 8*mask.Count() + 8
	for steps := 0; steps < limit; steps++ {
		from := mooreIndex(backtrack.X-current.X, backtrack.Y-current.Y)

		var next Point
		found := false
		prev := backtrack
		for i := 1; i <= 8; i++ {
			d := moore[(from+i)%8]
			n := Point{current.X + d.X, current.Y + d.Y}
			if mask.At(n.X, n.Y) {
				next = n
				found = true
				break
			}
			prev = n
		}
		if !found {
			// isolated pixel
			break
		}

		if haveSecond && current == start && next == second {
			// Back at the start about to repeat the first move: drop the
			// duplicated start point and stop.
			contour = contour[:len(contour)-1]
			break
		}
		if !haveSecond {
			second = next
			haveSecond = true
		}

		contour = append(contour, next)
		backtrack = prev
		current = next
	}
	return contour
}

// mooreIndex returns the index in moore of the offset (dx, dy).
func mooreIndex(dx, dy int) int {
	for i, d := range moore {
		if d.X == dx && d.Y == dy {
			return i
		}
	}
	return 4
}

// Moments holds the spatial moments of a contour polygon.
type Moments struct {
	M00 float64
	M10 float64
	M01 float64
}

// ContourMoments computes the area moments of the polygon whose vertices are
// the contour points, using Green's theorem. M00 is the polygon area and is
// never negative. Contours of fewer than three points, or thin lines, have zero
// area.
func ContourMoments(c Contour) Moments {
	var m Moments
	n := len(c)
	if n < 3 {
		return m
	}
	for i := 0; i < n; i++ {
		p, q := c[i], c[(i+1)%n]
		cross := float64(p.X*q.Y - q.X*p.Y)
		m.M00 += cross
		m.M10 += float64(p.X+q.X) * cross
		m.M01 += float64(p.Y+q.Y) * cross
	}
	m.M00 /= 2
	m.M10 /= 6
	m.M01 /= 6
	if m.M00 < 0 {
		m.M00, m.M10, m.M01 = -m.M00, -m.M10, -m.M01
	}
	return m
}

// Centroid returns the centroid of the contour polygon truncated to whole
// pixels. ok is false when the contour has zero area.
func (c Contour) Centroid() (x, y int, ok bool) {
	m := ContourMoments(c)
	if m.M00 <= 0 {
		return 0, 0, false
	}
	return int(m.M10 / m.M00), int(m.M01 / m.M00), true
}

// Area returns the polygon area of the contour.
func (c Contour) Area() float64 {
	return ContourMoments(c).M00
}
