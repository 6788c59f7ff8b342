package detection

import (
	"math"
	"math/rand"
	"sort"
)

// MinEnclosingCircle returns the center and radius of the smallest circle
// containing every point. An empty input yields a zero circle.
//
// The search runs Welzl's incremental algorithm over the convex hull, since
// only hull vertices can lie on the enclosing circle.
func MinEnclosingCircle(points []Point) (cx, cy, radius float64) {
	hull := convexHull(points)
	switch len(hull) {
	case 0:
		return 0, 0, 0
	case 1:
		return float64(hull[0].X), float64(hull[0].Y), 0
	}

	pts := make([][2]float64, len(hull))
	for i, p := range hull {
		pts[i] = [2]float64{float64(p.X), float64(p.Y)}
	}
	// A fixed seed keeps results reproducible while avoiding the worst case
	// on sorted input.
	rng := rand.New(rand.NewSource(int64(len(pts))))
	rng.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	c := circle2{x: pts[0][0], y: pts[0][1]}
	for i := 1; i < len(pts); i++ {
		if c.contains(pts[i]) {
			continue
		}
		c = circle2{x: pts[i][0], y: pts[i][1]}
		for j := 0; j < i; j++ {
			if c.contains(pts[j]) {
				continue
			}
			c = circleFrom2(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !c.contains(pts[k]) {
					c = circleFrom3(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return c.x, c.y, c.r
}

type circle2 struct {
	x, y, r float64
}

func (c circle2) contains(p [2]float64) bool {
	return math.Hypot(p[0]-c.x, p[1]-c.y) <= c.r*(1+1e-9)+1e-9
}

func circleFrom2(a, b [2]float64) circle2 {
	return circle2{
		x: (a[0] + b[0]) / 2,
		y: (a[1] + b[1]) / 2,
		r: math.Hypot(a[0]-b[0], a[1]-b[1]) / 2,
	}
}

// circleFrom3 returns the circumcircle of a, b and c. Collinear points fall
// back to the circle spanning the farthest pair.
func circleFrom3(a, b, c [2]float64) circle2 {
	bx, by := b[0]-a[0], b[1]-a[1]
	cx, cy := c[0]-a[0], c[1]-a[1]
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		best := circleFrom2(a, b)
		for _, alt := range []circle2{circleFrom2(a, c), circleFrom2(b, c)} {
			if alt.r > best.r {
				best = alt
			}
		}
		return best
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return circle2{x: a[0] + ux, y: a[1] + uy, r: math.Hypot(ux, uy)}
}

// convexHull returns the hull vertices counter-clockwise using Andrew's
// monotone chain. Duplicate and collinear points are dropped.
func convexHull(points []Point) []Point {
	if len(points) < 3 {
		out := make([]Point, 0, len(points))
		for _, p := range points {
			if len(out) == 0 || out[len(out)-1] != p {
				out = append(out, p)
			}
		}
		return out
	}

	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
