package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/chuckvision/internal/imaging"
)

// CircleDetector finds circle candidates in an image. Returned circles use
// 0-based coordinates relative to the image's top-left pixel and are ordered
// strongest first.
type CircleDetector interface {
	DetectCircles(img image.Image, minRadius, maxRadius int) []Circle
}

// HoughDetector is the pure-Go CircleDetector implementing the gradient Hough
// transform.
type HoughDetector struct {
	// DP is the inverse accumulator resolution: 1 votes at full resolution,
	// 2 at half resolution. Values below 1 are treated as 1.
	DP float64

	// MinDist is the minimum distance between detected centers.
	MinDist float64

	// CannyHigh is the upper Canny threshold; the lower one is half of it.
	CannyHigh float64

	// Votes is the minimum accumulator count for a center, and the minimum
	// number of edge pixels supporting the chosen radius.
	Votes int

	// BlurRadius is the Gaussian blur applied before edge detection.
	BlurRadius float64
}

// DetectCircles implements CircleDetector.
//
// # Algorithm (Hough Gradient Transform)
//
//  1. Edge Detection: Canny edges with Sobel gradients
//  2. Center Voting: each edge pixel votes along its gradient line, in both
//     directions, for every radius from minRadius to maxRadius
//  3. Peak Detection: accumulator local maxima with at least Votes votes,
//     strongest first
//  4. Duplicate Removal: centers closer than MinDist to a stronger center are
//     dropped
//  5. Radius Estimation: the radius with the most edge pixels at that distance
//     from the center
//
// # Performance
//
// Voting costs O(edges × (maxRadius - minRadius)). Radius estimation costs
// O(edges) per surviving center.
func (h HoughDetector) DetectCircles(img image.Image, minRadius, maxRadius int) []Circle {
	if img == nil || img.Bounds().Empty() || maxRadius < minRadius || maxRadius <= 0 {
		return nil
	}
	minRadius = max(minRadius, 1)
	dp := math.Max(h.DP, 1)

	edges := imaging.Canny(img, h.CannyHigh/2, h.CannyHigh, h.BlurRadius)
	width, height := edges.Width, edges.Height

	type edgePixel struct {
		x, y   float64
		ux, uy float64
	}
	var pixels []edgePixel
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !edges.Edge[i] {
				continue
			}
			gx, gy := edges.DX[i], edges.DY[i]
			mag := math.Hypot(gx, gy)
			if mag == 0 {
				continue
			}
			pixels = append(pixels, edgePixel{float64(x), float64(y), gx / mag, gy / mag})
		}
	}
	if len(pixels) == 0 {
		return nil
	}

	accW := int(math.Ceil(float64(width) / dp))
	accH := int(math.Ceil(float64(height) / dp))
	acc := make([]int, accW*accH)

	for _, p := range pixels {
		for _, sign := range [2]float64{1, -1} {
			lastCell := -1
			for r := minRadius; r <= maxRadius; r++ {
				cx := p.x + sign*float64(r)*p.ux
				cy := p.y + sign*float64(r)*p.uy
				ax := int(math.Floor(cx / dp))
				ay := int(math.Floor(cy / dp))
				if ax < 0 || ay < 0 || ax >= accW || ay >= accH {
					break
				}
				// one vote per cell per ray
				cell := ay*accW + ax
				if cell != lastCell {
					acc[cell]++
					lastCell = cell
				}
			}
		}
	}

	threshold := max(h.Votes, 1)
	var centers []int
	for ay := 1; ay < accH-1; ay++ {
		for ax := 1; ax < accW-1; ax++ {
			i := ay*accW + ax
			v := acc[i]
			if v < threshold {
				continue
			}
			if v > acc[i-1] && v >= acc[i+1] && v > acc[i-accW] && v >= acc[i+accW] {
				centers = append(centers, i)
			}
		}
	}
	sort.SliceStable(centers, func(a, b int) bool {
		return acc[centers[a]] > acc[centers[b]]
	})

	span := maxRadius - minRadius + 1
	hist := make([]int, span)
	var circles []Circle
	for _, i := range centers {
		cx := (float64(i%accW) + 0.5) * dp
		cy := (float64(i/accW) + 0.5) * dp

		if tooClose(circles, cx, cy, h.MinDist) {
			continue
		}

		for k := range hist {
			hist[k] = 0
		}
		for _, p := range pixels {
			d := math.Hypot(p.x-cx, p.y-cy)
			r := int(math.Round(d))
			if r >= minRadius && r <= maxRadius {
				hist[r-minRadius]++
			}
		}

		bestR, bestCount := 0, 0
		for k := 0; k < span; k++ {
			count := hist[k]
			if k > 0 {
				count += hist[k-1]
			}
			if k < span-1 {
				count += hist[k+1]
			}
			if count > bestCount {
				bestR, bestCount = minRadius+k, count
			}
		}
		if bestCount < threshold {
			continue
		}

		circles = append(circles, Circle{
			X:      int(math.Round(cx)),
			Y:      int(math.Round(cy)),
			Radius: bestR,
		})
	}
	return circles
}

// tooClose reports whether (x, y) lies within minDist of an accepted center.
func tooClose(circles []Circle, x, y, minDist float64) bool {
	for _, c := range circles {
		if c.DistanceTo(x, y) < minDist {
			return true
		}
	}
	return false
}
