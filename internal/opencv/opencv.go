//go:build opencv

// Package opencv implements the detection interfaces on top of OpenCV via
// gocv. It is compiled only with the opencv build tag; the default build uses
// the pure Go implementations in package detection.
package opencv

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"

	"github.com/ironsheep/chuckvision/internal/detection"
	cvimg "github.com/ironsheep/chuckvision/internal/imaging"
)

// imageToMat converts img to an 8-bit BGR Mat. The caller must Close it.
func imageToMat(img image.Image) (gocv.Mat, error) {
	src := imaging.Clone(img)
	b := src.Bounds()
	rgba, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, src.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("creating mat: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// maskToMat converts a mask to a single-channel 0/255 Mat.
func maskToMat(m *cvimg.Mask) (gocv.Mat, error) {
	g := m.Gray()
	return gocv.NewMatFromBytes(m.Height, m.Width, gocv.MatTypeCV8UC1, g.Pix)
}

// ToHSV converts img with cv::cvtColor. It satisfies estimate.HSVConverter.
func ToHSV(img image.Image) (*cvimg.HSVImage, error) {
	if err := cvimg.CheckImage(img); err != nil {
		return nil, err
	}
	bgr, err := imageToMat(img)
	if err != nil {
		return nil, err
	}
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	w, h := hsv.Cols(), hsv.Rows()
	data := hsv.ToBytes()
	out := &cvimg.HSVImage{Width: w, Height: h, Pix: make([]cvimg.HSV, w*h)}
	for i := range out.Pix {
		out.Pix[i] = cvimg.HSV{H: data[i*3], S: data[i*3+1], V: data[i*3+2]}
	}
	return out, nil
}

// ContourFinder finds external contours with cv::findContours.
type ContourFinder struct{}

func (ContourFinder) FindContours(mask *cvimg.Mask) []detection.Contour {
	mat, err := maskToMat(mask)
	if err != nil {
		return nil
	}
	defer mat.Close()

	contours := gocv.FindContours(mat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	out := make([]detection.Contour, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		pv := contours.At(i)
		c := make(detection.Contour, 0, pv.Size())
		for j := 0; j < pv.Size(); j++ {
			pt := pv.At(j)
			c = append(c, detection.Point{X: pt.X, Y: pt.Y})
		}
		out = append(out, c)
	}
	return out
}

// CircleDetector finds circles with cv::HoughCircles (gradient method) on the
// grayscale image.
type CircleDetector struct {
	DP        float64
	MinDist   float64
	CannyHigh float64
	Votes     int
}

// NewCircleDetector copies the tuning of the pure Go detector.
func NewCircleDetector(h detection.HoughDetector) CircleDetector {
	return CircleDetector{DP: h.DP, MinDist: h.MinDist, CannyHigh: h.CannyHigh, Votes: h.Votes}
}

func (d CircleDetector) DetectCircles(img image.Image, minRadius, maxRadius int) []detection.Circle {
	bgr, err := imageToMat(img)
	if err != nil {
		return nil
	}
	defer bgr.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(bgr, &gray, gocv.ColorBGRToGray)

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(gray, &circles, gocv.HoughGradient,
		d.DP, d.MinDist, d.CannyHigh, float64(d.Votes), minRadius, maxRadius)

	out := make([]detection.Circle, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		out = append(out, circleFromVec(circles.GetVecfAt(0, i)))
	}
	return out
}

// circleFromVec rounds a Hough (x, y, radius) triple to pixels.
func circleFromVec(v []float32) detection.Circle {
	return detection.Circle{
		X:      int(math.Round(float64(v[0]))),
		Y:      int(math.Round(float64(v[1]))),
		Radius: int(math.Round(float64(v[2]))),
	}
}
