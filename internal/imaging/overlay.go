package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Overlay colors, matching the conventions of the original viewer.
var (
	OverlayRed      = color.RGBA{255, 0, 0, 255}
	OverlayBlue     = color.RGBA{0, 0, 255, 255}
	OverlayBoard    = color.RGBA{0, 255, 0, 255}
	OverlayCornhole = color.RGBA{255, 255, 0, 255}
	OverlayCaption  = color.White
)

// Overlay draws detection shapes onto a copy of an image. The source image is
// never modified.
//
// Coordinates are 0-based relative to the source's top-left pixel, the same
// convention as Mask.
type Overlay struct {
	dc *gg.Context
}

// NewOverlay starts an overlay on a copy of img.
func NewOverlay(img image.Image) *Overlay {
	dc := gg.NewContextForImage(imaging.Clone(img))
	dc.SetFontFace(basicfont.Face7x13)
	return &Overlay{dc: dc}
}

// Rect outlines r.
func (o *Overlay) Rect(r image.Rectangle, c color.Color, lineWidth float64) {
	o.dc.SetColor(c)
	o.dc.SetLineWidth(lineWidth)
	o.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	o.dc.Stroke()
}

// Circle outlines a circle. A non-positive radius draws nothing.
func (o *Overlay) Circle(cx, cy, radius int, c color.Color, lineWidth float64) {
	if radius <= 0 {
		return
	}
	o.dc.SetColor(c)
	o.dc.SetLineWidth(lineWidth)
	o.dc.DrawCircle(float64(cx), float64(cy), float64(radius))
	o.dc.Stroke()
}

// Polygon outlines a closed boundary such as a contour.
func (o *Overlay) Polygon(points []image.Point, c color.Color, lineWidth float64) {
	if len(points) == 0 {
		return
	}
	o.dc.SetColor(c)
	o.dc.SetLineWidth(lineWidth)
	o.dc.MoveTo(float64(points[0].X), float64(points[0].Y))
	for _, p := range points[1:] {
		o.dc.LineTo(float64(p.X), float64(p.Y))
	}
	o.dc.ClosePath()
	o.dc.Stroke()
}

// Caption writes one line of text in the top-left corner on a dark band.
func (o *Overlay) Caption(text string) {
	w, h := o.dc.MeasureString(text)
	o.dc.SetRGBA(0, 0, 0, 0.6)
	o.dc.DrawRectangle(0, 0, w+8, h+8)
	o.dc.Fill()
	o.dc.SetColor(OverlayCaption)
	o.dc.DrawString(text, 4, h+3)
}

// Image returns the annotated copy.
func (o *Overlay) Image() image.Image {
	return o.dc.Image()
}

// Save writes img to path; the format is chosen from the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// EncodePNGBase64 returns img as a base64 PNG, the form used by tool results.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
