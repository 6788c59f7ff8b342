package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts region from img. The region is given in image coordinates and
// must lie entirely inside the image bounds.
func Crop(img image.Image, region image.Rectangle) (image.Image, error) {
	if err := CheckImage(img); err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: must have positive width and height", region)
	}
	if !region.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, bounds)
	}
	return imaging.Crop(img, region), nil
}
