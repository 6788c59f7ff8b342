package imaging

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// ErrInvalidInput is returned when an image cannot be read, cannot be decoded,
// or has no pixels. It is fatal for that image only.
var ErrInvalidInput = errors.New("invalid input image")

// Load decodes an image file from disk.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are JPEG, PNG,
//     GIF, TIFF and BMP.
//
// Returns:
//   - image.Image: The decoded image, rotated according to its EXIF orientation
//     tag so that phone photographs come out upright.
//   - error: Wraps ErrInvalidInput if the file cannot be opened or decoded, or
//     if it decodes to an empty image.
//
// Images are never cached; every call reads the file again so that analysis of
// one image cannot observe another.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, path, err)
	}
	if err := CheckImage(img); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Decode reads an image from r. It behaves like Load but for in-memory data.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := CheckImage(img); err != nil {
		return nil, err
	}
	return img, nil
}

// CheckImage reports ErrInvalidInput for a nil or zero-area image.
func CheckImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%w: empty image bounds %v", ErrInvalidInput, img.Bounds())
	}
	return nil
}
