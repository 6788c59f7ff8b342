// Package imaging provides the pixel-level operations of the cornhole pipeline:
// decoding, HSV color segmentation, edge detection, cropping and overlay
// rendering.
//
// All operations work with standard Go image.Image values and never modify
// their input. Derived rasters (Mask, HSVImage, EdgeMap) use 0-based
// coordinates relative to the source's Bounds().Min, where (0,0) is the
// top-left pixel, X increases rightward and Y increases downward.
//
// # Color Representation
//
// Thresholds are expressed in 8-bit HSV with the OpenCV scaling:
//   - H: 0-179 (hue degrees halved)
//   - S: 0-255
//   - V: 0-255
//
// This keeps color ranges interchangeable with those produced by the
// calibration tooling and with the optional OpenCV backend.
//
// # Error Handling
//
// A nil, empty, unreadable or undecodable image yields an error wrapping
// ErrInvalidInput. Nothing else in this package fails on valid images.
//
// # Thread Safety
//
// Every function is stateless and safe to call concurrently on different
// images.
package imaging
