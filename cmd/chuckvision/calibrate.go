package main

import (
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/chuckvision/internal/calibrate"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

func runCalibrate(w io.Writer, path, region string, alpha float64) error {
	img, err := imaging.Load(path)
	if err != nil {
		return err
	}
	var r *image.Rectangle
	if region != "" {
		rect, err := parseRegion(region)
		if err != nil {
			return err
		}
		rect = rect.Add(img.Bounds().Min)
		r = &rect
	}
	bounds, err := calibrate.Bounds(img, r, alpha)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "bounds = %v\n", bounds)
	return err
}

// parseRegion parses "x1,y1,x2,y2" with x2 and y2 exclusive.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x1,y1,x2,y2", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	r := image.Rectangle{Min: image.Pt(v[0], v[1]), Max: image.Pt(v[2], v[3])}
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", s)
	}
	return r, nil
}
