package estimate

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ironsheep/chuckvision/internal/detection"
)

// Color is a team's beanbag color.
type Color string

const (
	ColorRed  Color = "red"
	ColorBlue Color = "blue"
)

// Sign is +1 for red and -1 for blue: red points count up, blue points down.
func (c Color) Sign() int {
	switch c {
	case ColorRed:
		return 1
	case ColorBlue:
		return -1
	default:
		return 0
	}
}

// BeanBag is one detected or annotated beanbag.
type BeanBag struct {
	Rect     detection.Rect
	Color    Color
	Location detection.Location
}

// Board is the board rectangle and its hole. A zero rectangle means the board
// was not detected; a zero-radius hole means the hole was not found.
type Board struct {
	Rect detection.Rect
	Hole detection.Circle
}

// Detected reports whether the board rectangle is a real detection.
func (b Board) Detected() bool {
	return b.Rect.Width > 0 && b.Rect.Height > 0
}

// Frame is the annotation record of one image. It has the same JSON shape as
// the ground-truth dataset, so detections and truth are interchangeable.
type Frame struct {
	Reference string
	BeanBags  []BeanBag
	Board     Board
}

// Score returns the frame's cancellation score.
func (f Frame) Score() int {
	return Score(f.BeanBags)
}

type jsonRect struct {
	Center [2]float64 `json:"center"`
	Height float64    `json:"height"`
	Width  float64    `json:"width"`
}

type jsonBeanBag struct {
	BoundedRectangle jsonRect `json:"bounded_rectangle"`
	Color            Color    `json:"color"`
	Location         *string  `json:"location"`
}

type jsonHole struct {
	Center [2]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

type jsonSize struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

type jsonBoard struct {
	Center [2]float64 `json:"center"`
	Hole   *jsonHole  `json:"hole,omitempty"`
	Size   jsonSize   `json:"size"`
}

type jsonFrame struct {
	Reference string    `json:"_reference"`
	BeanBags  []BeanBag `json:"beanBags"`
	Board     Board     `json:"board"`
}

func rectFromCenter(center [2]float64, width, height float64) detection.Rect {
	return detection.Rect{
		X:      int(math.Round(center[0] - width/2)),
		Y:      int(math.Round(center[1] - height/2)),
		Width:  int(math.Round(width)),
		Height: int(math.Round(height)),
	}
}

func centerOf(r detection.Rect) [2]float64 {
	x, y := r.Center()
	return [2]float64{x, y}
}

// MarshalJSON writes the dataset form: the rectangle as center and size.
func (b BeanBag) MarshalJSON() ([]byte, error) {
	loc := string(b.Location)
	if loc == "" {
		loc = string(detection.LocationUnknown)
	}
	return json.Marshal(jsonBeanBag{
		BoundedRectangle: jsonRect{
			Center: centerOf(b.Rect),
			Height: float64(b.Rect.Height),
			Width:  float64(b.Rect.Width),
		},
		Color:    b.Color,
		Location: &loc,
	})
}

// UnmarshalJSON reads the dataset form. A null location reads as unknown.
func (b *BeanBag) UnmarshalJSON(data []byte) error {
	var j jsonBeanBag
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.Color != ColorRed && j.Color != ColorBlue {
		return fmt.Errorf("unknown beanbag color %q", j.Color)
	}
	loc := detection.LocationUnknown
	if j.Location != nil {
		l, err := detection.ParseLocation(*j.Location)
		if err != nil {
			return err
		}
		loc = l
	}
	*b = BeanBag{
		Rect:     rectFromCenter(j.BoundedRectangle.Center, j.BoundedRectangle.Width, j.BoundedRectangle.Height),
		Color:    j.Color,
		Location: loc,
	}
	return nil
}

// MarshalJSON writes the dataset form. The hole is always present.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonBoard{
		Center: centerOf(b.Rect),
		Hole: &jsonHole{
			Center: [2]float64{float64(b.Hole.X), float64(b.Hole.Y)},
			Radius: float64(b.Hole.Radius),
		},
		Size: jsonSize{Height: float64(b.Rect.Height), Width: float64(b.Rect.Width)},
	})
}

// UnmarshalJSON reads the dataset form. A missing hole reads as not found.
func (b *Board) UnmarshalJSON(data []byte) error {
	var j jsonBoard
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*b = Board{Rect: rectFromCenter(j.Center, j.Size.Width, j.Size.Height)}
	if j.Size.Width == 0 && j.Size.Height == 0 {
		b.Rect = detection.Rect{}
	}
	if j.Hole != nil {
		b.Hole = detection.Circle{
			X:      int(math.Round(j.Hole.Center[0])),
			Y:      int(math.Round(j.Hole.Center[1])),
			Radius: int(math.Round(j.Hole.Radius)),
		}
	}
	return nil
}

// MarshalJSON writes every key, with an empty beanBags list rather than null.
func (f Frame) MarshalJSON() ([]byte, error) {
	bags := f.BeanBags
	if bags == nil {
		bags = []BeanBag{}
	}
	return json.Marshal(jsonFrame{Reference: f.Reference, BeanBags: bags, Board: f.Board})
}

func (f *Frame) UnmarshalJSON(data []byte) error {
	var j jsonFrame
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*f = Frame{Reference: j.Reference, BeanBags: j.BeanBags, Board: j.Board}
	return nil
}
