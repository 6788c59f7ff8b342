package estimate

import (
	"image"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/detection"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

func newTestAnalyzer(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()
	opts = append([]Option{WithLogger(logs.NewTestingLog(t))}, opts...)
	a, err := New(config.Default(), opts...)
	require.NoError(t, err)
	return a
}

type stubDetector struct {
	circles []detection.Circle
}

func (s stubDetector) DetectCircles(image.Image, int, int) []detection.Circle {
	return s.circles
}

func TestAnalyze_Scene(t *testing.T) {
	a := newTestAnalyzer(t)

	res, err := a.Analyze(createScene(), "0001.jpg")
	require.NoError(t, err)

	f := res.Frame
	require.Equal(t, "0001.jpg", f.Reference)
	require.Equal(t, detection.Rect{X: 100, Y: 100, Width: 300, Height: 200}, f.Board.Rect)
	require.True(t, f.Board.Detected())
	require.Equal(t, detection.Circle{X: 250, Y: 185, Radius: 40}, f.Board.Hole)
	require.Equal(t, detection.PhaseColorMask, res.Phase)

	require.Equal(t, []BeanBag{
		{Rect: detection.Rect{X: 250, Y: 170, Width: 30, Height: 30}, Color: ColorRed, Location: detection.LocationIn},
		{Rect: detection.Rect{X: 120, Y: 230, Width: 40, Height: 40}, Color: ColorRed, Location: detection.LocationOn},
		{Rect: detection.Rect{X: 20, Y: 320, Width: 40, Height: 40}, Color: ColorBlue, Location: detection.LocationOff},
	}, f.BeanBags)
	require.Equal(t, 4, res.Score)
	require.Nil(t, res.Annotated)
}

func TestAnalyze_NoBoard(t *testing.T) {
	img := createTestImage(300, 200, sceneBackground)
	fillRect(img, image.Rect(50, 50, 100, 100), sceneRed)
	fillDisk(img, 200, 100, 40, sceneHole)

	res, err := newTestAnalyzer(t).Analyze(img, "empty.png")
	require.NoError(t, err)

	require.False(t, res.Frame.Board.Detected())
	require.Equal(t, Board{}, res.Frame.Board)
	require.Equal(t, detection.PhaseNone, res.Phase)
	require.Len(t, res.Frame.BeanBags, 1)
	require.Equal(t, detection.LocationUnknown, res.Frame.BeanBags[0].Location)
	require.Zero(t, res.Score)
}

func TestAnalyze_HoughFallback(t *testing.T) {
	img := createTestImage(500, 400, sceneBackground)
	fillRect(img, image.Rect(100, 100, 400, 300), sceneBoard)
	// too small for the color-mask phase
	fillDisk(img, 250, 185, 10, sceneHole)
	fillRect(img, image.Rect(300, 150, 320, 170), sceneBlue)

	det := stubDetector{circles: []detection.Circle{
		{X: 30, Y: 30, Radius: 40},
		{X: 310, Y: 160, Radius: 35},
	}}
	res, err := newTestAnalyzer(t, WithCircleDetector(det)).Analyze(img, "fallback.png")
	require.NoError(t, err)

	require.Equal(t, detection.PhaseHough, res.Phase)
	require.Equal(t, detection.Circle{X: 310, Y: 160, Radius: 35}, res.Frame.Board.Hole)
	require.Len(t, res.Frame.BeanBags, 1)
	require.Equal(t, detection.LocationIn, res.Frame.BeanBags[0].Location)
	require.Equal(t, -3, res.Score)
}

func TestAnalyze_Overlay(t *testing.T) {
	scene := createScene()
	orig := make([]byte, len(scene.Pix))
	copy(orig, scene.Pix)

	res, err := newTestAnalyzer(t, WithOverlay(true)).Analyze(scene, "0001.jpg")
	require.NoError(t, err)
	require.NotNil(t, res.Annotated)
	require.Equal(t, 500, res.Annotated.Bounds().Dx())
	require.Equal(t, 400, res.Annotated.Bounds().Dy())
	require.Equal(t, orig, scene.Pix, "input image must not be modified")

	// the board outline is drawn in green
	r, g, b, _ := res.Annotated.At(100, 200).RGBA()
	require.Greater(t, g>>8, uint32(200))
	require.Less(t, r>>8, uint32(100))
	require.Less(t, b>>8, uint32(100))
}

func TestAnalyze_InvalidInput(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Analyze(nil, "nil")
	require.ErrorIs(t, err, imaging.ErrInvalidInput)

	_, err = a.Analyze(image.NewRGBA(image.Rectangle{}), "empty")
	require.ErrorIs(t, err, imaging.ErrInvalidInput)

	_, err = a.AnalyzeFile("/nonexistent/0001.jpg")
	require.ErrorIs(t, err, imaging.ErrInvalidInput)
}

func TestAnalyzeFile_UsesBaseName(t *testing.T) {
	path := writeTestPNG(t, "0042.png", createScene())

	res, err := newTestAnalyzer(t).AnalyzeFile(path)
	require.NoError(t, err)
	require.Equal(t, "0042.png", res.Frame.Reference)
	require.Equal(t, 4, res.Score)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MinCornholeRadius = 90
	_, err := New(cfg)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	scene := createScene()

	first, err := a.Analyze(scene, "0001.jpg")
	require.NoError(t, err)
	second, err := a.Analyze(scene, "0001.jpg")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
