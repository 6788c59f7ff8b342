package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chuckvision/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(config.Default(), logs.NewTestingLog(t))
	require.NoError(t, err)
	return s
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// createSceneFile writes a 500x400 PNG with a board at (100,100,300,200), a
// radius-40 hole at (250,185), one red bag in the hole and one blue bag on
// the board. Its score is 3 - 1 = 2.
func createSceneFile(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 500, 400))
	fill(img, img.Bounds(), color.RGBA{128, 128, 128, 255})
	fill(img, image.Rect(100, 100, 400, 300), color.RGBA{233, 236, 236, 255})
	for y := 145; y <= 225; y++ {
		for x := 210; x <= 290; x++ {
			if (x-250)*(x-250)+(y-185)*(y-185) <= 40*40 {
				img.Set(x, y, color.Black)
			}
		}
	}
	fill(img, image.Rect(250, 170, 280, 200), color.RGBA{255, 0, 0, 255})
	fill(img, image.Rect(300, 230, 340, 270), color.RGBA{0, 0, 255, 255})

	path := filepath.Join(t.TempDir(), "0007.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// callTool runs tools/call and returns the response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()
	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	require.NoError(t, err)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	require.NotNil(t, resp)
	return resp
}

// toolResult decodes the JSON text content of a successful tool call.
func toolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	content := result["content"].([]map[string]interface{})
	require.Len(t, content, 1)
	require.Equal(t, "text", content[0]["type"])
	require.NoError(t, json.Unmarshal([]byte(content[0]["text"].(string)), v))
}
