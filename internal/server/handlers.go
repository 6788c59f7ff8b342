package server

import (
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/chuckvision/internal/calibrate"
	"github.com/ironsheep/chuckvision/internal/detection"
	"github.com/ironsheep/chuckvision/internal/estimate"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "cornhole_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warnf("Tool %v failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "cornhole_analyze":
		return s.handleAnalyze(args)
	case "cornhole_score":
		return s.handleScore(args)
	case "cornhole_sample_hsv":
		return s.handleSampleHSV(args)
	case "cornhole_calibrate":
		return s.handleCalibrate(args)
	case "cornhole_config":
		return s.cfg, nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Missing arguments decode as "{}".
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) check() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// === Analysis Handlers ===

type analyzeArgs struct {
	pathArgs
	Render   bool `json:"render"`
	Detailed bool `json:"detailed"`
}

type analyzeResult struct {
	Frame       estimate.Frame  `json:"frame"`
	Score       int             `json:"score"`
	Leader      string          `json:"leader"`
	HolePhase   detection.Phase `json:"hole_phase"`
	ImageBase64 string          `json:"image_base64,omitempty"`
}

func (s *Server) handleAnalyze(args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}

	analyzer := s.analyzer
	if a.Render {
		var err error
		opts := append(append([]estimate.Option{}, s.opts...), estimate.WithOverlay(a.Detailed))
		analyzer, err = estimate.New(s.cfg, opts...)
		if err != nil {
			return nil, err
		}
	}

	res, err := analyzer.AnalyzeFile(a.Path)
	if err != nil {
		return nil, err
	}
	out := analyzeResult{
		Frame:     res.Frame,
		Score:     res.Score,
		Leader:    leader(res.Score),
		HolePhase: res.Phase,
	}
	if res.Annotated != nil {
		out.ImageBase64, err = imaging.EncodePNGBase64(res.Annotated)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func leader(score int) string {
	switch {
	case score > 0:
		return string(estimate.ColorRed)
	case score < 0:
		return string(estimate.ColorBlue)
	default:
		return "tie"
	}
}

type scoreResult struct {
	Reference string `json:"reference"`
	Score     int    `json:"score"`
	Leader    string `json:"leader"`
}

func (s *Server) handleScore(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	res, err := s.analyzer.AnalyzeFile(a.Path)
	if err != nil {
		return nil, err
	}
	return scoreResult{Reference: filepath.Base(a.Path), Score: res.Score, Leader: leader(res.Score)}, nil
}

// === Color Handlers ===

type sampleHSVArgs struct {
	pathArgs
	X int `json:"x"`
	Y int `json:"y"`
}

type sampleHSVResult struct {
	X   int         `json:"x"`
	Y   int         `json:"y"`
	HSV imaging.HSV `json:"hsv"`
	// Matches names the configured ranges containing the pixel.
	Matches []string `json:"matches"`
}

func (s *Server) handleSampleHSV(args json.RawMessage) (interface{}, error) {
	var a sampleHSVArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}
	// Analysis coordinates are relative to the top-left pixel.
	b := img.Bounds()
	hsv, err := imaging.SampleHSV(img, b.Min.X+a.X, b.Min.Y+a.Y)
	if err != nil {
		return nil, err
	}

	matches := []string{}
	for _, r := range []struct {
		name string
		rng  imaging.HSVRange
	}{
		{"red", s.cfg.RedLow},
		{"red", s.cfg.RedHigh},
		{"blue", s.cfg.Blue},
		{"board", s.cfg.Board},
		{"cornhole", s.cfg.Cornhole},
	} {
		if r.rng.Contains(hsv) {
			matches = append(matches, r.name)
		}
	}
	return sampleHSVResult{X: a.X, Y: a.Y, HSV: hsv, Matches: matches}, nil
}

type calibrateArgs struct {
	pathArgs
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
	Alpha *float64 `json:"alpha,omitempty"`
}

type calibrateResult struct {
	Alpha float64          `json:"alpha"`
	Range imaging.HSVRange `json:"range"`
	// Bounds is the range in the ([h, s, v], [h, s, v]) form used by config files.
	Bounds string `json:"bounds"`
}

func (s *Server) handleCalibrate(args json.RawMessage) (interface{}, error) {
	var a calibrateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.check(); err != nil {
		return nil, err
	}
	alpha := float64(calibrate.DefaultAlpha)
	if a.Alpha != nil {
		alpha = *a.Alpha
	}
	img, err := imaging.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *image.Rectangle
	if a.Region != nil {
		b := img.Bounds()
		r := image.Rect(a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2).Add(b.Min)
		region = &r
	}
	rng, err := calibrate.Bounds(img, region, alpha)
	if err != nil {
		return nil, err
	}
	return calibrateResult{Alpha: alpha, Range: rng, Bounds: rng.String()}, nil
}
