package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "cornhole_analyze",
			Description: "Estimate the state of a cornhole game from one image: every beanbag's bounding box, color " +
				"and location (in, on, off, unknown), the board rectangle, the hole circle and the cancellation " +
				"score (positive means red leads). Optionally returns an annotated PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"render": map[string]interface{}{
						"type":        "boolean",
						"description": "Include a base64 PNG with the detections drawn. Default false",
						"default":     false,
					},
					"detailed": map[string]interface{}{
						"type":        "boolean",
						"description": "With render, also draw raw contours and every Hough candidate. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cornhole_score",
			Description: "Return only the cancellation score of one image: red points minus blue points, 3 per bag in the hole and 1 per bag on the board.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cornhole_sample_hsv",
			Description: "Get the 8-bit HSV value (H 0-179, S and V 0-255) of a pixel and the configured color ranges it falls in. Use this to tune thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "cornhole_calibrate",
			Description: "Compute HSV threshold bounds from an image or a region of it, such as a crop around one beanbag. Each channel's bounds are its alpha and 100-alpha percentiles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region (x2, y2 exclusive). If omitted, uses the entire image.",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Outlier tolerance in percent, 0 to 50. Default 5",
						"default":     5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cornhole_config",
			Description: "Return the active detection configuration: HSV ranges, size thresholds, board margins and Hough parameters.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
