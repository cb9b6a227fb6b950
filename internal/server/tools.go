package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// bboxProperty describes an optional detection window.
func bboxProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"description": "Optional bounding box to restrict the pass. If omitted, the full image is used.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth, alpha flag, and file size. The decoded image is cached by path for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Detection
		{
			Name:        "image_detect_lines",
			Description: "Detect straight line segments using a gradient-guided Hough transform. Returns segment endpoints, slopes, y-intercepts, angles, pixel counts, and diagnostic counters; segment lengths are not included.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"squishy_blobs": map[string]interface{}{
						"type":        "boolean",
						"description": "Use the tolerant threshold regime (votes>=10, length>=5) for organic imagery instead of the strict default (votes>=90, length>=50)",
						"default":     false,
					},
					"bbox": bboxProperty(),
					"redraw": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return an image rebuilt from the detected segments",
						"default":     false,
					},
					"draw_interior_as_gray": map[string]interface{}{
						"type":        "boolean",
						"description": "Flatten non-edge pixels of the rebuilt image to gray (only with redraw)",
						"default":     false,
					},
					"redraw_with_just_shape_outlines": map[string]interface{}{
						"type":        "boolean",
						"description": "Erase the background and draw only the segment outlines (only with redraw)",
						"default":     false,
					},
					"edge_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum Sobel magnitude for an edge pixel (default 25)",
						"default":     25,
					},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian pre-smoothing radius for noisy scans (default 0 = off)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_detect_regions",
			Description: "Group connected edge pixels into shape regions. Returns bounding boxes, centroids, pixel counts, and sampled fill colors, largest region first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"min_pixels": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum edge pixels for a region to be reported (default 10)",
						"default":     10,
					},
					"edge_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum Sobel magnitude for an edge pixel (default 25)",
						"default":     25,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_edge_map",
			Description: "Return the binary edge map of an image as base64 PNG: edge pixels white, everything else black.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"edge_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum Sobel magnitude for an edge pixel (default 25)",
						"default":     25,
					},
					"smooth_radius": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian pre-smoothing radius for noisy scans (default 0 = off)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into detections that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
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
