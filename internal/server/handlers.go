package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/dfdean/imageLib/internal/detection"
	"github.com/dfdean/imageLib/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_lines").
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Detection
	case "image_detect_lines":
		return s.handleImageDetectLines(args)
	case "image_detect_regions":
		return s.handleImageDetectRegions(args)
	case "image_edge_map":
		return s.handleImageEdgeMap(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// The marshal error is ignored; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Detection Handlers ===

type bboxArgs struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageDetectLinesArgs struct {
	Path                        string    `json:"path"`
	SquishyBlobs                bool      `json:"squishy_blobs"`
	BBox                        *bboxArgs `json:"bbox,omitempty"`
	Redraw                      bool      `json:"redraw"`
	DrawInteriorAsGray          bool      `json:"draw_interior_as_gray"`
	RedrawWithJustShapeOutlines bool      `json:"redraw_with_just_shape_outlines"`
	EdgeThreshold               int       `json:"edge_threshold"`
	SmoothRadius                float64   `json:"smooth_radius"`
}

// detectLinesResponse is the tool payload: the detection result plus the
// optional rebuilt image.
type detectLinesResponse struct {
	Segments []*detection.Segment   `json:"segments"`
	Count    int                    `json:"count"`
	Metrics  detection.Metrics      `json:"metrics"`
	Rebuilt  *imaging.RedrawResult  `json:"rebuilt,omitempty"`
}

// redrawCollector is an ImageSink that keeps the rebuilt image in memory
// for the JSON response.
type redrawCollector struct {
	out *imaging.RedrawResult
}

func (c *redrawCollector) ConsumeImage(r *imaging.RedrawResult) error {
	c.out = r
	return nil
}

func (s *Server) handleImageDetectLines(args json.RawMessage) (interface{}, error) {
	var a imageDetectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	lum, err := imaging.NewLuminanceMap(img, imaging.MapConfig{
		EdgeThreshold: a.EdgeThreshold,
		SmoothRadius:  a.SmoothRadius,
	})
	if err != nil {
		return nil, err
	}

	var bbox image.Rectangle
	if a.BBox != nil {
		bbox = image.Rect(a.BBox.X1, a.BBox.Y1, a.BBox.X2, a.BBox.Y2)
	}

	opts := detection.Options{
		SquishyBlobs:                a.SquishyBlobs,
		DrawInteriorAsGray:          a.DrawInteriorAsGray,
		RedrawWithJustShapeOutlines: a.RedrawWithJustShapeOutlines,
		Debug:                       s.debug,
	}

	var collector redrawCollector
	var imgSink detection.ImageSink
	if a.Redraw {
		imgSink = &collector
	}

	result, err := s.detect(opts, img, lum, bbox, imgSink)
	if err != nil {
		return nil, err
	}

	return &detectLinesResponse{
		Segments: result.Segments,
		Count:    len(result.Segments),
		Metrics:  result.Metrics,
		Rebuilt:  collector.out,
	}, nil
}

// detect runs the detector, tolerating sink failures: the segment list is
// still valid and is still returned.
func (s *Server) detect(opts detection.Options, img image.Image, lum *imaging.LuminanceMap,
	bbox image.Rectangle, imgSink detection.ImageSink,
) (*detection.Result, error) {
	result, err := detection.DetectLines(opts, img, lum, bbox, nil, imgSink)
	if err != nil && result == nil {
		return nil, err
	}
	return result, nil
}

type imageDetectRegionsArgs struct {
	Path          string `json:"path"`
	MinPixels     int    `json:"min_pixels"`
	EdgeThreshold int    `json:"edge_threshold"`
}

func (s *Server) handleImageDetectRegions(args json.RawMessage) (interface{}, error) {
	var a imageDetectRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	lum, err := imaging.NewLuminanceMap(img, imaging.MapConfig{EdgeThreshold: a.EdgeThreshold})
	if err != nil {
		return nil, err
	}
	return detection.ExtractRegions(img, lum, a.MinPixels)
}

type imageEdgeMapArgs struct {
	Path          string  `json:"path"`
	EdgeThreshold int     `json:"edge_threshold"`
	SmoothRadius  float64 `json:"smooth_radius"`
}

func (s *Server) handleImageEdgeMap(args json.RawMessage) (interface{}, error) {
	var a imageEdgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	lum, err := imaging.NewLuminanceMap(img, imaging.MapConfig{
		EdgeThreshold: a.EdgeThreshold,
		SmoothRadius:  a.SmoothRadius,
	})
	if err != nil {
		return nil, err
	}
	return imaging.RenderEdgeMap(lum)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
