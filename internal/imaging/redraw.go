package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// Outline is a straight stroke to rasterize into a rebuilt image.
type Outline struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RedrawOptions controls how a rebuilt image is composed.
type RedrawOptions struct {
	// OutlinesOnly erases the source entirely and draws strokes on a white
	// background.
	OutlinesOnly bool

	// InteriorAsGray flattens every non-edge source pixel to a uniform light
	// gray so the strokes stand out over filled shapes.
	InteriorAsGray bool
}

// interiorGray is the flattened fill value used by InteriorAsGray.
const interiorGray = 0xD0

// RedrawResult contains a rebuilt image encoded as base64 PNG.
type RedrawResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	StrokeCount int    `json:"stroke_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOutlines rebuilds an image from detected strokes.
//
// The background is either a clone of src or, with OutlinesOnly, a blank
// white canvas. Strokes are rasterized in black with Bresenham stepping.
// The luminance map supplies edge flags when InteriorAsGray is set; pass
// nil when that option is off.
func RenderOutlines(src image.Image, m *LuminanceMap, lines []Outline, opts RedrawOptions) (*RedrawResult, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := src.Bounds()

	var canvas *image.NRGBA
	switch {
	case opts.OutlinesOnly:
		canvas = imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	case opts.InteriorAsGray && m != nil:
		canvas = imaging.Clone(src)
		gray := color.NRGBA{interiorGray, interiorGray, interiorGray, 0xFF}
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				if !m.IsEdge(x, y) {
					canvas.SetNRGBA(x, y, gray)
				}
			}
		}
	default:
		canvas = imaging.Clone(src)
	}

	for _, ln := range lines {
		drawStroke(canvas, ln)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode rebuilt image: %w", err)
	}

	return &RedrawResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		StrokeCount: len(lines),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// drawStroke rasterizes one stroke in black using Bresenham's algorithm.
func drawStroke(canvas *image.NRGBA, ln Outline) {
	black := color.NRGBA{0, 0, 0, 0xFF}

	dx := abs(ln.X2 - ln.X1)
	dy := -abs(ln.Y2 - ln.Y1)
	sx, sy := 1, 1
	if ln.X1 > ln.X2 {
		sx = -1
	}
	if ln.Y1 > ln.Y2 {
		sy = -1
	}

	x, y := ln.X1, ln.Y1
	errAcc := dx + dy
	for {
		if image.Pt(x, y).In(canvas.Bounds()) {
			canvas.SetNRGBA(x, y, black)
		}
		if x == ln.X2 && y == ln.Y2 {
			break
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x += sx
		}
		if e2 <= dx {
			errAcc += dx
			y += sy
		}
	}
}

// EdgeMapResult contains a rendered edge map encoded as base64 PNG.
//
// The image is grayscale with edge pixels in white (255) and everything
// else black, matching the convention of binary edge images.
type EdgeMapResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EdgeCount   int    `json:"edge_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderEdgeMap rasterizes a luminance map's edge flags into a binary
// grayscale PNG.
func RenderEdgeMap(m *LuminanceMap) (*EdgeMapResult, error) {
	width, height := m.Dims()
	out := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if m.IsEdge(x, y) {
				out.SetGray(x, y, color.Gray{255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode edge map: %w", err)
	}

	return &EdgeMapResult{
		Width:       width,
		Height:      height,
		EdgeCount:   m.EdgeCount(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
