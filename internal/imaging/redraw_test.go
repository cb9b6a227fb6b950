package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// decodeResultPNG decodes a base64 PNG payload back into an image.
func decodeResultPNG(t *testing.T, b64 string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	return img
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestRenderOutlines_DrawsStroke(t *testing.T) {
	img := createTestImage(50, 50, color.White)

	result, err := RenderOutlines(img, nil, []Outline{{X1: 5, Y1: 25, X2: 44, Y2: 25}}, RedrawOptions{})
	if err != nil {
		t.Fatalf("RenderOutlines failed: %v", err)
	}
	if result.StrokeCount != 1 {
		t.Errorf("StrokeCount = %d, want 1", result.StrokeCount)
	}

	out := decodeResultPNG(t, result.ImageBase64)
	for x := 5; x <= 44; x++ {
		if !isBlack(out.At(x, 25)) {
			t.Fatalf("Expected black stroke pixel at (%d,25)", x)
		}
	}
	if isBlack(out.At(25, 10)) {
		t.Error("Expected background to stay white")
	}
}

func TestRenderOutlines_DiagonalStrokeIsConnected(t *testing.T) {
	img := createTestImage(30, 30, color.White)

	result, err := RenderOutlines(img, nil, []Outline{{X1: 2, Y1: 3, X2: 27, Y2: 24}}, RedrawOptions{})
	if err != nil {
		t.Fatalf("RenderOutlines failed: %v", err)
	}

	out := decodeResultPNG(t, result.ImageBase64)
	count := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			if isBlack(out.At(x, y)) {
				count++
			}
		}
	}
	// Bresenham paints one pixel per step of the dominant axis.
	if count < 26 {
		t.Errorf("Expected at least 26 stroke pixels, got %d", count)
	}
}

func TestRenderOutlines_OutlinesOnlyErasesSource(t *testing.T) {
	img := createTestImage(40, 40, color.RGBA{0, 0, 255, 255})

	result, err := RenderOutlines(img, nil, []Outline{{X1: 0, Y1: 20, X2: 39, Y2: 20}}, RedrawOptions{OutlinesOnly: true})
	if err != nil {
		t.Fatalf("RenderOutlines failed: %v", err)
	}

	out := decodeResultPNG(t, result.ImageBase64)
	r, g, b, _ := out.At(10, 5).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Error("Expected white background with OutlinesOnly")
	}
	if !isBlack(out.At(10, 20)) {
		t.Error("Expected stroke over the erased background")
	}
}

func TestRenderOutlines_InteriorAsGray(t *testing.T) {
	img := createHalfPlaneImage(40, 40, 20)
	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	result, err := RenderOutlines(img, m, nil, RedrawOptions{InteriorAsGray: true})
	if err != nil {
		t.Fatalf("RenderOutlines failed: %v", err)
	}

	out := decodeResultPNG(t, result.ImageBase64)
	// Far from the step everything is non-edge and flattens to gray.
	r, _, _, _ := out.At(10, 5).RGBA()
	if uint8(r>>8) != interiorGray {
		t.Errorf("Expected flattened interior %#x, got %#x", interiorGray, uint8(r>>8))
	}
}

func TestRenderOutlines_NilImage(t *testing.T) {
	if _, err := RenderOutlines(nil, nil, nil, RedrawOptions{}); err == nil {
		t.Error("Expected error for nil source image")
	}
}

func TestRenderEdgeMap(t *testing.T) {
	img := createHalfPlaneImage(30, 30, 15)
	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	result, err := RenderEdgeMap(m)
	if err != nil {
		t.Fatalf("RenderEdgeMap failed: %v", err)
	}
	if result.Width != 30 || result.Height != 30 {
		t.Errorf("Dims = %dx%d, want 30x30", result.Width, result.Height)
	}
	if result.EdgeCount != m.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", result.EdgeCount, m.EdgeCount())
	}

	out := decodeResultPNG(t, result.ImageBase64)
	white := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			r, _, _, _ := out.At(x, y).RGBA()
			if r>>8 == 255 {
				white++
			}
		}
	}
	if white != m.EdgeCount() {
		t.Errorf("Rendered %d white pixels, want %d edges", white, m.EdgeCount())
	}
}
