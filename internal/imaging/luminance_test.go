package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid-color image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createHalfPlaneImage creates an image black below the given row
func createHalfPlaneImage(width, height, splitY int) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := splitY; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestNewLuminanceMap_InvalidInput(t *testing.T) {
	if _, err := NewLuminanceMap(nil, MapConfig{}); err == nil {
		t.Error("Expected error for nil image")
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := NewLuminanceMap(empty, MapConfig{}); err == nil {
		t.Error("Expected error for zero-area image")
	}
}

func TestLuminance_Weights(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(2, 0, color.RGBA{0, 0, 255, 255})

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	// round(0.30*255), round(0.59*255), round(0.11*255)
	cases := []struct {
		x    int
		want uint8
	}{
		{0, 77},
		{1, 150},
		{2, 28},
	}
	for _, tc := range cases {
		if got := m.Luminance(tc.x, 0); got != tc.want {
			t.Errorf("Luminance(%d,0) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestLuminanceMap_UniformImageHasNoEdges(t *testing.T) {
	img := createTestImage(20, 20, color.White)

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	if m.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges in uniform image, got %d", m.EdgeCount())
	}
}

func TestLuminanceMap_HorizontalStepEdge(t *testing.T) {
	img := createHalfPlaneImage(20, 20, 10)

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	// The transition rows on both sides of the step must be edges.
	if !m.IsEdge(10, 9) || !m.IsEdge(10, 10) {
		t.Error("Expected edges on both sides of the luminance step")
	}
	// Far from the step there is nothing.
	if m.IsEdge(10, 2) || m.IsEdge(10, 17) {
		t.Error("Expected no edges away from the luminance step")
	}

	// Dark below, light above: the gradient points north.
	if dir := m.GradientDir(10, 9); dir != GradSouthToNorth {
		t.Errorf("GradientDir above step = %v, want %v", dir, GradSouthToNorth)
	}

	gx, gy := m.Gradient(10, 9)
	if gx != 0 {
		t.Errorf("Gx at horizontal step = %d, want 0", gx)
	}
	if gy <= 0 {
		t.Errorf("Gy at horizontal step = %d, want > 0", gy)
	}
}

func TestLuminanceMap_VerticalStepDirection(t *testing.T) {
	img := createTestImage(20, 20, color.White)
	for y := 0; y < 20; y++ {
		for x := 10; x < 20; x++ {
			img.Set(x, y, color.Black)
		}
	}

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	// Dark east, light west: the gradient points west.
	if dir := m.GradientDir(10, 10); dir != GradEastToWest {
		t.Errorf("GradientDir at vertical step = %v, want %v", dir, GradEastToWest)
	}
	gx, _ := m.Gradient(10, 10)
	if gx >= 0 {
		t.Errorf("Gx at dark-east step = %d, want < 0", gx)
	}
}

func TestLuminanceMap_DiagonalDirection(t *testing.T) {
	// Dark lower-left triangle: gradient points northeast.
	img := createTestImage(20, 20, color.White)
	for y := 0; y < 20; y++ {
		for x := 0; x <= y; x++ {
			img.Set(x, y, color.Black)
		}
	}

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	if dir := m.GradientDir(10, 10); dir != GradSouthwestToNortheast {
		t.Errorf("GradientDir on diagonal = %v, want %v", dir, GradSouthwestToNortheast)
	}
}

func TestLuminanceMap_BorderReplication(t *testing.T) {
	img := createHalfPlaneImage(10, 10, 5)

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	// Out-of-range queries clamp to the nearest valid pixel.
	if m.Luminance(-5, -5) != m.Luminance(0, 0) {
		t.Error("Negative coordinates should clamp to (0,0)")
	}
	if m.Luminance(100, 100) != m.Luminance(9, 9) {
		t.Error("Oversized coordinates should clamp to (9,9)")
	}
	if m.IsEdge(-1, 5) != m.IsEdge(0, 5) {
		t.Error("IsEdge should clamp the x coordinate")
	}
}

func TestLuminanceMap_EdgeThreshold(t *testing.T) {
	// A faint step: luminance difference of 16 gives magnitude ~64.
	img := createTestImage(20, 20, color.RGBA{200, 200, 200, 255})
	for y := 10; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{184, 184, 184, 255})
		}
	}

	low, err := NewLuminanceMap(img, MapConfig{EdgeThreshold: 25})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}
	high, err := NewLuminanceMap(img, MapConfig{EdgeThreshold: 200})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	if low.EdgeCount() == 0 {
		t.Error("Expected edges at the default threshold")
	}
	if high.EdgeCount() != 0 {
		t.Errorf("Expected no edges at threshold 200, got %d", high.EdgeCount())
	}
}

func TestLuminanceMap_DisplayMagClipped(t *testing.T) {
	img := createHalfPlaneImage(20, 20, 10)

	m, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	// The raw magnitude at a hard step exceeds 255; the display value
	// must not.
	if raw := m.GradientMag(10, 9); raw <= 255 {
		t.Errorf("Expected raw magnitude > 255 at hard step, got %d", raw)
	}
	if disp := m.DisplayMag(10, 9); disp != 255 {
		t.Errorf("DisplayMag = %d, want 255", disp)
	}
}

func TestLuminanceMap_SmoothRadius(t *testing.T) {
	// A single noisy pixel: smoothing should spread and weaken its
	// gradient response.
	img := createTestImage(20, 20, color.White)
	img.Set(10, 10, color.Black)

	sharp, err := NewLuminanceMap(img, MapConfig{})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}
	smooth, err := NewLuminanceMap(img, MapConfig{SmoothRadius: 2.0})
	if err != nil {
		t.Fatalf("NewLuminanceMap failed: %v", err)
	}

	if smooth.GradientMag(10, 9) >= sharp.GradientMag(10, 9) {
		t.Error("Smoothing should reduce the gradient magnitude of speckle")
	}
}
