package imaging

import (
	"fmt"
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents RGB color values
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents HSL color values
type HSLColor struct {
	H int `json:"h"` // 0-360
	S int `json:"s"` // 0-100
	L int `json:"l"` // 0-100
}

// ColorResult contains color information in multiple formats
type ColorResult struct {
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor gets the color at a specific pixel
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	return colorAt(img, x, y), nil
}

// colorAt builds a ColorResult for an in-bounds pixel.
func colorAt(img image.Image, x, y int) *ColorResult {
	r, g, b, _ := img.At(x, y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	c := colorful.Color{R: float64(r8) / 255.0, G: float64(g8) / 255.0, B: float64(b8) / 255.0}
	h, s, l := c.Hsl()

	return &ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// HexAt returns the hex color at a pixel, clamping coordinates into bounds.
// Used to attribute a color to detected segments and regions.
func HexAt(img image.Image, x, y int) string {
	bounds := img.Bounds()
	x = clamp(x, bounds.Min.X, bounds.Max.X-1)
	y = clamp(y, bounds.Min.Y, bounds.Max.Y-1)
	return colorAt(img, x, y).Hex
}

// ColorDistance returns the perceptual (CIE-Lab) distance between two hex
// colors. An invalid hex string gives a distance of 1.0, the black-to-white
// distance.
func ColorDistance(hexA, hexB string) float64 {
	ca, errA := colorful.Hex(hexA)
	cb, errB := colorful.Hex(hexB)
	if errA != nil || errB != nil {
		return 1.0
	}
	return ca.DistanceLab(cb)
}
