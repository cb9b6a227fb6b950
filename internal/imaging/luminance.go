package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// GradientDir is a coarse compass classification of the local gradient.
//
// The direction names describe the dark-to-light transition: WestToEast means
// luminance increases moving east (the gradient vector points east).
type GradientDir int

const (
	GradWestToEast GradientDir = iota
	GradEastToWest
	GradNorthToSouth
	GradSouthToNorth
	GradNortheastToSouthwest
	GradSouthwestToNortheast
	GradNorthwestToSoutheast
	GradSoutheastToNorthwest
)

// String returns the compass notation for a gradient direction.
func (d GradientDir) String() string {
	switch d {
	case GradWestToEast:
		return "W->E"
	case GradEastToWest:
		return "E->W"
	case GradNorthToSouth:
		return "N->S"
	case GradSouthToNorth:
		return "S->N"
	case GradNortheastToSouthwest:
		return "NE->SW"
	case GradSouthwestToNortheast:
		return "SW->NE"
	case GradNorthwestToSoutheast:
		return "NW->SE"
	case GradSoutheastToNorthwest:
		return "SE->NW"
	}
	return "unknown"
}

// DefaultEdgeThreshold is the minimum Sobel magnitude for a pixel to count
// as an edge.
const DefaultEdgeThreshold = 25

// straightBand is the dead band on |Gx| / |Gy| inside which the gradient is
// classified as purely horizontal or vertical rather than diagonal.
const straightBand = 10

// LuminanceEntry holds the precomputed per-pixel values the detector reads.
type LuminanceEntry struct {
	// Gray is the luminance in [0,255], from round(0.30*R + 0.59*G + 0.11*B).
	Gray uint8

	// IsEdge is true iff the Sobel magnitude meets the edge threshold.
	IsEdge bool

	// Mag is the raw, unclipped Sobel magnitude. Clip with DisplayMag for
	// rendering.
	Mag int32

	// Gx, Gy are the signed Sobel components. Gx grows west-to-east; Gy grows
	// south-to-north (brighter rows above give positive Gy).
	Gx, Gy int32

	// Dir is the compass classification of (Gx, Gy).
	Dir GradientDir
}

// MapConfig controls how a LuminanceMap is built.
type MapConfig struct {
	// EdgeThreshold is the minimum Sobel magnitude for an edge pixel.
	// Zero means DefaultEdgeThreshold.
	EdgeThreshold int

	// SmoothRadius, when positive, applies a Gaussian blur of that radius to
	// the source before the luminance pass. Useful for noisy scans; leave
	// zero for clean line art.
	SmoothRadius float64
}

// LuminanceMap is the authoritative per-pixel edge and gradient source for
// the detector.
//
// The map is built once from an image and is read-only afterwards. All
// queries clamp out-of-range coordinates to the nearest valid pixel (border
// replication), so callers never need their own bounds checks.
type LuminanceMap struct {
	width   int
	height  int
	entries []LuminanceEntry
	edges   int
}

// NewLuminanceMap computes luminance, Sobel gradients, and edge flags for
// every pixel of img.
//
// The luminance pass uses the fixed weighted sum L = 0.30*R + 0.59*G + 0.11*B.
// The gradient pass applies the 3x3 Sobel operator over luminance with border
// replication:
//
//	Gx = (2*right + aboveRight + belowRight) - (2*left + aboveLeft + belowLeft)
//	Gy = (2*above + aboveLeft + aboveRight) - (2*below + belowLeft + belowRight)
//
// A pixel is an edge when round(sqrt(Gx²+Gy²)) >= cfg.EdgeThreshold.
//
// Returns ErrInvalidImage if img is nil or has no pixels.
func NewLuminanceMap(img image.Image, cfg MapConfig) (*LuminanceMap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d image", ErrInvalidImage, width, height)
	}

	if cfg.EdgeThreshold == 0 {
		cfg.EdgeThreshold = DefaultEdgeThreshold
	}
	if cfg.SmoothRadius > 0 {
		img = blur.Gaussian(img, cfg.SmoothRadius)
		bounds = img.Bounds()
	}

	m := &LuminanceMap{
		width:   width,
		height:  height,
		entries: make([]LuminanceEntry, width*height),
	}

	// Luminance pass.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			l := 0.30*float64(r>>8) + 0.59*float64(g>>8) + 0.11*float64(b>>8)
			m.entries[y*width+x].Gray = clipByte(math.Round(l))
		}
	}

	// Gradient pass over luminance, border-replicated.
	threshold := int32(cfg.EdgeThreshold)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum := func(dx, dy int) int32 {
				px := clamp(x+dx, 0, width-1)
				py := clamp(y+dy, 0, height-1)
				return int32(m.entries[py*width+px].Gray)
			}

			gx := (2*lum(1, 0) + lum(1, -1) + lum(1, 1)) -
				(2*lum(-1, 0) + lum(-1, -1) + lum(-1, 1))
			gy := (2*lum(0, -1) + lum(-1, -1) + lum(1, -1)) -
				(2*lum(0, 1) + lum(-1, 1) + lum(1, 1))
			mag := int32(math.Round(math.Sqrt(float64(gx*gx + gy*gy))))

			e := &m.entries[y*width+x]
			e.Gx = gx
			e.Gy = gy
			e.Mag = mag
			e.Dir = classifyGradient(gx, gy)
			if mag >= threshold {
				e.IsEdge = true
				m.edges++
			}
		}
	}

	return m, nil
}

// classifyGradient maps signed Sobel components to a compass direction.
// Components within the dead band are treated as straight horizontal or
// vertical transitions.
func classifyGradient(gx, gy int32) GradientDir {
	absGx, absGy := gx, gy
	if absGx < 0 {
		absGx = -absGx
	}
	if absGy < 0 {
		absGy = -absGy
	}

	switch {
	case absGy <= straightBand:
		if gx >= 0 {
			return GradWestToEast
		}
		return GradEastToWest
	case absGx <= straightBand:
		if gy >= 0 {
			return GradSouthToNorth
		}
		return GradNorthToSouth
	case gx > 0 && gy > 0:
		return GradSouthwestToNortheast
	case gx > 0 && gy < 0:
		return GradNorthwestToSoutheast
	case gx < 0 && gy > 0:
		return GradSoutheastToNorthwest
	default:
		return GradNortheastToSouthwest
	}
}

// Dims returns the map's width and height in pixels.
func (m *LuminanceMap) Dims() (int, int) { return m.width, m.height }

// EdgeCount returns the number of edge pixels in the map.
func (m *LuminanceMap) EdgeCount() int { return m.edges }

func (m *LuminanceMap) at(x, y int) *LuminanceEntry {
	x = clamp(x, 0, m.width-1)
	y = clamp(y, 0, m.height-1)
	return &m.entries[y*m.width+x]
}

// Luminance returns the grayscale value at (x, y), border-replicated.
func (m *LuminanceMap) Luminance(x, y int) uint8 { return m.at(x, y).Gray }

// IsEdge reports whether (x, y) is an edge pixel, border-replicated.
func (m *LuminanceMap) IsEdge(x, y int) bool { return m.at(x, y).IsEdge }

// GradientMag returns the raw, unclipped Sobel magnitude at (x, y).
func (m *LuminanceMap) GradientMag(x, y int) int32 { return m.at(x, y).Mag }

// DisplayMag returns the Sobel magnitude clipped to [0,255] for rendering.
func (m *LuminanceMap) DisplayMag(x, y int) uint8 {
	return clipByte(float64(m.at(x, y).Mag))
}

// GradientDir returns the compass direction code at (x, y).
func (m *LuminanceMap) GradientDir(x, y int) GradientDir { return m.at(x, y).Dir }

// Gradient returns the signed Sobel components at (x, y).
func (m *LuminanceMap) Gradient(x, y int) (gx, gy int32) {
	e := m.at(x, y)
	return e.Gx, e.Gy
}

// clipByte clips a value to [0,255], truncating any fraction; callers that
// want rounding round first.
func clipByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
