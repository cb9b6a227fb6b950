package detection

import (
	"math"
)

// Point represents a 2D point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// lexLess orders points by x, then y. The accumulator and the merger both
// rely on this order to keep endpoint pairs canonical.
func lexLess(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// Segment is an accepted line segment.
//
// PointA and PointB are ordered so PointA.X <= PointB.X, ties broken by y.
// Slope and YIntercept are derived from the endpoints; a vertical pair is
// given a finite sentinel slope by substituting dx=1.
type Segment struct {
	PointA Point `json:"point_a"`
	PointB Point `json:"point_b"`

	Slope      float64 `json:"slope"`
	YIntercept float64 `json:"y_intercept"`

	// AngleWithHorizontal is in radians.
	AngleWithHorizontal float64 `json:"angle_with_horizontal"`

	// PixelCount is the number of member edge pixels found by densification.
	PixelCount uint32 `json:"pixel_count"`

	// Color is the source pixel color sampled at the segment midpoint,
	// as a hex string. Empty when no source image was supplied.
	Color string `json:"color,omitempty"`

	length float64 // lazily computed; 0 means not yet computed
}

// newSegment builds a segment from two endpoints, ordering them and deriving
// the line geometry.
func newSegment(a, b Point) *Segment {
	s := &Segment{}
	s.setEndpoints(a, b)
	return s
}

// setEndpoints orders the pair by x (ties by y) and recomputes the derived
// geometry. Used both at admission and after a merge extends the segment.
func (s *Segment) setEndpoints(a, b Point) {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	s.PointA = a
	s.PointB = b

	dx := b.X - a.X
	if dx == 0 {
		// Finite sentinel slope for near-vertical lines.
		dx = 1
	}
	s.Slope = float64(b.Y-a.Y) / float64(dx)
	s.YIntercept = float64(a.Y) - s.Slope*float64(a.X)
	s.AngleWithHorizontal = math.Atan2(1.0, s.Slope)
	s.length = 0
}

// Length returns the Euclidean distance between the endpoints, computed on
// first use.
func (s *Segment) Length() float64 {
	if s.length == 0 {
		dx := float64(s.PointB.X - s.PointA.X)
		dy := float64(s.PointB.Y - s.PointA.Y)
		s.length = math.Sqrt(dx*dx + dy*dy)
	}
	return s.length
}

// minByX returns the point with the smaller x, ties broken by y.
func minByX(a, b Point) Point {
	if lexLess(b, a) {
		return b
	}
	return a
}

// maxByX returns the point with the larger x, ties broken by y.
func maxByX(a, b Point) Point {
	if lexLess(a, b) {
		return b
	}
	return a
}

// pointDistance is the Euclidean distance between two points.
func pointDistance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
