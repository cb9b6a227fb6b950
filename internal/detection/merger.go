package detection

import (
	"math"

	"github.com/dfdean/imageLib/internal/imaging"
)

// merger maintains the accepted-segment list. Each candidate from the
// harvester is either folded into an existing collinear segment or admitted
// as a new one.
//
// The scan over accepted segments is linear, making the whole merge
// O(candidates * accepted). That is quadratic in the output size, not the
// image size; the harvester's vote threshold keeps it small in practice.
type merger struct {
	accepted []*Segment
	lum      *imaging.LuminanceMap
	cfg      Config
	metrics  *Metrics
}

func newMerger(lum *imaging.LuminanceMap, cfg Config, metrics *Metrics) *merger {
	return &merger{
		lum:     lum,
		cfg:     cfg,
		metrics: metrics,
	}
}

// offer decides between "merge into existing" and "admit new" for one
// candidate endpoint pair.
func (m *merger) offer(a, b Point) {
	cand := newSegment(a, b)

	for _, existing := range m.accepted {
		if !m.overlaps(existing, cand) {
			continue
		}
		// Destructive merge: the existing segment keeps its identity and
		// stretches to cover the candidate. The candidate's votes are not
		// propagated.
		existing.setEndpoints(
			minByX(existing.PointA, cand.PointA),
			maxByX(existing.PointB, cand.PointB),
		)
		m.metrics.NumDuplicateLines++
		return
	}

	// Admission: count the member edge pixels under the candidate, then
	// make sure they are dense enough to be a real line rather than a
	// scatter of unrelated edges along the same (rho, theta). The walk is
	// column-by-column, so the ratio is only meaningful for x-dominant
	// segments; a steep segment spans too few columns to judge.
	cand.PixelCount = m.densify(cand)
	if length := cand.Length(); length > 0 && math.Abs(cand.Slope) <= 1 &&
		float64(cand.PixelCount)/length < m.cfg.MinPixelDensity {
		m.metrics.NumDensityRejected++
		return
	}

	m.accepted = append(m.accepted, cand)
}

// overlaps implements the overlap predicate: the slope and intercept
// similarity tests must both hold, along with at least one of the endpoint
// conditions.
//
// AngleResolution bounds the difference of slopes, not of angles. The two
// diverge near vertical; the slope form is kept deliberately (see
// DESIGN.md).
func (m *merger) overlaps(e, c *Segment) bool {
	if math.Abs(c.Slope-e.Slope) > m.cfg.AngleResolution {
		return false
	}
	if math.Abs(c.YIntercept-e.YIntercept) > m.cfg.MinPointResolution {
		return false
	}

	switch {
	case e.PointA.X >= c.PointA.X && e.PointA.X <= c.PointB.X:
		return true
	case e.PointB.X >= c.PointA.X && e.PointB.X <= c.PointB.X:
		return true
	case math.Abs(float64(e.PointA.X-c.PointB.X)) <= m.cfg.MaxDashGap:
		return true
	case math.Abs(float64(e.PointB.X-c.PointA.X)) <= m.cfg.MaxDashGap:
		return true
	case pointDistance(e.PointA, c.PointA) <= m.cfg.MinPointResolution:
		return true
	}
	return false
}

// densify walks the segment's theoretical line across its x range and
// counts the edge pixels lying on or within one pixel of it. For each
// integer x the probe covers floor(y)-1, floor(y), floor(y)+1, absorbing
// the quantization between the fitted line and the rasterized one.
func (m *merger) densify(s *Segment) uint32 {
	var count uint32
	for x := s.PointA.X; x <= s.PointB.X; x++ {
		yTheoretical := s.Slope*float64(x) + s.YIntercept
		yBase := int(math.Floor(yTheoretical))
		for _, y := range [3]int{yBase - 1, yBase, yBase + 1} {
			if m.lum.IsEdge(x, y) {
				count++
			}
		}
	}
	return count
}
