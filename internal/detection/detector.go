package detection

import (
	"fmt"
	"image"
	"log"

	"github.com/dfdean/imageLib/internal/imaging"
)

// Options selects the detector's regime and output shaping.
type Options struct {
	// SquishyBlobs switches from the strict threshold regime to the
	// tolerant one, for organic or blobby imagery.
	SquishyBlobs bool `json:"squishy_blobs"`

	// DrawInteriorAsGray flattens non-edge pixels of the rebuilt image to
	// gray. Affects only the optional image sink.
	DrawInteriorAsGray bool `json:"draw_interior_as_gray"`

	// RedrawWithJustShapeOutlines erases the source background before the
	// rebuilt image is drawn. Affects only the optional image sink.
	RedrawWithJustShapeOutlines bool `json:"redraw_with_just_shape_outlines"`

	// Debug emits a one-line summary of the diagnostic counters to the log.
	Debug bool `json:"-"`

	// Override replaces the regime's config entirely when non-nil. Used by
	// tests; normal callers leave it nil.
	Override *Config `json:"-"`
}

// Metrics is the set of diagnostic counters from one detection pass.
type Metrics struct {
	// NumPossibleLines counts accumulator cells that received any vote.
	NumPossibleLines int `json:"num_possible_lines"`

	// NumLinesWithMinVotes counts cells that crossed the vote threshold.
	NumLinesWithMinVotes int `json:"num_lines_with_min_votes"`

	// NumDuplicateLines counts candidates folded into an existing segment.
	NumDuplicateLines int `json:"num_duplicate_lines"`

	// NumDensityRejected counts admissions rolled back for sparse pixels.
	NumDensityRejected int `json:"num_density_rejected"`

	// NumLines is the final segment count after filtering.
	NumLines int `json:"num_lines"`
}

// Result is the output of one detection pass.
type Result struct {
	Segments []*Segment `json:"segments"`
	Metrics  Metrics    `json:"metrics"`
}

// SegmentSink receives the final segment set.
type SegmentSink interface {
	ConsumeSegments([]*Segment) error
}

// ImageSink receives the rebuilt outline image.
type ImageSink interface {
	ConsumeImage(*imaging.RedrawResult) error
}

// DetectLines finds straight line segments in the luminance map's edge
// pixels.
//
// The pass runs voter, harvester+merger, and filter to completion in that
// order, single-threaded. The accumulator — the dominant allocation — is
// released as soon as harvesting finishes, before segment post-processing.
// The detector is a pure function of its inputs; it keeps no state between
// calls.
//
// img supplies segment colors and the redraw background; it may be nil when
// neither is wanted. bbox restricts the sweep; pass the zero Rectangle for
// the full image. Sinks are optional.
//
// Errors: ErrInvalidInput (nil luminance map, degenerate bbox) and
// ErrOutOfMemory are fatal — no partial segment list is returned.
// A sink write error is wrapped in ErrSinkFailure and returned alongside
// the still-valid Result.
func DetectLines(opts Options, img image.Image, lum *imaging.LuminanceMap,
	bbox image.Rectangle, segSink SegmentSink, imgSink ImageSink,
) (*Result, error) {
	if lum == nil {
		return nil, fmt.Errorf("%w: nil luminance map", ErrInvalidInput)
	}
	width, height := lum.Dims()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d luminance map", ErrInvalidInput, width, height)
	}

	full := image.Rect(0, 0, width, height)
	if bbox == (image.Rectangle{}) {
		bbox = full
	} else {
		if bbox.Max.X <= bbox.Min.X || bbox.Max.Y <= bbox.Min.Y {
			return nil, fmt.Errorf("%w: degenerate bbox %v", ErrInvalidInput, bbox)
		}
		bbox = bbox.Intersect(full)
		if bbox.Empty() {
			return nil, fmt.Errorf("%w: bbox outside image", ErrInvalidInput)
		}
	}

	cfg := StrictConfig()
	if opts.SquishyBlobs {
		cfg = SquishyConfig()
	}
	if opts.Override != nil {
		cfg = *opts.Override
	}
	cfg = cfg.normalized()

	result := &Result{}

	acc, err := NewAccumulator(width, height, cfg.ThetaStep)
	if err != nil {
		return nil, err
	}

	sweepVotes(lum, acc, bbox, cfg)

	mg := newMerger(lum, cfg, &result.Metrics)
	harvest(acc, mg, cfg, &result.Metrics)
	acc = nil // release before post-processing; it dominates the allocation

	result.Segments = filterSegments(mg.accepted, cfg)
	result.Metrics.NumLines = len(result.Segments)

	if img != nil {
		for _, s := range result.Segments {
			midX := (s.PointA.X + s.PointB.X) / 2
			midY := (s.PointA.Y + s.PointB.Y) / 2
			s.Color = imaging.HexAt(img, midX, midY)
		}
	}

	if opts.Debug {
		log.Printf("detect: possible=%d voted=%d duplicates=%d density_rejected=%d final=%d",
			result.Metrics.NumPossibleLines, result.Metrics.NumLinesWithMinVotes,
			result.Metrics.NumDuplicateLines, result.Metrics.NumDensityRejected,
			result.Metrics.NumLines)
	}

	// Sink failures are reported but never invalidate the segment set.
	var sinkErr error
	if segSink != nil {
		if err := segSink.ConsumeSegments(result.Segments); err != nil {
			sinkErr = fmt.Errorf("%w: segments: %v", ErrSinkFailure, err)
		}
	}
	if imgSink != nil && img != nil {
		outlines := make([]imaging.Outline, len(result.Segments))
		for i, s := range result.Segments {
			outlines[i] = imaging.Outline{
				X1: s.PointA.X, Y1: s.PointA.Y,
				X2: s.PointB.X, Y2: s.PointB.Y,
			}
		}
		rebuilt, err := imaging.RenderOutlines(img, lum, outlines, imaging.RedrawOptions{
			OutlinesOnly:   opts.RedrawWithJustShapeOutlines,
			InteriorAsGray: opts.DrawInteriorAsGray,
		})
		if err == nil {
			err = imgSink.ConsumeImage(rebuilt)
		}
		if err != nil && sinkErr == nil {
			sinkErr = fmt.Errorf("%w: rebuilt image: %v", ErrSinkFailure, err)
		}
	}

	return result, sinkErr
}
