package detection

import "math"

// Default quantization of the Hough parameter space. Both are intentionally
// lossy; tightening either grows the accumulator quadratically and shifts
// the vote counts the thresholds below were tuned against.
const (
	// DefaultThetaStep is the angular quantum of the accumulator, in radians.
	DefaultThetaStep = 0.01

	// DefaultThetaSweep is the half-width of the angular band voted around a
	// pixel's gradient angle. Wider bands find more true lines but cost
	// votes linearly; pi/8 is the empirical knee.
	DefaultThetaSweep = math.Pi / 8
)

// Config holds every tunable of the detection pipeline.
//
// Use StrictConfig or SquishyConfig rather than constructing one by hand;
// the two regimes differ only in MinVotes and MinUsefulLength.
type Config struct {
	// MinVotes is the accumulator threshold below which a cell is noise.
	MinVotes uint32

	// MinUsefulLength discards accepted segments shorter than this, in
	// pixels.
	MinUsefulLength float64

	// MinPixelDensity is the minimum ratio of member edge pixels to segment
	// length for an admission to stand.
	MinPixelDensity float64

	// MinPointResolution bounds both the y-intercept similarity and the
	// endpoint proximity tests in the merger, in pixels.
	MinPointResolution float64

	// AngleResolution bounds the slope similarity test in the merger.
	// Despite the name this is a slope tolerance, not an angle; see the
	// merger notes in DESIGN.md.
	AngleResolution float64

	// MaxDashGap is the largest x gap across which two collinear dashes
	// still merge into one segment, in pixels.
	MaxDashGap float64

	// ThetaStep is the accumulator's angular quantum. Zero means
	// DefaultThetaStep.
	ThetaStep float64

	// ThetaSweep is the voter's angular half-band. Zero means
	// DefaultThetaSweep.
	ThetaSweep float64

	// FilterByDensity enables the final density filter. Off by default: the
	// merger does not union member-pixel lists when it extends a segment,
	// so post-merge densities undercount and the filter would be lossy.
	FilterByDensity bool
}

// StrictConfig returns the default thresholds, tuned for technical line art.
func StrictConfig() Config {
	return Config{
		MinVotes:           90,
		MinUsefulLength:    50,
		MinPixelDensity:    1.0 / 5.0,
		MinPointResolution: 10,
		AngleResolution:    0.4,
		MaxDashGap:         10,
		ThetaStep:          DefaultThetaStep,
		ThetaSweep:         DefaultThetaSweep,
	}
}

// SquishyConfig returns the tolerant thresholds for organic, blobby imagery.
func SquishyConfig() Config {
	cfg := StrictConfig()
	cfg.MinVotes = 10
	cfg.MinUsefulLength = 5
	return cfg
}

// normalized fills zero quantization fields with their defaults.
func (c Config) normalized() Config {
	if c.ThetaStep == 0 {
		c.ThetaStep = DefaultThetaStep
	}
	if c.ThetaSweep == 0 {
		c.ThetaSweep = DefaultThetaSweep
	}
	return c
}
