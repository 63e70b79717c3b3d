package densify

const (
	DefaultMaxSegmentLengthMeters = 100.0
	DefaultMaxSegmentAngleDegrees = 0.1
	DefaultSampleCap              = 50_000
)

// Options bound the spacing of emitted samples. A spacing knob is active when
// it is greater than zero; at least one must be active. SampleCap bounds the
// total number of samples of one call and has no default: a zero cap rejects
// every input with a SampleCapError. Start from DefaultOptions to get one.
type Options struct {
	MaxSegmentLengthMeters float64 `json:"max_segment_length_m,omitempty"`
	MaxSegmentAngleDegrees float64 `json:"max_segment_angle_deg,omitempty"`
	SampleCap              int     `json:"sample_cap"`
}

// DefaultOptions returns 100 m / 0.1° spacing with a 50 000 sample cap.
func DefaultOptions() Options {
	return Options{
		MaxSegmentLengthMeters: DefaultMaxSegmentLengthMeters,
		MaxSegmentAngleDegrees: DefaultMaxSegmentAngleDegrees,
		SampleCap:              DefaultSampleCap,
	}
}

func (o Options) hasLength() bool { return o.MaxSegmentLengthMeters > 0 }
func (o Options) hasAngle() bool  { return o.MaxSegmentAngleDegrees > 0 }

// Validate fails with ErrMissingDensificationKnob when no spacing knob is set.
func (o Options) Validate() error {
	if !o.hasLength() && !o.hasAngle() {
		return ErrMissingDensificationKnob
	}
	return nil
}
