package densify

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// NoPart marks errors raised by single-polyline calls, which have no part index.
const NoPart = -1

var (
	// ErrMissingDensificationKnob is returned when neither a maximum segment
	// length nor a maximum segment angle is set.
	ErrMissingDensificationKnob = errors.New("densify: set a max segment length or a max segment angle")

	// ErrInvalidOffsets is returned for part offsets that do not delimit the
	// samples.
	ErrInvalidOffsets = errors.New("densify: invalid part offsets")

	// ErrIndexOutOfRange is returned by Locate for a flat index past the samples.
	ErrIndexOutOfRange = errors.New("densify: flat index out of range")
)

// VertexError locates an invalid input vertex. Err is the underlying
// *geo.CoordinateError.
type VertexError struct {
	Part   int
	Vertex int
	Err    error
}

func (e *VertexError) Error() string {
	if e.Part == NoPart {
		return fmt.Sprintf("vertex %d: %v", e.Vertex, e.Err)
	}
	return fmt.Sprintf("part %d vertex %d: %v", e.Part, e.Vertex, e.Err)
}

func (e *VertexError) Unwrap() error { return e.Err }

// DegeneratePolylineError reports a part with fewer than two distinct vertices.
type DegeneratePolylineError struct {
	Part int
}

func (e *DegeneratePolylineError) Error() string {
	if e.Part == NoPart {
		return "polyline needs at least two distinct vertices"
	}
	return fmt.Sprintf("part %d needs at least two distinct vertices", e.Part)
}

// SampleCapError reports a projected sample count above the configured cap.
// Expected counts every part up to and including Part.
type SampleCapError struct {
	Expected int
	Cap      int
	Part     int
}

func (e *SampleCapError) Error() string {
	if e.Part == NoPart {
		return fmt.Sprintf("densification needs %d samples, cap is %d", e.Expected, e.Cap)
	}
	return fmt.Sprintf("densification needs %d samples through part %d, cap is %d", e.Expected, e.Part, e.Cap)
}
