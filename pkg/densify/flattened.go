package densify

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/geo"
)

// FlattenedPolyline is the samples of several parts stored back to back.
// offsets has one entry per part plus one; part i spans
// samples[offsets[i]:offsets[i+1]].
type FlattenedPolyline struct {
	samples []geo.Point
	offsets []int
}

// NewFlattenedPolyline wraps samples and offsets after checking that the
// offsets delimit the samples.
func NewFlattenedPolyline(samples []geo.Point, offsets []int) (FlattenedPolyline, error) {
	f := FlattenedPolyline{samples: samples, offsets: offsets}
	if err := f.Validate(); err != nil {
		return FlattenedPolyline{}, err
	}
	return f, nil
}

// Samples returns every part's samples back to back.
func (f FlattenedPolyline) Samples() []geo.Point { return f.samples }

// Offsets returns NumParts()+1 part boundaries into Samples.
func (f FlattenedPolyline) Offsets() []int { return f.offsets }

// NumParts returns the number of parts, zero for the zero value.
func (f FlattenedPolyline) NumParts() int {
	if len(f.offsets) == 0 {
		return 0
	}
	return len(f.offsets) - 1
}

// Part returns the samples of part i.
func (f FlattenedPolyline) Part(i int) []geo.Point {
	return f.samples[f.offsets[i]:f.offsets[i+1]]
}

// Parts returns every part as its own slice, sharing the sample storage.
func (f FlattenedPolyline) Parts() [][]geo.Point {
	out := make([][]geo.Point, f.NumParts())
	for i := range out {
		out[i] = f.Part(i)
	}
	return out
}

// Locate maps a flat sample index to its part and its index inside the part.
func (f FlattenedPolyline) Locate(flat int) (part, index int, err error) {
	if flat < 0 || flat >= len(f.samples) {
		return 0, 0, errors.Wrapf(ErrIndexOutOfRange, "index %d with %d samples", flat, len(f.samples))
	}
	// First offset past flat closes the owning part; zero-width parts are
	// skipped because their end offset equals their start.
	end := sort.Search(len(f.offsets), func(i int) bool { return f.offsets[i] > flat })
	part = end - 1
	return part, flat - f.offsets[part], nil
}

// Validate checks offsets[0] == 0, non-decreasing offsets and a final
// offset equal to the sample count.
func (f FlattenedPolyline) Validate() error {
	if len(f.offsets) == 0 {
		return errors.Wrap(ErrInvalidOffsets, "no offsets")
	}
	if f.offsets[0] != 0 {
		return errors.Wrapf(ErrInvalidOffsets, "first offset is %d", f.offsets[0])
	}
	for i := 1; i < len(f.offsets); i++ {
		if f.offsets[i] < f.offsets[i-1] {
			return errors.Wrapf(ErrInvalidOffsets, "offset %d decreases: %d < %d", i, f.offsets[i], f.offsets[i-1])
		}
	}
	if last := f.offsets[len(f.offsets)-1]; last != len(f.samples) {
		return errors.Wrapf(ErrInvalidOffsets, "last offset %d != %d samples", last, len(f.samples))
	}
	return nil
}

// Clip keeps the samples inside bbox. Offsets are recomputed per part, so a
// part with no surviving sample becomes a zero-width span. It fails with
// geo.ErrEmptyPointSet only when nothing survives.
func (f FlattenedPolyline) Clip(bbox geo.BoundingBox) (FlattenedPolyline, error) {
	if err := bbox.Validate(); err != nil {
		return FlattenedPolyline{}, err
	}

	samples := make([]geo.Point, 0, len(f.samples))
	offsets := make([]int, 1, len(f.offsets))
	for i := 0; i < f.NumParts(); i++ {
		for _, p := range f.Part(i) {
			if bbox.Contains(p) {
				samples = append(samples, p)
			}
		}
		offsets = append(offsets, len(samples))
	}
	if len(samples) == 0 {
		return FlattenedPolyline{}, geo.ErrEmptyPointSet
	}
	return FlattenedPolyline{samples: samples, offsets: offsets}, nil
}
