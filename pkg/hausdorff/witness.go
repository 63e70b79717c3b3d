package hausdorff

import (
	"math"

	"github.com/azybler/geodist/pkg/geo"
)

// DirectedWitness is the result of one directed pass: the distance and the
// (origin, nearest candidate) pair realizing it. Indices refer to the
// caller's input ordering, before any bounding-box filtering.
type DirectedWitness struct {
	Distance       geo.Distance `json:"distance_m"`
	OriginIndex    int          `json:"origin_index"`
	CandidateIndex int          `json:"candidate_index"`
}

// Witness is a symmetric Hausdorff result. Forward is A→B, Reverse is B→A and
// Distance is the larger of the two.
type Witness struct {
	Distance geo.Distance    `json:"distance_m"`
	Forward  DirectedWitness `json:"forward"`
	Reverse  DirectedWitness `json:"reverse"`
}

// tagged pairs a value with its position in the caller's sequence so the
// position survives filtering and projection.
type tagged[T any] struct {
	value T
	index int
}

func tagAll[T any](values []T) []tagged[T] {
	out := make([]tagged[T], len(values))
	for i, v := range values {
		out[i] = tagged[T]{value: v, index: i}
	}
	return out
}

func tagWhere[T any](values []T, keep func(T) bool) []tagged[T] {
	var out []tagged[T]
	for i, v := range values {
		if keep(v) {
			out = append(out, tagged[T]{value: v, index: i})
		}
	}
	return out
}

// farthest accumulates the max-min of a directed pass. Ties keep the first
// origin reaching the maximum.
type farthest struct {
	meters    float64
	origin    int
	candidate int
}

func newFarthest() farthest {
	return farthest{meters: math.Inf(-1), origin: -1, candidate: -1}
}

func (f *farthest) offer(meters float64, origin, candidate int) {
	if meters > f.meters {
		f.meters, f.origin, f.candidate = meters, origin, candidate
	}
}

func (f farthest) witness() (DirectedWitness, error) {
	d, err := geo.DistanceFromMeters(f.meters)
	if err != nil {
		return DirectedWitness{}, err
	}
	return DirectedWitness{Distance: d, OriginIndex: f.origin, CandidateIndex: f.candidate}, nil
}

func combine(forward, reverse DirectedWitness) (Witness, error) {
	d, err := geo.DistanceFromMeters(math.Max(forward.Distance.Meters(), reverse.Distance.Meters()))
	if err != nil {
		return Witness{}, err
	}
	return Witness{Distance: d, Forward: forward, Reverse: reverse}, nil
}
