// Package boundary measures Hausdorff distances between polygon boundaries.
//
// Rings are densified exterior first, then holes, and the Hausdorff witness
// over the flattened samples is mapped back to (ring, sample) positions.
// Ring topology (closure, orientation, hole containment) is the caller's
// responsibility.
package boundary

import (
	"math"

	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/hausdorff"
)

// Polygon is an exterior ring plus optional holes.
type Polygon struct {
	Exterior []geo.Point   `json:"exterior"`
	Holes    [][]geo.Point `json:"holes,omitempty"`
}

// Rings returns the exterior followed by the holes.
func (p Polygon) Rings() [][]geo.Point {
	rings := make([][]geo.Point, 0, 1+len(p.Holes))
	rings = append(rings, p.Exterior)
	return append(rings, p.Holes...)
}

// Densify samples every ring of p. Part 0 is the exterior, part i the hole
// i-1.
func Densify(p Polygon, opts densify.Options) (densify.FlattenedPolyline, error) {
	return densify.Multiline(p.Rings(), opts)
}

// DirectedWitness locates the farthest boundary sample of the source polygon
// and its nearest boundary sample on the target polygon.
type DirectedWitness struct {
	Distance    geo.Distance `json:"distance_m"`
	SourcePart  int          `json:"source_part"`
	SourceIndex int          `json:"source_index"`
	TargetPart  int          `json:"target_part"`
	TargetIndex int          `json:"target_index"`
	SourceCoord geo.Point    `json:"source_coord"`
	TargetCoord geo.Point    `json:"target_coord"`
}

// Witness is the symmetric result; AToB and BToA are the two directed passes.
type Witness struct {
	Distance geo.Distance    `json:"distance_m"`
	AToB     DirectedWitness `json:"a_to_b"`
	BToA     DirectedWitness `json:"b_to_a"`
}

// Directed is the directed Hausdorff distance from a's boundary to b's.
func Directed(a, b Polygon, opts densify.Options) (DirectedWitness, error) {
	sa, err := Densify(a, opts)
	if err != nil {
		return DirectedWitness{}, err
	}
	sb, err := Densify(b, opts)
	if err != nil {
		return DirectedWitness{}, err
	}
	return directed(sa, sb)
}

// Symmetric runs both directed passes and keeps the larger distance.
func Symmetric(a, b Polygon, opts densify.Options) (Witness, error) {
	sa, err := Densify(a, opts)
	if err != nil {
		return Witness{}, err
	}
	sb, err := Densify(b, opts)
	if err != nil {
		return Witness{}, err
	}

	ab, err := directed(sa, sb)
	if err != nil {
		return Witness{}, err
	}
	ba, err := directed(sb, sa)
	if err != nil {
		return Witness{}, err
	}
	d, err := geo.DistanceFromMeters(math.Max(ab.Distance.Meters(), ba.Distance.Meters()))
	if err != nil {
		return Witness{}, err
	}
	return Witness{Distance: d, AToB: ab, BToA: ba}, nil
}

func directed(source, target densify.FlattenedPolyline) (DirectedWitness, error) {
	w, err := hausdorff.Directed(source.Samples(), target.Samples())
	if err != nil {
		return DirectedWitness{}, err
	}

	sourcePart, sourceIndex, err := source.Locate(w.OriginIndex)
	if err != nil {
		return DirectedWitness{}, err
	}
	targetPart, targetIndex, err := target.Locate(w.CandidateIndex)
	if err != nil {
		return DirectedWitness{}, err
	}

	sourceCoord := source.Samples()[w.OriginIndex]
	targetCoord := target.Samples()[w.CandidateIndex]
	d, err := geo.GeodesicDistance(sourceCoord, targetCoord)
	if err != nil {
		return DirectedWitness{}, err
	}

	return DirectedWitness{
		Distance:    d,
		SourcePart:  sourcePart,
		SourceIndex: sourceIndex,
		TargetPart:  targetPart,
		TargetIndex: targetIndex,
		SourceCoord: sourceCoord,
		TargetCoord: targetCoord,
	}, nil
}
