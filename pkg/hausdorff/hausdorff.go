// Package hausdorff computes directed and symmetric Hausdorff distances
// between point sets, together with the indices of the points realizing them.
//
// Every entry point validates its whole input before computing anything. A
// directed pass uses either a brute-force scan or a transient spatial index
// over the candidate set, see ChooseStrategy; both yield the same witness.
//
// 2D variants measure with a geo.Algorithm (great-circle by default). 3D
// variants measure straight-line chords between ECEF projections, so their
// results are not comparable with 2D results at non-zero altitude.
package hausdorff

import (
	"github.com/golang/geo/r3"

	"github.com/azybler/geodist/pkg/geo"
)

// Directed returns max over a of the great-circle distance to the nearest b.
func Directed(a, b []geo.Point) (DirectedWitness, error) {
	return DirectedWith(geo.Spherical{}, a, b)
}

// DirectedWith is Directed measured with alg.
func DirectedWith(alg geo.Algorithm, a, b []geo.Point) (DirectedWitness, error) {
	if err := validate2D(a, b); err != nil {
		return DirectedWitness{}, err
	}
	return directed2D(alg, tagAll(a), tagAll(b))
}

// Symmetric returns the larger of the two directed distances.
func Symmetric(a, b []geo.Point) (Witness, error) {
	return SymmetricWith(geo.Spherical{}, a, b)
}

// SymmetricWith is Symmetric measured with alg.
func SymmetricWith(alg geo.Algorithm, a, b []geo.Point) (Witness, error) {
	if err := validate2D(a, b); err != nil {
		return Witness{}, err
	}
	return symmetric2D(alg, tagAll(a), tagAll(b))
}

// DirectedClipped is Directed over the points inside bbox. Witness indices
// still refer to positions in a and b.
func DirectedClipped(a, b []geo.Point, bbox geo.BoundingBox) (DirectedWitness, error) {
	return DirectedClippedWith(geo.Spherical{}, a, b, bbox)
}

// DirectedClippedWith is DirectedClipped measured with alg.
func DirectedClippedWith(alg geo.Algorithm, a, b []geo.Point, bbox geo.BoundingBox) (DirectedWitness, error) {
	ta, tb, err := clip2D(a, b, bbox)
	if err != nil {
		return DirectedWitness{}, err
	}
	return directed2D(alg, ta, tb)
}

// SymmetricClipped is Symmetric over the points inside bbox.
func SymmetricClipped(a, b []geo.Point, bbox geo.BoundingBox) (Witness, error) {
	return SymmetricClippedWith(geo.Spherical{}, a, b, bbox)
}

// SymmetricClippedWith is SymmetricClipped measured with alg.
func SymmetricClippedWith(alg geo.Algorithm, a, b []geo.Point, bbox geo.BoundingBox) (Witness, error) {
	ta, tb, err := clip2D(a, b, bbox)
	if err != nil {
		return Witness{}, err
	}
	return symmetric2D(alg, ta, tb)
}

// Directed3D is the directed distance between ECEF projections on WGS84.
func Directed3D(a, b []geo.Point3D) (DirectedWitness, error) {
	return Directed3DOnEllipsoid(geo.WGS84(), a, b)
}

// Directed3DOnEllipsoid is Directed3D with ECEF projections on e.
func Directed3DOnEllipsoid(e geo.Ellipsoid, a, b []geo.Point3D) (DirectedWitness, error) {
	if err := validate3D(e, a, b); err != nil {
		return DirectedWitness{}, err
	}
	return directed3D(project(tagAll(a), e), project(tagAll(b), e))
}

// Symmetric3D returns the larger of the two directed 3D distances on WGS84.
func Symmetric3D(a, b []geo.Point3D) (Witness, error) {
	return Symmetric3DOnEllipsoid(geo.WGS84(), a, b)
}

// Symmetric3DOnEllipsoid is Symmetric3D with ECEF projections on e.
func Symmetric3DOnEllipsoid(e geo.Ellipsoid, a, b []geo.Point3D) (Witness, error) {
	if err := validate3D(e, a, b); err != nil {
		return Witness{}, err
	}
	pa, pb := project(tagAll(a), e), project(tagAll(b), e)
	return symmetric3D(pa, pb)
}

// DirectedClipped3D filters by horizontal position; altitude is ignored.
func DirectedClipped3D(a, b []geo.Point3D, bbox geo.BoundingBox) (DirectedWitness, error) {
	return DirectedClipped3DOnEllipsoid(geo.WGS84(), a, b, bbox)
}

// DirectedClipped3DOnEllipsoid is DirectedClipped3D with ECEF projections on e.
func DirectedClipped3DOnEllipsoid(e geo.Ellipsoid, a, b []geo.Point3D, bbox geo.BoundingBox) (DirectedWitness, error) {
	ta, tb, err := clip3D(e, a, b, bbox)
	if err != nil {
		return DirectedWitness{}, err
	}
	return directed3D(project(ta, e), project(tb, e))
}

// SymmetricClipped3D is Symmetric3D over the points inside bbox, by horizontal position.
func SymmetricClipped3D(a, b []geo.Point3D, bbox geo.BoundingBox) (Witness, error) {
	return SymmetricClipped3DOnEllipsoid(geo.WGS84(), a, b, bbox)
}

// SymmetricClipped3DOnEllipsoid is SymmetricClipped3D with ECEF projections on e.
func SymmetricClipped3DOnEllipsoid(e geo.Ellipsoid, a, b []geo.Point3D, bbox geo.BoundingBox) (Witness, error) {
	ta, tb, err := clip3D(e, a, b, bbox)
	if err != nil {
		return Witness{}, err
	}
	return symmetric3D(project(ta, e), project(tb, e))
}

func symmetric2D(alg geo.Algorithm, a, b []tagged[geo.Point]) (Witness, error) {
	forward, err := directed2D(alg, a, b)
	if err != nil {
		return Witness{}, err
	}
	reverse, err := directed2D(alg, b, a)
	if err != nil {
		return Witness{}, err
	}
	return combine(forward, reverse)
}

func symmetric3D(a, b []tagged[r3.Vector]) (Witness, error) {
	forward, err := directed3D(a, b)
	if err != nil {
		return Witness{}, err
	}
	reverse, err := directed3D(b, a)
	if err != nil {
		return Witness{}, err
	}
	return combine(forward, reverse)
}

func validate2D(a, b []geo.Point) error {
	if len(a) == 0 || len(b) == 0 {
		return geo.ErrEmptyPointSet
	}
	for _, p := range a {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, p := range b {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validate3D(e geo.Ellipsoid, a, b []geo.Point3D) error {
	if len(a) == 0 || len(b) == 0 {
		return geo.ErrEmptyPointSet
	}
	for _, p := range a {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, p := range b {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return e.Validate()
}

func clip2D(a, b []geo.Point, bbox geo.BoundingBox) ([]tagged[geo.Point], []tagged[geo.Point], error) {
	if err := validate2D(a, b); err != nil {
		return nil, nil, err
	}
	if err := bbox.Validate(); err != nil {
		return nil, nil, err
	}
	ta, tb := tagWhere(a, bbox.Contains), tagWhere(b, bbox.Contains)
	if len(ta) == 0 || len(tb) == 0 {
		return nil, nil, geo.ErrEmptyPointSet
	}
	return ta, tb, nil
}

func clip3D(e geo.Ellipsoid, a, b []geo.Point3D, bbox geo.BoundingBox) ([]tagged[geo.Point3D], []tagged[geo.Point3D], error) {
	if err := validate3D(e, a, b); err != nil {
		return nil, nil, err
	}
	if err := bbox.Validate(); err != nil {
		return nil, nil, err
	}
	ta, tb := tagWhere(a, bbox.ContainsPoint3D), tagWhere(b, bbox.ContainsPoint3D)
	if len(ta) == 0 || len(tb) == 0 {
		return nil, nil, geo.ErrEmptyPointSet
	}
	return ta, tb, nil
}
