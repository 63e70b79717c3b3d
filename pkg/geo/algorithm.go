package geo

// Algorithm computes the geodesic distance between two points. Hausdorff and
// densification logic only depend on this capability, so any implementation
// (a full ellipsoidal solver, a test stub) can be substituted.
type Algorithm interface {
	Distance(p1, p2 Point) (Distance, error)
}

// BatchAlgorithm is implemented by algorithms with a dedicated batch path.
type BatchAlgorithm interface {
	Algorithm
	Distances(pairs []Pair) ([]Distance, error)
}

// Pair is an ordered pair of points.
type Pair struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Distances evaluates every pair with alg in caller order. It fails on the
// first invalid pair and returns no partial results.
func Distances(alg Algorithm, pairs []Pair) ([]Distance, error) {
	if b, ok := alg.(BatchAlgorithm); ok {
		return b.Distances(pairs)
	}
	out := make([]Distance, len(pairs))
	for i, pair := range pairs {
		d, err := alg.Distance(pair.From, pair.To)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// GeodesicDistance is the great-circle distance on the mean earth sphere.
func GeodesicDistance(p1, p2 Point) (Distance, error) {
	return Spherical{}.Distance(p1, p2)
}

// GeodesicDistanceWith uses a caller-supplied algorithm.
func GeodesicDistanceWith(alg Algorithm, p1, p2 Point) (Distance, error) {
	return alg.Distance(p1, p2)
}

// GeodesicDistanceOnRadius uses a sphere of the given radius in meters.
func GeodesicDistanceOnRadius(radius float64, p1, p2 Point) (Distance, error) {
	s, err := NewSpherical(radius)
	if err != nil {
		return Distance{}, err
	}
	return s.Distance(p1, p2)
}

// GeodesicDistanceOnEllipsoid uses a sphere with the ellipsoid's mean radius.
func GeodesicDistanceOnEllipsoid(e Ellipsoid, p1, p2 Point) (Distance, error) {
	s, err := SphericalFromEllipsoid(e)
	if err != nil {
		return Distance{}, err
	}
	return s.Distance(p1, p2)
}

// GeodesicDistances measures every pair on the mean earth sphere.
func GeodesicDistances(pairs []Pair) ([]Distance, error) {
	return Spherical{}.Distances(pairs)
}

// GeodesicDistancesWith measures every pair with alg.
func GeodesicDistancesWith(alg Algorithm, pairs []Pair) ([]Distance, error) {
	return Distances(alg, pairs)
}

// GeodesicDistancesOnRadius measures every pair on a sphere of the given radius.
func GeodesicDistancesOnRadius(radius float64, pairs []Pair) ([]Distance, error) {
	s, err := NewSpherical(radius)
	if err != nil {
		return nil, err
	}
	return s.Distances(pairs)
}

// GeodesicDistancesOnEllipsoid measures every pair on the mean-radius sphere of e.
func GeodesicDistancesOnEllipsoid(e Ellipsoid, pairs []Pair) ([]Distance, error) {
	s, err := SphericalFromEllipsoid(e)
	if err != nil {
		return nil, err
	}
	return s.Distances(pairs)
}

// GeodesicWithBearings returns distance and bearings on the mean earth sphere.
func GeodesicWithBearings(p1, p2 Point) (GeodesicSolution, error) {
	return Spherical{}.WithBearings(p1, p2)
}

// GeodesicWithBearingsOnRadius is GeodesicWithBearings on a sphere of the given radius.
func GeodesicWithBearingsOnRadius(radius float64, p1, p2 Point) (GeodesicSolution, error) {
	s, err := NewSpherical(radius)
	if err != nil {
		return GeodesicSolution{}, err
	}
	return s.WithBearings(p1, p2)
}

// GeodesicWithBearingsOnEllipsoid is GeodesicWithBearings on the mean-radius sphere of e.
func GeodesicWithBearingsOnEllipsoid(e Ellipsoid, p1, p2 Point) (GeodesicSolution, error) {
	s, err := SphericalFromEllipsoid(e)
	if err != nil {
		return GeodesicSolution{}, err
	}
	return s.WithBearings(p1, p2)
}
