package geo

import (
	"math"

	"github.com/golang/geo/s1"
)

// Spherical computes great-circle distances with the haversine formula on a
// sphere. The zero value uses EarthRadiusMeters.
type Spherical struct {
	radius float64
}

// NewSpherical returns a spherical model with the given radius in meters.
func NewSpherical(radius float64) (Spherical, error) {
	if err := validateRadius(radius); err != nil {
		return Spherical{}, err
	}
	return Spherical{radius: radius}, nil
}

// SphericalFromEllipsoid returns a sphere with the ellipsoid's mean radius.
func SphericalFromEllipsoid(e Ellipsoid) (Spherical, error) {
	r, err := e.MeanRadius()
	if err != nil {
		return Spherical{}, err
	}
	return Spherical{radius: r}, nil
}

// Radius returns the sphere radius in meters.
func (s Spherical) Radius() float64 {
	if s.radius == 0 {
		return EarthRadiusMeters
	}
	return s.radius
}

// Distance returns the great-circle distance between p1 and p2.
func (s Spherical) Distance(p1, p2 Point) (Distance, error) {
	if err := p1.Validate(); err != nil {
		return Distance{}, err
	}
	if err := p2.Validate(); err != nil {
		return Distance{}, err
	}
	return DistanceFromMeters(s.Radius() * centralAngle(p1, p2).Radians())
}

// Distances evaluates pairs in order and stops at the first invalid pair.
func (s Spherical) Distances(pairs []Pair) ([]Distance, error) {
	out := make([]Distance, len(pairs))
	for i, pair := range pairs {
		d, err := s.Distance(pair.From, pair.To)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// WithBearings returns the distance with initial and final bearings.
// Coincident points report bearings of 0.
func (s Spherical) WithBearings(p1, p2 Point) (GeodesicSolution, error) {
	d, err := s.Distance(p1, p2)
	if err != nil {
		return GeodesicSolution{}, err
	}
	if d.Meters() == 0 {
		return GeodesicSolution{Distance: d}, nil
	}

	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180

	initial := bearing(lat1, lat2, dLon)
	reverse := bearing(lat2, lat1, -dLon)

	return GeodesicSolution{
		Distance:       d,
		InitialBearing: initial,
		FinalBearing:   normalizeBearing(reverse + 180),
	}, nil
}

// LowerBoundToRect returns a distance in meters that is never larger than the
// great-circle distance from p to any point of the lat/lon rectangle. It lets
// a spatial index skip subtrees without changing which candidate is nearest.
func (s Spherical) LowerBoundToRect(p Point, minLat, minLon, maxLat, maxLon float64) float64 {
	const deg = math.Pi / 180
	rad := pointRectDistRad(p.Lat*deg, p.Lon*deg, minLat*deg, minLon*deg, maxLat*deg, maxLon*deg)
	// Shave a relative epsilon so rounding never lifts the bound above an
	// exact haversine value.
	bound := s.Radius() * rad * (1 - 1e-9)
	if bound < 0 || math.IsNaN(bound) {
		return 0
	}
	return bound
}

// centralAngle is the haversine central angle between two points. The
// haversine term is clamped to [0, 1] so identical and antipodal points never
// produce NaN.
func centralAngle(p1, p2 Point) s1.Angle {
	lat1r := p1.Lat * math.Pi / 180
	lat2r := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLon := (p2.Lon - p1.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	a = math.Min(math.Max(a, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return s1.Angle(c)
}

func bearing(lat1, lat2, dLon float64) float64 {
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return normalizeBearing(s1.Angle(math.Atan2(y, x)).Degrees())
}

func normalizeBearing(deg float64) float64 {
	b := math.Mod(deg, 360)
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b = 0
	}
	return b
}

// pointRectDistRad is the point-to-rectangle distance on the unit sphere from
// Schubert, Zimek and Kriegel, "Geodetic Distance Queries on R-Trees for
// Indexing Geographic Data" (2013).
func pointRectDistRad(φq, λq, φl, λl, φh, λh float64) float64 {
	const (
		twoΠ  = 2 * math.Pi
		halfΠ = math.Pi / 2
	)

	distRad := func(φa, λa, φb, λb float64) float64 {
		if φa == φb && λa == λb {
			return 0
		}
		sinΔφ := math.Sin((φa - φb) / 2)
		sinΔλ := math.Sin((λa - λb) / 2)
		h := sinΔφ*sinΔφ + sinΔλ*sinΔλ*math.Cos(φa)*math.Cos(φb)
		return 2 * math.Asin(math.Sqrt(math.Min(h, 1)))
	}

	if φl >= φh && λl >= λh {
		return distRad(φl, λl, φq, λq)
	}

	if λl <= λq && λq <= λh {
		switch {
		case φl <= φq && φq <= φh:
			return 0
		case φq < φl:
			return φl - φq
		default:
			return φq - φh
		}
	}

	Δλe := λl - λq
	Δλw := λq - λh
	if Δλe < 0 {
		Δλe += twoΠ
	}
	if Δλw < 0 {
		Δλw += twoΠ
	}
	Δλ, λedge := Δλe, λl
	if Δλw < Δλe {
		Δλ, λedge = Δλw, λh
	}

	sinΔλ, cosΔλ := math.Sincos(Δλ)
	tanφq := math.Tan(φq)

	if Δλ >= halfΠ {
		φmid := (φh + φl) / 2
		if tanφq >= math.Tan(φmid)*cosΔλ {
			return distRad(φq, λq, φh, λedge)
		}
		return distRad(φq, λq, φl, λedge)
	}
	if tanφq >= math.Tan(φh)*cosΔλ {
		return distRad(φq, λq, φh, λedge)
	}
	if tanφq <= math.Tan(φl)*cosΔλ {
		return distRad(φq, λq, φl, λedge)
	}

	// Cross-track distance to the edge meridian.
	return math.Asin(math.Cos(φq) * sinΔλ)
}
