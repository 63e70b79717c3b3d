package geo

import (
	"math"

	"github.com/golang/geo/r3"
)

// ToECEF projects p onto earth-centered, earth-fixed coordinates in meters.
func ToECEF(p Point3D, e Ellipsoid) (r3.Vector, error) {
	if err := p.Validate(); err != nil {
		return r3.Vector{}, err
	}
	if err := e.Validate(); err != nil {
		return r3.Vector{}, err
	}
	return ToECEFUnchecked(p, e), nil
}

// ToECEFUnchecked projects a point that is already known to be valid.
func ToECEFUnchecked(p Point3D, e Ellipsoid) r3.Vector {
	lat := p.Lat * math.Pi / 180
	lon := p.Lon * math.Pi / 180
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	e2 := e.EccentricitySquared()
	n := e.SemiMajorAxis / math.Sqrt(1-e2*sinLat*sinLat)

	return r3.Vector{
		X: (n + p.Alt) * cosLat * cosLon,
		Y: (n + p.Alt) * cosLat * sinLon,
		Z: ((1-e2)*n + p.Alt) * sinLat,
	}
}

// GeodesicDistance3D is the straight-line chord between two points on WGS84.
// It is not a surface distance.
func GeodesicDistance3D(p1, p2 Point3D) (Distance, error) {
	return GeodesicDistance3DOnEllipsoid(WGS84(), p1, p2)
}

// GeodesicDistance3DOnEllipsoid is the ECEF chord between two points.
func GeodesicDistance3DOnEllipsoid(e Ellipsoid, p1, p2 Point3D) (Distance, error) {
	v1, err := ToECEF(p1, e)
	if err != nil {
		return Distance{}, err
	}
	v2, err := ToECEF(p2, e)
	if err != nil {
		return Distance{}, err
	}
	return DistanceFromMeters(v1.Sub(v2).Norm())
}
