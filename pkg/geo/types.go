package geo

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

const (
	// EarthRadiusMeters is the IUGG mean earth radius used by the default
	// spherical model.
	EarthRadiusMeters = 6_371_008.8

	WGS84SemiMajorAxisMeters = 6_378_137.0
	WGS84SemiMinorAxisMeters = 6_356_752.314245

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Point is a geodetic position in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPoint returns a validated point.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// NewPointUnchecked builds a point without validation. The caller is
// responsible for the coordinate ranges.
func NewPointUnchecked(lat, lon float64) Point {
	return Point{Lat: lat, Lon: lon}
}

// Validate checks latitude then longitude.
func (p Point) Validate() error {
	if err := validateLatitude(p.Lat); err != nil {
		return err
	}
	return validateLongitude(p.Lon)
}

// Point3D is a geodetic position in degrees with an altitude in meters above
// the reference ellipsoid.
type Point3D struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Alt float64 `json:"alt"`
}

// NewPoint3D returns a validated 3D point.
func NewPoint3D(lat, lon, alt float64) (Point3D, error) {
	p := Point3D{Lat: lat, Lon: lon, Alt: alt}
	if err := p.Validate(); err != nil {
		return Point3D{}, err
	}
	return p, nil
}

// NewPoint3DUnchecked builds a 3D point without validation.
func NewPoint3DUnchecked(lat, lon, alt float64) Point3D {
	return Point3D{Lat: lat, Lon: lon, Alt: alt}
}

// Validate checks the latitude and longitude ranges and that the altitude is
// finite.
func (p Point3D) Validate() error {
	if err := validateLatitude(p.Lat); err != nil {
		return err
	}
	if err := validateLongitude(p.Lon); err != nil {
		return err
	}
	return validateAltitude(p.Alt)
}

// Point drops the altitude.
func (p Point3D) Point() Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}

// Distance is a non-negative, finite length in meters.
type Distance struct {
	meters float64
}

// DistanceFromMeters validates m and wraps it.
func DistanceFromMeters(m float64) (Distance, error) {
	d := Distance{meters: m}
	if err := d.Validate(); err != nil {
		return Distance{}, err
	}
	return d, nil
}

// DistanceFromMetersUnchecked wraps m without validation.
func DistanceFromMetersUnchecked(m float64) Distance {
	return Distance{meters: m}
}

// Meters returns the length in meters.
func (d Distance) Meters() float64 { return d.meters }

// Kilometers returns the length in kilometers.
func (d Distance) Kilometers() float64 { return d.meters / 1000 }

// Validate fails with InvalidDistance for a negative or non-finite length.
func (d Distance) Validate() error {
	if !isFinite(d.meters) || d.meters < 0 {
		return &CoordinateError{Kind: InvalidDistance, Value: d.meters}
	}
	return nil
}

func (d Distance) String() string {
	return strconv.FormatFloat(d.meters, 'f', -1, 64) + " m"
}

// MarshalJSON encodes the distance as a bare number of meters.
func (d Distance) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, d.meters, 'f', -1, 64), nil
}

// UnmarshalJSON decodes a number of meters and validates it.
func (d *Distance) UnmarshalJSON(b []byte) error {
	m, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return errors.Wrap(err, "distance")
	}
	v, err := DistanceFromMeters(m)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Ellipsoid is an oblate spheroid given by its semi-axes in meters.
type Ellipsoid struct {
	SemiMajorAxis float64 `json:"semi_major_axis_m"`
	SemiMinorAxis float64 `json:"semi_minor_axis_m"`
}

// WGS84 returns the WGS84 reference ellipsoid.
func WGS84() Ellipsoid {
	return Ellipsoid{SemiMajorAxis: WGS84SemiMajorAxisMeters, SemiMinorAxis: WGS84SemiMinorAxisMeters}
}

// NewEllipsoid returns a validated ellipsoid.
func NewEllipsoid(semiMajor, semiMinor float64) (Ellipsoid, error) {
	e := Ellipsoid{SemiMajorAxis: semiMajor, SemiMinorAxis: semiMinor}
	if err := e.Validate(); err != nil {
		return Ellipsoid{}, err
	}
	return e, nil
}

// NewEllipsoidUnchecked builds an ellipsoid without validation.
func NewEllipsoidUnchecked(semiMajor, semiMinor float64) Ellipsoid {
	return Ellipsoid{SemiMajorAxis: semiMajor, SemiMinorAxis: semiMinor}
}

// Validate requires finite, positive axes with a >= b.
func (e Ellipsoid) Validate() error {
	a, b := e.SemiMajorAxis, e.SemiMinorAxis
	if !isFinite(a) || !isFinite(b) || a <= 0 || b <= 0 || a < b {
		return &EllipsoidError{SemiMajorAxis: a, SemiMinorAxis: b}
	}
	return nil
}

// MeanRadius returns (2a + b) / 3.
func (e Ellipsoid) MeanRadius() (float64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	r := (2*e.SemiMajorAxis + e.SemiMinorAxis) / 3
	if err := validateRadius(r); err != nil {
		return 0, err
	}
	return r, nil
}

// EccentricitySquared returns 1 - b²/a².
func (e Ellipsoid) EccentricitySquared() float64 {
	a, b := e.SemiMajorAxis, e.SemiMinorAxis
	return 1 - (b*b)/(a*a)
}

// BoundingBox is an axis-aligned lat/lon rectangle with inclusive edges.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// NewBoundingBox returns a validated bounding box.
func NewBoundingBox(minLat, maxLat, minLon, maxLon float64) (BoundingBox, error) {
	b := BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return b, nil
}

// Validate requires valid corner coordinates with min <= max on both axes.
func (b BoundingBox) Validate() error {
	if validateLatitude(b.MinLat) != nil || validateLatitude(b.MaxLat) != nil ||
		validateLongitude(b.MinLon) != nil || validateLongitude(b.MaxLon) != nil ||
		b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return &BoundingBoxError{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLon: b.MinLon, MaxLon: b.MaxLon}
	}
	return nil
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// ContainsPoint3D is Contains on the horizontal position; altitude is ignored.
func (b BoundingBox) ContainsPoint3D(p Point3D) bool {
	return b.Contains(p.Point())
}

// GeodesicSolution is a distance plus forward bearings in degrees [0, 360).
type GeodesicSolution struct {
	Distance       Distance `json:"distance_m"`
	InitialBearing float64  `json:"initial_bearing_deg"`
	FinalBearing   float64  `json:"final_bearing_deg"`
}
