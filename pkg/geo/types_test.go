package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantKind Kind
		wantVal  float64
	}{
		{name: "valid", lat: 1.3521, lon: 103.8198},
		{name: "poles and antimeridian", lat: 90, lon: -180},
		{name: "latitude too high", lat: 100, lon: 0, wantKind: InvalidLatitude, wantVal: 100},
		{name: "latitude too low", lat: -90.5, lon: 0, wantKind: InvalidLatitude, wantVal: -90.5},
		{name: "longitude too high", lat: 0, lon: 181, wantKind: InvalidLongitude, wantVal: 181},
		{name: "infinite longitude", lat: 0, lon: math.Inf(-1), wantKind: InvalidLongitude, wantVal: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPoint(tt.lat, tt.lon)
			if tt.wantKind == 0 {
				require.NoError(t, err)
				assert.Equal(t, Point{Lat: tt.lat, Lon: tt.lon}, p)
				return
			}
			var cerr *CoordinateError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.wantKind, cerr.Kind)
			assert.Equal(t, tt.wantVal, cerr.Value)
		})
	}
}

func TestNewPointNaNLatitude(t *testing.T) {
	_, err := NewPoint(math.NaN(), 0)
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidLatitude, cerr.Kind)
	assert.True(t, math.IsNaN(cerr.Value))
}

func TestUncheckedConstructorsSkipValidation(t *testing.T) {
	p := NewPointUnchecked(120, 0)
	assert.Equal(t, 120.0, p.Lat)

	var cerr *CoordinateError
	require.ErrorAs(t, p.Validate(), &cerr)
	assert.Equal(t, InvalidLatitude, cerr.Kind)

	d := DistanceFromMetersUnchecked(-1)
	require.ErrorAs(t, d.Validate(), &cerr)
	assert.Equal(t, InvalidDistance, cerr.Kind)

	p3 := NewPoint3DUnchecked(0, 0, math.NaN())
	require.ErrorAs(t, p3.Validate(), &cerr)
	assert.Equal(t, InvalidAltitude, cerr.Kind)
}

func TestNewPoint3D(t *testing.T) {
	p, err := NewPoint3D(10, 20, -400)
	require.NoError(t, err)
	assert.Equal(t, Point{Lat: 10, Lon: 20}, p.Point())

	_, err = NewPoint3D(0, 0, math.Inf(1))
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidAltitude, cerr.Kind)
}

func TestDistanceFromMeters(t *testing.T) {
	d, err := DistanceFromMeters(1500)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, d.Meters())
	assert.Equal(t, 1.5, d.Kilometers())
	assert.Equal(t, "1500 m", d.String())

	for _, m := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		_, err := DistanceFromMeters(m)
		var cerr *CoordinateError
		require.ErrorAs(t, err, &cerr, "meters=%v", m)
		assert.Equal(t, InvalidDistance, cerr.Kind)
	}
}

func TestDistanceJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D Distance `json:"d"`
	}{DistanceFromMetersUnchecked(12.5)})
	require.NoError(t, err)
	assert.Equal(t, `{"d":12.5}`, string(b))

	var out struct {
		D Distance `json:"d"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, 12.5, out.D.Meters())

	err = json.Unmarshal([]byte(`{"d":-3}`), &out)
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidDistance, cerr.Kind)
}

func TestEllipsoid(t *testing.T) {
	e := WGS84()
	require.NoError(t, e.Validate())

	r, err := e.MeanRadius()
	require.NoError(t, err)
	assert.InDelta(t, (2*WGS84SemiMajorAxisMeters+WGS84SemiMinorAxisMeters)/3, r, 1e-9)
	assert.InDelta(t, 0.00669437999, e.EccentricitySquared(), 1e-10)

	tests := []struct {
		name string
		a, b float64
	}{
		{name: "inverted axes", a: 6_300_000, b: 7_000_000},
		{name: "zero minor", a: 6_300_000, b: 0},
		{name: "negative major", a: -1, b: -2},
		{name: "nan", a: math.NaN(), b: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEllipsoid(tt.a, tt.b)
			var eerr *EllipsoidError
			require.ErrorAs(t, err, &eerr)
			assert.Equal(t, tt.b, eerr.SemiMinorAxis)
		})
	}

	_, err = NewEllipsoidUnchecked(1, 2).MeanRadius()
	var eerr *EllipsoidError
	assert.ErrorAs(t, err, &eerr)
}

func TestBoundingBox(t *testing.T) {
	b, err := NewBoundingBox(-10, 10, -20, 20)
	require.NoError(t, err)

	assert.True(t, b.Contains(Point{Lat: 0, Lon: 0}))
	assert.True(t, b.Contains(Point{Lat: 10, Lon: -20}), "edges are inclusive")
	assert.False(t, b.Contains(Point{Lat: 10.0001, Lon: 0}))
	assert.False(t, b.Contains(Point{Lat: 0, Lon: 20.5}))
	assert.True(t, b.ContainsPoint3D(Point3D{Lat: 5, Lon: 5, Alt: 1e6}), "altitude is ignored")

	invalid := []BoundingBox{
		{MinLat: 10, MaxLat: -10, MinLon: 0, MaxLon: 1},
		{MinLat: 0, MaxLat: 1, MinLon: 5, MaxLon: 4},
		{MinLat: -91, MaxLat: 0, MinLon: 0, MaxLon: 1},
		{MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: math.NaN()},
	}
	for _, bb := range invalid {
		_, err := NewBoundingBox(bb.MinLat, bb.MaxLat, bb.MinLon, bb.MaxLon)
		var berr *BoundingBoxError
		require.ErrorAs(t, err, &berr, "%+v", bb)
	}
}

func TestErrorKindsAreDistinguishable(t *testing.T) {
	_, err := NewPoint(0, 200)
	assert.False(t, errors.Is(err, ErrEmptyPointSet))
	assert.Contains(t, err.Error(), "invalid longitude 200")
	assert.Equal(t, "invalid_longitude", InvalidLongitude.String())
}
