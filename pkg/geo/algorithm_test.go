package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantAlgorithm reports the same distance for every pair.
type constantAlgorithm struct {
	meters float64
	calls  int
}

func (c *constantAlgorithm) Distance(p1, p2 Point) (Distance, error) {
	c.calls++
	return DistanceFromMeters(c.meters)
}

func TestGeodesicDistances(t *testing.T) {
	pairs := []Pair{
		{From: Point{Lat: 0, Lon: 0}, To: Point{Lat: 0, Lon: 1}},
		{From: Point{Lat: 0, Lon: 0}, To: Point{Lat: 0, Lon: 0}},
		{From: Point{Lat: 90, Lon: 0}, To: Point{Lat: -90, Lon: 0}},
	}

	got, err := GeodesicDistances(pairs)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, pair := range pairs {
		want, err := GeodesicDistance(pair.From, pair.To)
		require.NoError(t, err)
		assert.Equal(t, want, got[i], "pair %d", i)
	}
}

func TestGeodesicDistancesFailsFast(t *testing.T) {
	pairs := []Pair{
		{From: Point{Lat: 0, Lon: 0}, To: Point{Lat: 0, Lon: 1}},
		{From: Point{Lat: 0, Lon: 500}, To: Point{Lat: 0, Lon: 0}},
		{From: Point{Lat: 95, Lon: 0}, To: Point{Lat: 0, Lon: 0}},
	}

	got, err := GeodesicDistances(pairs)
	assert.Nil(t, got)
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidLongitude, cerr.Kind, "first failing pair wins")
	assert.Equal(t, 500.0, cerr.Value)
}

func TestGeodesicDistancesWithCustomAlgorithm(t *testing.T) {
	alg := &constantAlgorithm{meters: 42}
	got, err := GeodesicDistancesWith(alg, []Pair{{}, {}})
	require.NoError(t, err)
	assert.Equal(t, 2, alg.calls)
	assert.Equal(t, 42.0, got[1].Meters())

	d, err := GeodesicDistanceWith(alg, Point{}, Point{Lat: 1})
	require.NoError(t, err)
	assert.Equal(t, 42.0, d.Meters())
}

func TestGeodesicDistancesOnRadiusAndEllipsoid(t *testing.T) {
	pairs := []Pair{{From: Point{Lat: 0, Lon: 0}, To: Point{Lat: 0, Lon: 180}}}

	got, err := GeodesicDistancesOnRadius(1, pairs)
	require.NoError(t, err)
	assert.InDelta(t, 3.141592653589793, got[0].Meters(), 1e-12)

	_, err = GeodesicDistancesOnRadius(-1, pairs)
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidRadius, cerr.Kind)

	e := WGS84()
	r, _ := e.MeanRadius()
	got, err = GeodesicDistancesOnEllipsoid(e, pairs)
	require.NoError(t, err)
	assert.InDelta(t, r*3.141592653589793, got[0].Meters(), 1e-6)
}

func TestSphericalZeroValueUsesEarthRadius(t *testing.T) {
	assert.Equal(t, EarthRadiusMeters, Spherical{}.Radius())

	s, err := NewSpherical(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, s.Radius())

	sol, err := GeodesicWithBearingsOnRadius(1000, Point{}, Point{Lon: 90})
	require.NoError(t, err)
	assert.InDelta(t, 1000*3.141592653589793/2, sol.Distance.Meters(), 1e-9)

	_, err = GeodesicWithBearingsOnEllipsoid(Ellipsoid{}, Point{}, Point{Lon: 1})
	var eerr *EllipsoidError
	assert.ErrorAs(t, err, &eerr)
}
