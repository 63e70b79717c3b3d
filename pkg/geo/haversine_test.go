package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeodesicDistance(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2     Point
		wantMeters float64
		tolerance  float64
	}{
		{
			name:       "Same point",
			p1:         Point{Lat: 1.3521, Lon: 103.8198},
			p2:         Point{Lat: 1.3521, Lon: 103.8198},
			wantMeters: 0,
		},
		{
			name:       "Pole to pole",
			p1:         Point{Lat: 90, Lon: 0},
			p2:         Point{Lat: -90, Lon: 0},
			wantMeters: 20_015_114.442035925,
			tolerance:  1e-6,
		},
		{
			name:       "New York to London",
			p1:         Point{Lat: 40.7128, Lon: -74.0060},
			p2:         Point{Lat: 51.5074, Lon: -0.1278},
			wantMeters: 5_570_229.873656523,
			tolerance:  1e-6,
		},
		{
			name:       "One degree on the equator",
			p1:         Point{Lat: 0, Lon: 0},
			p2:         Point{Lat: 0, Lon: 1},
			wantMeters: 111_195.0802335329,
			tolerance:  1e-6,
		},
		{
			name:       "Singapore CBD to Changi Airport",
			p1:         Point{Lat: 1.2830, Lon: 103.8513},
			p2:         Point{Lat: 1.3644, Lon: 103.9915},
			wantMeters: 18_023,
			tolerance:  180,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GeodesicDistance(tt.p1, tt.p2)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMeters, got.Meters(), tt.tolerance)
		})
	}
}

func TestGeodesicDistanceSymmetric(t *testing.T) {
	points := []Point{
		{Lat: 0, Lon: 0},
		{Lat: 45.5, Lon: -122.6},
		{Lat: -33.9, Lon: 151.2},
		{Lat: 89.9, Lon: 179.9},
		{Lat: -89.9, Lon: -179.9},
	}
	for _, a := range points {
		for _, b := range points {
			ab, err := GeodesicDistance(a, b)
			require.NoError(t, err)
			ba, err := GeodesicDistance(b, a)
			require.NoError(t, err)
			assert.Equal(t, ab.Meters(), ba.Meters(), "%v -> %v", a, b)
		}
	}
}

func TestAntipodalDistance(t *testing.T) {
	const radius = 1000.0
	got, err := GeodesicDistanceOnRadius(radius, Point{Lat: 10, Lon: 20}, Point{Lat: -10, Lon: -160})
	require.NoError(t, err)
	assert.InEpsilon(t, math.Pi*radius, got.Meters(), 1e-6)
}

func TestGeodesicDistanceRejectsInvalidInput(t *testing.T) {
	_, err := GeodesicDistance(Point{Lat: 91, Lon: 0}, Point{})
	var cerr *CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidLatitude, cerr.Kind)

	_, err = GeodesicDistanceOnRadius(0, Point{}, Point{})
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, InvalidRadius, cerr.Kind)

	_, err = GeodesicDistanceOnEllipsoid(Ellipsoid{SemiMajorAxis: 1, SemiMinorAxis: 2}, Point{}, Point{})
	var eerr *EllipsoidError
	require.ErrorAs(t, err, &eerr)
}

func TestGeodesicDistanceOnEllipsoidUsesMeanRadius(t *testing.T) {
	e := WGS84()
	r, err := e.MeanRadius()
	require.NoError(t, err)

	got, err := GeodesicDistanceOnEllipsoid(e, Point{Lat: 0, Lon: 0}, Point{Lat: 0, Lon: 90})
	require.NoError(t, err)
	assert.InDelta(t, r*math.Pi/2, got.Meters(), 1e-6)
}

func TestGeodesicWithBearings(t *testing.T) {
	tests := []struct {
		name                   string
		p1, p2                 Point
		wantInitial, wantFinal float64
	}{
		{name: "due east", p1: Point{Lat: 0, Lon: 0}, p2: Point{Lat: 0, Lon: 1}, wantInitial: 90, wantFinal: 90},
		{name: "due west", p1: Point{Lat: 0, Lon: 1}, p2: Point{Lat: 0, Lon: 0}, wantInitial: 270, wantFinal: 270},
		{name: "due north", p1: Point{Lat: 0, Lon: 0}, p2: Point{Lat: 1, Lon: 0}, wantInitial: 0, wantFinal: 0},
		{name: "due south", p1: Point{Lat: 1, Lon: 0}, p2: Point{Lat: 0, Lon: 0}, wantInitial: 180, wantFinal: 180},
		{name: "coincident", p1: Point{Lat: 12, Lon: 34}, p2: Point{Lat: 12, Lon: 34}, wantInitial: 0, wantFinal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := GeodesicWithBearings(tt.p1, tt.p2)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantInitial, sol.InitialBearing, 1e-9)
			assert.InDelta(t, tt.wantFinal, sol.FinalBearing, 1e-9)
			assert.GreaterOrEqual(t, sol.InitialBearing, 0.0)
			assert.Less(t, sol.InitialBearing, 360.0)
		})
	}
}

func TestGeodesicWithBearingsNewYorkLondon(t *testing.T) {
	sol, err := GeodesicWithBearings(Point{Lat: 40.7128, Lon: -74.0060}, Point{Lat: 51.5074, Lon: -0.1278})
	require.NoError(t, err)
	assert.InDelta(t, 5_570_229.873656523, sol.Distance.Meters(), 1e-6)
	// Great-circle route leaves heading north-east and arrives heading east-south-east.
	assert.InDelta(t, 51.2, sol.InitialBearing, 0.1)
	assert.InDelta(t, 108.3, sol.FinalBearing, 0.1)
}

func TestNormalizeBearing(t *testing.T) {
	assert.Equal(t, 0.0, normalizeBearing(360))
	assert.Equal(t, 270.0, normalizeBearing(-90))
	assert.Equal(t, 90.0, normalizeBearing(450))
	assert.Equal(t, 0.0, normalizeBearing(-1e-20))
}

func TestLowerBoundToRectNeverExceedsDistance(t *testing.T) {
	s := Spherical{}
	rect := [4]float64{-5, 10, 5, 20} // minLat, minLon, maxLat, maxLon
	queries := []Point{
		{Lat: 0, Lon: 15},
		{Lat: 30, Lon: 15},
		{Lat: -40, Lon: 15},
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 40},
		{Lat: 60, Lon: -170},
		{Lat: -70, Lon: 120},
	}
	var corners []Point
	for lat := rect[0]; lat <= rect[2]; lat += 2.5 {
		for lon := rect[1]; lon <= rect[3]; lon += 2.5 {
			corners = append(corners, Point{Lat: lat, Lon: lon})
		}
	}

	for _, q := range queries {
		bound := s.LowerBoundToRect(q, rect[0], rect[1], rect[2], rect[3])
		for _, c := range corners {
			d, err := s.Distance(q, c)
			require.NoError(t, err)
			assert.LessOrEqual(t, bound, d.Meters(), "query %v sample %v", q, c)
		}
	}

	assert.Equal(t, 0.0, s.LowerBoundToRect(Point{Lat: 0, Lon: 15}, rect[0], rect[1], rect[2], rect[3]))
}

func BenchmarkGeodesicDistance(b *testing.B) {
	p1 := Point{Lat: 1.3521, Lon: 103.8198}
	p2 := Point{Lat: 1.2905, Lon: 103.8520}
	for b.Loop() {
		_, _ = GeodesicDistance(p1, p2)
	}
}
