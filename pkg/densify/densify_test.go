package densify

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/geodist/pkg/geo"
)

func TestPolylineEquatorialSampleCount(t *testing.T) {
	start := geo.Point{Lat: 0, Lon: 0}
	end := geo.Point{Lat: 0, Lon: 0.0899}

	samples, err := Polyline([]geo.Point{start, end}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, samples, 101)
	assert.Equal(t, start, samples[0])

	last := samples[len(samples)-1]
	assert.InDelta(t, end.Lat, last.Lat, 1e-12)
	assert.InDelta(t, end.Lon, last.Lon, 1e-8)

	// Evenly spaced along the arc.
	for i := 1; i < len(samples); i++ {
		d, err := geo.GeodesicDistance(samples[i-1], samples[i])
		require.NoError(t, err)
		assert.InDelta(t, 99.9644, d.Meters(), 1e-3, "step %d", i)
	}
}

func TestMissingKnob(t *testing.T) {
	vertices := []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}

	_, err := Polyline(vertices, Options{SampleCap: 10_000})
	assert.True(t, errors.Is(err, ErrMissingDensificationKnob))

	_, err = Multiline([][]geo.Point{vertices}, Options{MaxSegmentLengthMeters: -5, SampleCap: 10_000})
	assert.True(t, errors.Is(err, ErrMissingDensificationKnob))

	// Checked before any vertex is looked at.
	_, err = Polyline([]geo.Point{{Lat: 100}}, Options{})
	assert.True(t, errors.Is(err, ErrMissingDensificationKnob))
}

func TestDegeneratePolyline(t *testing.T) {
	_, err := Polyline([]geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0}}, DefaultOptions())
	var derr *DegeneratePolylineError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, NoPart, derr.Part)

	_, err = Multiline([][]geo.Point{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}},
		{{Lat: 1, Lon: 1}},
	}, DefaultOptions())
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Part)
}

func TestInvalidVertex(t *testing.T) {
	_, err := Multiline([][]geo.Point{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}},
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 200}},
	}, DefaultOptions())

	var verr *VertexError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Part)
	assert.Equal(t, 2, verr.Vertex)

	var cerr *geo.CoordinateError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, geo.InvalidLongitude, cerr.Kind)
	assert.Equal(t, 200.0, cerr.Value)

	_, err = Polyline([]geo.Point{{Lat: math.NaN(), Lon: 0}, {Lat: 0, Lon: 1}}, DefaultOptions())
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, NoPart, verr.Part)
	assert.Equal(t, 0, verr.Vertex)
}

func TestSampleCapExceeded(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 100, SampleCap: 50_000}
	line := []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 60}}

	_, err := Multiline([][]geo.Point{line}, opts)
	var cerr *SampleCapError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Part)
	assert.Equal(t, 50_000, cerr.Cap)
	assert.Equal(t, 66_719, cerr.Expected)

	_, err = Polyline(line, opts)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, NoPart, cerr.Part)
}

func TestSampleCapIsCumulativeAcrossParts(t *testing.T) {
	part := []geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.0899}} // 101 samples
	opts := DefaultOptions()
	opts.SampleCap = 250

	_, err := Multiline([][]geo.Point{part, part, part}, opts)
	var cerr *SampleCapError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Part)
	assert.Equal(t, 303, cerr.Expected)

	opts.SampleCap = 303
	f, err := Multiline([][]geo.Point{part, part, part}, opts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 101, 202, 303}, f.Offsets())
}

func TestZeroSampleCapRejectsEverything(t *testing.T) {
	_, err := Polyline([]geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}}, Options{MaxSegmentLengthMeters: 50})
	var cerr *SampleCapError
	require.ErrorAs(t, err, &cerr)
	assert.Zero(t, cerr.Cap)
}

func TestSampleCapHugeSegmentDoesNotOverflow(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 1e-300, SampleCap: 1000}
	_, err := Polyline([]geo.Point{{Lat: -90, Lon: 0}, {Lat: 90, Lon: 0}}, opts)
	var cerr *SampleCapError
	require.ErrorAs(t, err, &cerr)
	assert.Greater(t, cerr.Expected, 1000)
}

func TestMultilineOffsets(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 500, SampleCap: 50_000}
	f, err := Multiline([][]geo.Point{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}},
		{{Lat: 1, Lon: 0}, {Lat: 1, Lon: 0.001}},
	}, opts)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 4}, f.Offsets())
	assert.Len(t, f.Samples(), 4)
	assert.Equal(t, 2, f.NumParts())
	require.NoError(t, f.Validate())
}

func TestDuplicatesCollapsed(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 1000, SampleCap: 100}
	a := geo.Point{Lat: 0, Lon: 0}
	b := geo.Point{Lat: 0, Lon: 0.001}

	samples, err := Polyline([]geo.Point{a, a, a, b, b}, opts)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{a, b}, []geo.Point{samples[0], samples[1]})
	assert.Len(t, samples, 2)
}

func TestZeroLengthSegmentsDropped(t *testing.T) {
	// Distinct bit patterns that haversine still measures as zero.
	a := geo.Point{Lat: 0, Lon: 0}
	b := geo.Point{Lat: 0, Lon: 1e-300}

	samples, err := Polyline([]geo.Point{a, b}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{a}, samples)
}

func TestAngleKnobAlone(t *testing.T) {
	opts := Options{MaxSegmentAngleDegrees: 1, SampleCap: 100}
	samples, err := Polyline([]geo.Point{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 10}}, opts)
	require.NoError(t, err)
	require.Len(t, samples, 11)
	for i, s := range samples {
		assert.InDelta(t, float64(i), s.Lon, 1e-9)
		assert.InDelta(t, 0, s.Lat, 1e-9)
	}
}

func TestSplitCountHonoursEveryKnob(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		opts   Options
		want   int
	}{
		{name: "length dominates", meters: 1000, opts: Options{MaxSegmentLengthMeters: 100, MaxSegmentAngleDegrees: 1}, want: 10},
		{name: "angle dominates", meters: 1_000_000, opts: Options{MaxSegmentLengthMeters: 1e9, MaxSegmentAngleDegrees: 1}, want: 9},
		{name: "short segment", meters: 1, opts: DefaultOptions(), want: 1},
		{name: "exact multiple", meters: 500, opts: Options{MaxSegmentLengthMeters: 100}, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCount(tt.meters, tt.opts))
		})
	}
}

func TestDensifiedSpacingRespectsKnobs(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 2500, MaxSegmentAngleDegrees: 0.05, SampleCap: 100_000}
	parts := [][]geo.Point{
		{{Lat: 51.5, Lon: -0.12}, {Lat: 48.85, Lon: 2.35}, {Lat: 52.52, Lon: 13.4}},
		{{Lat: -33.9, Lon: 151.2}, {Lat: -37.8, Lon: 144.9}},
		{{Lat: 89, Lon: -179}, {Lat: 89, Lon: 179}},
	}

	f, err := Multiline(parts, opts)
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	require.Equal(t, 3, f.NumParts())

	maxAngleMeters := opts.MaxSegmentAngleDegrees * math.Pi / 180 * geo.EarthRadiusMeters
	limit := math.Min(opts.MaxSegmentLengthMeters, maxAngleMeters)
	for i := range f.NumParts() {
		part := f.Part(i)
		assert.Equal(t, parts[i][0], part[0], "part %d starts at its first vertex", i)
		for j := 1; j < len(part); j++ {
			d, err := geo.GeodesicDistance(part[j-1], part[j])
			require.NoError(t, err)
			assert.LessOrEqual(t, d.Meters(), limit+1e-6, "part %d sample %d", i, j)
		}
		last := part[len(part)-1]
		want := parts[i][len(parts[i])-1]
		assert.InDelta(t, want.Lat, last.Lat, 1e-8)
		assert.InDelta(t, want.Lon, last.Lon, 1e-8)
	}
}

func TestCollapseDuplicates(t *testing.T) {
	a, b := geo.Point{Lat: 1}, geo.Point{Lat: 2}
	got := collapseDuplicates([]geo.Point{a, a, b, a, a})
	if diff := cmp.Diff([]geo.Point{a, b, a}, got); diff != "" {
		t.Errorf("collapseDuplicates mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkMultiline(b *testing.B) {
	parts := [][]geo.Point{
		{{Lat: 1.28, Lon: 103.85}, {Lat: 1.36, Lon: 103.99}, {Lat: 1.44, Lon: 103.78}},
		{{Lat: 1.30, Lon: 103.80}, {Lat: 1.35, Lon: 103.82}},
	}
	for b.Loop() {
		_, _ = Multiline(parts, DefaultOptions())
	}
}
