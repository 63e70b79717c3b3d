package densify

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azybler/geodist/pkg/geo"
)

func TestClipRecomputesOffsetsPerPart(t *testing.T) {
	opts := Options{MaxSegmentLengthMeters: 1000, SampleCap: 50_000}
	f, err := Multiline([][]geo.Point{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}, {Lat: 0, Lon: 0.002}},
		{{Lat: 10, Lon: 0}, {Lat: 10, Lon: 0.001}},
	}, opts)
	require.NoError(t, err)

	bbox, err := geo.NewBoundingBox(-1, 1, -1, 1)
	require.NoError(t, err)
	clipped, err := f.Clip(bbox)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 3}, clipped.Offsets())
	assert.Len(t, clipped.Samples(), 3)
	assert.Empty(t, clipped.Part(1))

	empty, err := geo.NewBoundingBox(-1, 1, 50, 60)
	require.NoError(t, err)
	_, err = clipped.Clip(empty)
	assert.True(t, errors.Is(err, geo.ErrEmptyPointSet))
}

func TestClipWithEnclosingBoxIsIdentity(t *testing.T) {
	f, err := Multiline([][]geo.Point{
		{{Lat: 10, Lon: 10}, {Lat: 10.5, Lon: 10.7}},
		{{Lat: -5, Lon: 3}, {Lat: -5.2, Lon: 3.1}, {Lat: -5.3, Lon: 3.3}},
	}, DefaultOptions())
	require.NoError(t, err)

	world, err := geo.NewBoundingBox(-90, 90, -180, 180)
	require.NoError(t, err)
	clipped, err := f.Clip(world)
	require.NoError(t, err)
	assert.Equal(t, f.Samples(), clipped.Samples())
	assert.Equal(t, f.Offsets(), clipped.Offsets())
}

func TestClipRejectsInvalidBox(t *testing.T) {
	f, err := NewFlattenedPolyline([]geo.Point{{}}, []int{0, 1})
	require.NoError(t, err)

	_, err = f.Clip(geo.BoundingBox{MinLat: 1, MaxLat: 0})
	var berr *geo.BoundingBoxError
	assert.ErrorAs(t, err, &berr)
}

func TestLocate(t *testing.T) {
	samples := make([]geo.Point, 7)
	f, err := NewFlattenedPolyline(samples, []int{0, 3, 3, 5, 7})
	require.NoError(t, err)

	tests := []struct {
		flat, part, index int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{3, 2, 0}, // part 1 is empty
		{4, 2, 1},
		{5, 3, 0},
		{6, 3, 1},
	}
	for _, tt := range tests {
		part, index, err := f.Locate(tt.flat)
		require.NoError(t, err)
		assert.Equal(t, tt.part, part, "flat %d", tt.flat)
		assert.Equal(t, tt.index, index, "flat %d", tt.flat)
	}

	_, _, err = f.Locate(7)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, _, err = f.Locate(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestNewFlattenedPolylineValidatesOffsets(t *testing.T) {
	samples := make([]geo.Point, 3)
	bad := [][]int{
		nil,
		{1, 3},
		{0, 2, 1, 3},
		{0, 2},
	}
	for _, offsets := range bad {
		_, err := NewFlattenedPolyline(samples, offsets)
		assert.True(t, errors.Is(err, ErrInvalidOffsets), "offsets %v", offsets)
	}
}

func TestParts(t *testing.T) {
	a, b, c := geo.Point{Lat: 1}, geo.Point{Lat: 2}, geo.Point{Lat: 3}
	f, err := NewFlattenedPolyline([]geo.Point{a, b, c}, []int{0, 1, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, [][]geo.Point{{a}, {}, {b, c}}, f.Parts())
}
