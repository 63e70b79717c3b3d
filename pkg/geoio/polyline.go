package geoio

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-polyline"

	"github.com/azybler/geodist/pkg/geo"
)

// DecodePolyline decodes a Google encoded polyline (precision 1e5).
func DecodePolyline(s string) ([]geo.Point, error) {
	if s == "" {
		return nil, errors.New("encoded polyline is empty")
	}
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, errors.Wrap(err, "decode polyline")
	}
	if len(rest) != 0 {
		return nil, errors.Newf("decode polyline: %d trailing bytes", len(rest))
	}
	points := make([]geo.Point, len(coords))
	for i, c := range coords {
		p, err := geo.NewPoint(c[0], c[1])
		if err != nil {
			return nil, errors.Wrapf(err, "coordinate %d", i)
		}
		points[i] = p
	}
	return points, nil
}

// EncodePolyline encodes points as a Google encoded polyline. Coordinates are
// rounded to 1e-5 degrees.
func EncodePolyline(points []geo.Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lat, p.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}
