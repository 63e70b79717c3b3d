package geoio

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/azybler/geodist/pkg/geo"
)

// wktMaxDecimalDigits keeps formatted coordinates at sub-millimetre precision.
const wktMaxDecimalDigits = 9

// ParseWKT reads a WKT geometry and flattens it into parts the same way
// ParseGeoJSON does. Z and M ordinates are ignored.
func ParseWKT(s string) ([][]geo.Point, error) {
	t, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "wkt")
	}
	return geomParts(t)
}

// FormatWKT encodes parts as a LINESTRING when there is one part and a
// MULTILINESTRING otherwise.
func FormatWKT(parts [][]geo.Point) (string, error) {
	t, err := toGeom(parts)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(t, wkt.EncodeOptionWithMaxDecimalDigits(wktMaxDecimalDigits))
}

// ParseWKB reads a WKB geometry in either byte order.
func ParseWKB(b []byte) ([][]geo.Point, error) {
	t, err := wkb.Unmarshal(b)
	if err != nil {
		return nil, errors.Wrap(err, "wkb")
	}
	return geomParts(t)
}

// FormatWKB encodes parts as little-endian WKB.
func FormatWKB(parts [][]geo.Point) ([]byte, error) {
	t, err := toGeom(parts)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(t, wkb.NDR)
}

func toGeom(parts [][]geo.Point) (geom.T, error) {
	if len(parts) == 0 {
		return nil, errors.New("no parts to encode")
	}
	if len(parts) == 1 {
		return geom.NewLineStringFlat(geom.XY, flatCoords(parts[0])), nil
	}
	var flat []float64
	ends := make([]int, 0, len(parts))
	for _, part := range parts {
		flat = append(flat, flatCoords(part)...)
		ends = append(ends, len(flat))
	}
	return geom.NewMultiLineStringFlat(geom.XY, flat, ends), nil
}

func flatCoords(points []geo.Point) []float64 {
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.Lon, p.Lat)
	}
	return flat
}

func geomParts(t geom.T) ([][]geo.Point, error) {
	switch g := t.(type) {
	case *geom.Point:
		if g.Empty() {
			return nil, errors.New("empty point")
		}
		p, err := fromCoord(g.Coords())
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{{p}}, nil
	case *geom.MultiPoint:
		part, err := fromCoords(g.Coords())
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case *geom.LineString:
		part, err := fromCoords(g.Coords())
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case *geom.LinearRing:
		part, err := fromCoords(g.Coords())
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case *geom.MultiLineString:
		return fromCoordParts(g.Coords(), "line")
	case *geom.Polygon:
		return fromCoordParts(g.Coords(), "ring")
	case *geom.MultiPolygon:
		var parts [][]geo.Point
		for i, poly := range g.Coords() {
			p, err := fromCoordParts(poly, "ring")
			if err != nil {
				return nil, errors.Wrapf(err, "polygon %d", i)
			}
			parts = append(parts, p...)
		}
		return parts, nil
	case *geom.GeometryCollection:
		var parts [][]geo.Point
		for i, sub := range g.Geoms() {
			p, err := geomParts(sub)
			if err != nil {
				return nil, errors.Wrapf(err, "geometry %d", i)
			}
			parts = append(parts, p...)
		}
		return parts, nil
	default:
		return nil, errors.Newf("unsupported geometry %T", t)
	}
}

func fromCoordParts(src [][]geom.Coord, what string) ([][]geo.Point, error) {
	parts := make([][]geo.Point, 0, len(src))
	for i, coords := range src {
		part, err := fromCoords(coords)
		if err != nil {
			return nil, errors.Wrapf(err, "%s %d", what, i)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func fromCoords(src []geom.Coord) ([]geo.Point, error) {
	out := make([]geo.Point, len(src))
	for i, c := range src {
		p, err := fromCoord(c)
		if err != nil {
			return nil, errors.Wrapf(err, "coordinate %d", i)
		}
		out[i] = p
	}
	return out, nil
}

func fromCoord(c geom.Coord) (geo.Point, error) {
	return geo.NewPoint(c.Y(), c.X())
}
