// Package geoio reads and writes point sequences in the formats geodist
// accepts: plain "lat,lon" text, GeoJSON, WKT, WKB, encoded polylines and
// OpenStreetMap PBF extracts.
//
// Every coordinate is validated with geo.NewPoint; failures are wrapped with
// the position they were found at.
package geoio

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/geo"
)

// ParsePoints parses "lat,lon;lat,lon;...". Whitespace around numbers and
// separators is ignored, as is a trailing ';'.
func ParsePoints(s string) ([]geo.Point, error) {
	fields := splitPoints(s)
	points := make([]geo.Point, 0, len(fields))
	for i, f := range fields {
		coords, err := parseFloats(f, 2)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		p, err := geo.NewPoint(coords[0], coords[1])
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		points = append(points, p)
	}
	return points, nil
}

// ParsePoints3D parses "lat,lon,alt;lat,lon,alt;...".
func ParsePoints3D(s string) ([]geo.Point3D, error) {
	fields := splitPoints(s)
	points := make([]geo.Point3D, 0, len(fields))
	for i, f := range fields {
		coords, err := parseFloats(f, 3)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		p, err := geo.NewPoint3D(coords[0], coords[1], coords[2])
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		points = append(points, p)
	}
	return points, nil
}

// ParsePoint parses a single "lat,lon".
func ParsePoint(s string) (geo.Point, error) {
	points, err := ParsePoints(s)
	if err != nil {
		return geo.Point{}, err
	}
	if len(points) != 1 {
		return geo.Point{}, errors.Newf("expected one point, got %d", len(points))
	}
	return points[0], nil
}

// ParsePoint3D parses a single "lat,lon,alt".
func ParsePoint3D(s string) (geo.Point3D, error) {
	points, err := ParsePoints3D(s)
	if err != nil {
		return geo.Point3D{}, err
	}
	if len(points) != 1 {
		return geo.Point3D{}, errors.Newf("expected one point, got %d", len(points))
	}
	return points[0], nil
}

func splitPoints(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ";") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.Newf("expected %d comma-separated values, got %d in %q", n, len(parts), s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		out[i] = v
	}
	return out, nil
}

// ParseBoundingBox parses "minLat,minLon,maxLat,maxLon".
func ParseBoundingBox(s string) (geo.BoundingBox, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return geo.BoundingBox{}, errors.Wrap(err, "bounding box")
	}
	return geo.NewBoundingBox(v[0], v[2], v[1], v[3])
}
