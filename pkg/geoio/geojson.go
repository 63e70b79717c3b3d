package geoio

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/azybler/geodist/pkg/boundary"
	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
)

// ParseGeoJSON reads a GeoJSON Geometry, Feature or FeatureCollection and
// flattens every geometry into parts. Points and MultiPoints become a single
// part each, LineStrings one part, polygons one part per ring (exterior then
// holes). Features are visited in document order.
func ParseGeoJSON(data []byte) ([][]geo.Point, error) {
	geoms, err := geoJSONGeometries(data)
	if err != nil {
		return nil, err
	}
	var parts [][]geo.Point
	for i, g := range geoms {
		p, err := orbParts(g)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		parts = append(parts, p...)
	}
	return parts, nil
}

// ParseGeoJSONPolygons reads every Polygon and MultiPolygon in a GeoJSON
// document. Other geometry types are rejected.
func ParseGeoJSONPolygons(data []byte) ([]boundary.Polygon, error) {
	geoms, err := geoJSONGeometries(data)
	if err != nil {
		return nil, err
	}
	var polys []boundary.Polygon
	for i, g := range geoms {
		var src []orb.Polygon
		switch g := g.(type) {
		case orb.Polygon:
			src = []orb.Polygon{g}
		case orb.MultiPolygon:
			src = g
		default:
			return nil, errors.Newf("feature %d: expected Polygon or MultiPolygon, got %s", i, geometryType(g))
		}
		for j, p := range src {
			poly, err := polygonFromOrb(p)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %d polygon %d", i, j)
			}
			polys = append(polys, poly)
		}
	}
	return polys, nil
}

// MarshalGeoJSON encodes f as a Feature with a MultiLineString geometry, one
// line per part. The part offsets are kept in the "offsets" property.
func MarshalGeoJSON(f densify.FlattenedPolyline) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	mls := make(orb.MultiLineString, 0, f.NumParts())
	for _, part := range f.Parts() {
		mls = append(mls, toLineString(part))
	}
	feature := geojson.NewFeature(mls)
	feature.Properties["offsets"] = f.Offsets()
	feature.Properties["samples"] = len(f.Samples())
	return feature.MarshalJSON()
}

// MarshalGeoJSONParts encodes parts as a MultiLineString geometry.
func MarshalGeoJSONParts(parts [][]geo.Point) ([]byte, error) {
	mls := make(orb.MultiLineString, 0, len(parts))
	for _, part := range parts {
		mls = append(mls, toLineString(part))
	}
	return geojson.NewGeometry(mls).MarshalJSON()
}

func geoJSONGeometries(data []byte) ([]orb.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "geojson")
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson feature collection")
		}
		geoms := make([]orb.Geometry, 0, len(fc.Features))
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
		return geoms, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson feature")
		}
		return []orb.Geometry{f.Geometry}, nil
	case "":
		return nil, errors.New("geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrap(err, "geojson geometry")
		}
		return []orb.Geometry{g.Geometry()}, nil
	}
}

func orbParts(g orb.Geometry) ([][]geo.Point, error) {
	switch g := g.(type) {
	case nil:
		return nil, errors.New("null geometry")
	case orb.Point:
		p, err := fromOrbPoint(g)
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{{p}}, nil
	case orb.MultiPoint:
		part, err := fromOrbPoints(g)
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case orb.LineString:
		part, err := fromOrbPoints(g)
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case orb.Ring:
		part, err := fromOrbPoints(g)
		if err != nil {
			return nil, err
		}
		return [][]geo.Point{part}, nil
	case orb.MultiLineString:
		parts := make([][]geo.Point, 0, len(g))
		for i, ls := range g {
			part, err := fromOrbPoints(ls)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", i)
			}
			parts = append(parts, part)
		}
		return parts, nil
	case orb.Polygon:
		poly, err := polygonFromOrb(g)
		if err != nil {
			return nil, err
		}
		return poly.Rings(), nil
	case orb.MultiPolygon:
		var parts [][]geo.Point
		for i, p := range g {
			poly, err := polygonFromOrb(p)
			if err != nil {
				return nil, errors.Wrapf(err, "polygon %d", i)
			}
			parts = append(parts, poly.Rings()...)
		}
		return parts, nil
	case orb.Collection:
		var parts [][]geo.Point
		for i, sub := range g {
			p, err := orbParts(sub)
			if err != nil {
				return nil, errors.Wrapf(err, "geometry %d", i)
			}
			parts = append(parts, p...)
		}
		return parts, nil
	default:
		return nil, errors.Newf("unsupported geometry %s", geometryType(g))
	}
}

func polygonFromOrb(p orb.Polygon) (boundary.Polygon, error) {
	if len(p) == 0 {
		return boundary.Polygon{}, errors.New("polygon has no rings")
	}
	var poly boundary.Polygon
	for i, ring := range p {
		pts, err := fromOrbPoints(ring)
		if err != nil {
			return boundary.Polygon{}, errors.Wrapf(err, "ring %d", i)
		}
		if i == 0 {
			poly.Exterior = pts
		} else {
			poly.Holes = append(poly.Holes, pts)
		}
	}
	return poly, nil
}

func fromOrbPoints[S ~[]orb.Point](src S) ([]geo.Point, error) {
	out := make([]geo.Point, len(src))
	for i, p := range src {
		gp, err := fromOrbPoint(p)
		if err != nil {
			return nil, errors.Wrapf(err, "coordinate %d", i)
		}
		out[i] = gp
	}
	return out, nil
}

// fromOrbPoint converts a GeoJSON [lon, lat] position.
func fromOrbPoint(p orb.Point) (geo.Point, error) {
	return geo.NewPoint(p.Lat(), p.Lon())
}

func toLineString(points []geo.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.Lon, p.Lat}
	}
	return ls
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
