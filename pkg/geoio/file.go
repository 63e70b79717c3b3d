package geoio

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/geo"
)

// ReadFile loads the parts stored at path, choosing the decoder from the
// extension: .geojson/.json, .wkt, .wkb, .polyline (one encoded line per
// text line), .pbf (every way) and .txt ("lat,lon;..." per line).
func ReadFile(ctx context.Context, path string) ([][]geo.Point, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pbf" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "open")
		}
		defer f.Close()
		ways, err := ReadOSMWays(ctx, f, OSMOptions{})
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		parts := make([][]geo.Point, len(ways))
		for i, w := range ways {
			parts[i] = w.Points
		}
		return parts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	var parts [][]geo.Point
	switch ext {
	case ".geojson", ".json":
		parts, err = ParseGeoJSON(data)
	case ".wkt":
		parts, err = ParseWKT(strings.TrimSpace(string(data)))
	case ".wkb":
		parts, err = ParseWKB(data)
	case ".polyline":
		parts, err = parseLines(string(data), DecodePolyline)
	case ".txt", "":
		parts, err = parseLines(string(data), ParsePoints)
	default:
		return nil, errors.Newf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return parts, nil
}

func parseLines(data string, parse func(string) ([]geo.Point, error)) ([][]geo.Point, error) {
	var parts [][]geo.Point
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		part, err := parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		parts = append(parts, part)
	}
	return parts, nil
}
