package main

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/osm"
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
)

// Named bounding boxes accepted by --region.
var regions = map[string]geo.BoundingBox{
	"singapore": {MinLat: 1.15, MaxLat: 1.48, MinLon: 103.6, MaxLon: 104.1},
	"kl":        {MinLat: 2.75, MaxLat: 3.5, MinLon: 101.2, MaxLon: 102.0},
}

func newOSMCmd(a *app) *cobra.Command {
	var (
		in, outPath string
		format      string
		tag         string
		wayIDs      []int64
		bboxFlag    string
		region      string
	)
	cmd := &cobra.Command{
		Use:   "osm",
		Short: "Extract ways from an OSM PBF file as polylines",
		Example: `  geodist osm --in malaysia-singapore-brunei.osm.pbf --region singapore --tag highway=motorway,trunk --format geojson
  geodist osm --in extract.osm.pbf --way 4304875 --way 4304876 --format polyline`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := geoio.OSMOptions{}
			for _, id := range wayIDs {
				opts.WayIDs = append(opts.WayIDs, osm.WayID(id))
			}
			if tag != "" {
				key, values, ok := strings.Cut(tag, "=")
				opts.TagKey = strings.TrimSpace(key)
				if ok {
					for _, v := range strings.Split(values, ",") {
						opts.TagValues = append(opts.TagValues, strings.TrimSpace(v))
					}
				}
			}

			switch {
			case region != "" && bboxFlag != "":
				return errors.New("--region and --bbox are mutually exclusive")
			case region != "":
				b, ok := regions[strings.ToLower(region)]
				if !ok {
					return errors.Newf("unknown region %q", region)
				}
				opts.BBox = &b
			default:
				b, err := optionalBBox(bboxFlag)
				if err != nil {
					return err
				}
				opts.BBox = b
			}
			if opts.BBox != nil {
				slog.Info("bounding box filter",
					"lat", []float64{opts.BBox.MinLat, opts.BBox.MaxLat},
					"lon", []float64{opts.BBox.MinLon, opts.BBox.MaxLon})
			}

			start := time.Now()
			f, err := os.Open(in)
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer f.Close()

			ways, err := geoio.ReadOSMWays(cmd.Context(), f, opts)
			if err != nil {
				return err
			}
			slog.Info("extracted ways", "ways", len(ways), "elapsed", time.Since(start).Round(time.Millisecond))

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				out, err := os.Create(outPath)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer out.Close()
				w = out
			}
			return writeWays(w, format, ways)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in, "in", "", "Path to .osm.pbf file")
	fl.StringVar(&outPath, "out", "", "Output file (default stdout)")
	fl.StringVar(&format, "format", "json", "Output format: json|geojson|wkt|polyline")
	fl.StringVar(&tag, "tag", "", "Keep ways with this tag, optionally restricted to values: key[=v1,v2]")
	fl.Int64SliceVar(&wayIDs, "way", nil, "Keep only these way IDs (repeatable)")
	fl.StringVar(&bboxFlag, "bbox", "", "Drop ways leaving minLat,minLon,maxLat,maxLon")
	fl.StringVar(&region, "region", "", "Named bounding box: singapore or kl")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func writeWays(w io.Writer, format string, ways []geoio.Way) error {
	parts := make([][]geo.Point, len(ways))
	for i, way := range ways {
		parts[i] = way.Points
	}

	switch format {
	case "json":
		return writeJSON(w, ways)
	case "geojson":
		data, err := geoio.MarshalGeoJSONParts(parts)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "wkt":
		if len(parts) == 0 {
			return errors.New("no ways matched")
		}
		s, err := geoio.FormatWKT(parts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case "polyline":
		// One way per line, readable back as a .polyline file.
		for _, part := range parts {
			if _, err := io.WriteString(w, geoio.EncodePolyline(part)+"\n"); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Newf("unknown format %q (want json, geojson, wkt or polyline)", format)
	}
}
