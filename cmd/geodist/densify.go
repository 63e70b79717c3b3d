package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
)

// densifyFlags are the spacing flags shared by densify and boundary.
type densifyFlags struct {
	maxLength float64
	maxAngle  float64
	sampleCap int
}

func (d *densifyFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&d.maxLength, "max-length", densify.DefaultMaxSegmentLengthMeters, "Max segment length in meters (0 disables)")
	f.Float64Var(&d.maxAngle, "max-angle", densify.DefaultMaxSegmentAngleDegrees, "Max segment central angle in degrees (0 disables)")
	f.IntVar(&d.sampleCap, "cap", densify.DefaultSampleCap, "Max total samples")
}

// options starts from the configured defaults and applies the flags the user
// set explicitly.
func (d *densifyFlags) options(cmd *cobra.Command, base densify.Options) densify.Options {
	f := cmd.Flags()
	if f.Changed("max-length") {
		base.MaxSegmentLengthMeters = d.maxLength
	}
	if f.Changed("max-angle") {
		base.MaxSegmentAngleDegrees = d.maxAngle
	}
	if f.Changed("cap") {
		base.SampleCap = d.sampleCap
	}
	return base
}

var outputFormats = []string{"json", "geojson", "wkt", "wkb", "polyline", "bin"}

func newDensifyCmd(a *app) *cobra.Command {
	var (
		in, outPath string
		format      string
		bboxFlag    string
		df          densifyFlags
	)
	cmd := &cobra.Command{
		Use:   "densify",
		Short: "Insert great-circle samples along polylines",
		Long: `Reads polylines from a file (.geojson, .wkt, .wkb, .polyline, .pbf, .txt)
or inline "lat,lon;..." points and inserts great-circle samples so that no
segment exceeds the configured length or central angle.

Formats: ` + strings.Join(outputFormats, ", ") + `. "bin" is the compact
checksummed sample file and needs --out.`,
		Example: `  geodist densify --in "0,0;0,1" --max-length 1000
  geodist densify --in roads.pbf --format bin --out roads.samples
  geodist densify --in route.wkt --format geojson --bbox 1.15,103.6,1.48,104.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bbox, err := optionalBBox(bboxFlag)
			if err != nil {
				return err
			}
			parts, err := loadParts(cmd.Context(), in)
			if err != nil {
				return errors.Wrap(err, "--in")
			}

			f, err := densify.Multiline(parts, df.options(cmd, a.cfg.Densify.Options()))
			if err != nil {
				return err
			}
			if bbox != nil {
				if f, err = f.Clip(*bbox); err != nil {
					return err
				}
			}
			slog.Debug("densified", "parts", f.NumParts(), "samples", len(f.Samples()))

			if format == "bin" {
				if outPath == "" {
					return errors.New("--format bin needs --out")
				}
				return densify.WriteFile(outPath, f)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer file.Close()
				w = file
			}
			if err := writeSamples(w, format, f); err != nil {
				return err
			}
			if file, ok := w.(*os.File); ok && outPath != "" {
				return file.Close()
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in, "in", "", "Input file or inline points")
	fl.StringVar(&outPath, "out", "", "Output file (default stdout)")
	fl.StringVar(&format, "format", "json", "Output format: "+strings.Join(outputFormats, "|"))
	fl.StringVar(&bboxFlag, "bbox", "", "Keep only samples inside minLat,minLon,maxLat,maxLon")
	df.register(cmd)
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

type samplesJSON struct {
	NumParts int         `json:"num_parts"`
	Offsets  []int       `json:"offsets"`
	Samples  []geo.Point `json:"samples"`
}

func writeSamples(w io.Writer, format string, f densify.FlattenedPolyline) error {
	switch format {
	case "json":
		return writeJSON(w, samplesJSON{NumParts: f.NumParts(), Offsets: f.Offsets(), Samples: f.Samples()})
	case "geojson":
		data, err := geoio.MarshalGeoJSON(f)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case "wkt":
		s, err := geoio.FormatWKT(f.Parts())
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s+"\n")
		return err
	case "wkb":
		b, err := geoio.FormatWKB(f.Parts())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case "polyline":
		for _, part := range f.Parts() {
			if _, err := io.WriteString(w, geoio.EncodePolyline(part)+"\n"); err != nil {
				return err
			}
		}
		return nil
	case "bin":
		return densify.Write(w, f)
	default:
		return errors.Newf("unknown format %q (want one of %s)", format, strings.Join(outputFormats, ", "))
	}
}
