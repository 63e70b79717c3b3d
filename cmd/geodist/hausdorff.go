package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/internal/config"
	"github.com/azybler/geodist/pkg/boundary"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
	"github.com/azybler/geodist/pkg/hausdorff"
)

type hausdorffOutput struct {
	Dimension  string                     `json:"dimension"`
	Distance   geo.Distance               `json:"distance_m"`
	Forward    hausdorff.DirectedWitness  `json:"forward"`
	Reverse    *hausdorff.DirectedWitness `json:"reverse,omitempty"`
	Strategies []string                   `json:"strategies"`
}

func newHausdorffCmd(a *app) *cobra.Command {
	var (
		setA, setB string
		directed   bool
		bboxFlag   string
		threeD     bool
		ellipsoid  string
	)
	cmd := &cobra.Command{
		Use:   "hausdorff",
		Short: "Hausdorff distance between two point sets",
		Long: `Computes the Hausdorff distance between point sets A and B.

--a and --b take a file (.geojson, .wkt, .wkb, .polyline, .pbf, .txt) whose
parts are concatenated, or inline "lat,lon;lat,lon". With --3d they take
inline "lat,lon,alt;..." and distances are ECEF chords on the ellipsoid.`,
		Example: `  geodist hausdorff --a "0,0;0,1" --b "0,0"
  geodist hausdorff --a route.geojson --b track.polyline --bbox 1.15,103.6,1.48,104.1
  geodist hausdorff --3d --a "10,10,0;10,10,250" --b "10,10,0" --directed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bbox, err := optionalBBox(bboxFlag)
			if err != nil {
				return err
			}

			var out hausdorffOutput
			if threeD {
				e, err := a.ellipsoid()
				if err != nil {
					return err
				}
				if ellipsoid != "" {
					if e, err = config.ParseEllipsoid(ellipsoid); err != nil {
						return err
					}
				}
				out, err = hausdorff3D(e, setA, setB, directed, bbox)
				if err != nil {
					return err
				}
			} else {
				a2, err := loadPoints(cmd.Context(), setA)
				if err != nil {
					return errors.Wrap(err, "--a")
				}
				b2, err := loadPoints(cmd.Context(), setB)
				if err != nil {
					return errors.Wrap(err, "--b")
				}
				out, err = hausdorff2D(a2, b2, directed, bbox)
				if err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&setA, "a", "", "Point set A: file or inline points")
	f.StringVar(&setB, "b", "", "Point set B: file or inline points")
	f.BoolVar(&directed, "directed", false, "Only compute the directed distance from A to B")
	f.StringVar(&bboxFlag, "bbox", "", "Keep only points inside minLat,minLon,maxLat,maxLon")
	f.BoolVar(&threeD, "3d", false, "Treat points as lat,lon,alt and use ECEF distances")
	f.StringVar(&ellipsoid, "ellipsoid", "", `Ellipsoid for --3d: "wgs84" or "a,b" (default from config)`)
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func hausdorff2D(a, b []geo.Point, directed bool, bbox *geo.BoundingBox) (hausdorffOutput, error) {
	out := hausdorffOutput{Dimension: "2d"}
	nA, nB := len(a), len(b)
	if bbox != nil {
		nA, nB = countInside(a, bbox.Contains), countInside(b, bbox.Contains)
	}

	if directed {
		var (
			dw  hausdorff.DirectedWitness
			err error
		)
		if bbox != nil {
			dw, err = hausdorff.DirectedClipped(a, b, *bbox)
		} else {
			dw, err = hausdorff.Directed(a, b)
		}
		if err != nil {
			return out, err
		}
		out.Distance, out.Forward = dw.Distance, dw
		out.Strategies = []string{hausdorff.ChooseStrategy(nA, nB).String()}
		return out, nil
	}

	var (
		w   hausdorff.Witness
		err error
	)
	if bbox != nil {
		w, err = hausdorff.SymmetricClipped(a, b, *bbox)
	} else {
		w, err = hausdorff.Symmetric(a, b)
	}
	if err != nil {
		return out, err
	}
	out.Distance, out.Forward, out.Reverse = w.Distance, w.Forward, &w.Reverse
	out.Strategies = []string{hausdorff.ChooseStrategy(nA, nB).String(), hausdorff.ChooseStrategy(nB, nA).String()}
	return out, nil
}

func hausdorff3D(e geo.Ellipsoid, setA, setB string, directed bool, bbox *geo.BoundingBox) (hausdorffOutput, error) {
	out := hausdorffOutput{Dimension: "3d"}
	a, err := geoio.ParsePoints3D(setA)
	if err != nil {
		return out, errors.Wrap(err, "--a")
	}
	b, err := geoio.ParsePoints3D(setB)
	if err != nil {
		return out, errors.Wrap(err, "--b")
	}
	nA, nB := len(a), len(b)
	if bbox != nil {
		nA, nB = countInside(a, bbox.ContainsPoint3D), countInside(b, bbox.ContainsPoint3D)
	}

	if directed {
		var dw hausdorff.DirectedWitness
		if bbox != nil {
			dw, err = hausdorff.DirectedClipped3DOnEllipsoid(e, a, b, *bbox)
		} else {
			dw, err = hausdorff.Directed3DOnEllipsoid(e, a, b)
		}
		if err != nil {
			return out, err
		}
		out.Distance, out.Forward = dw.Distance, dw
		out.Strategies = []string{hausdorff.ChooseStrategy(nA, nB).String()}
		return out, nil
	}

	var w hausdorff.Witness
	if bbox != nil {
		w, err = hausdorff.SymmetricClipped3DOnEllipsoid(e, a, b, *bbox)
	} else {
		w, err = hausdorff.Symmetric3DOnEllipsoid(e, a, b)
	}
	if err != nil {
		return out, err
	}
	out.Distance, out.Forward, out.Reverse = w.Distance, w.Forward, &w.Reverse
	out.Strategies = []string{hausdorff.ChooseStrategy(nA, nB).String(), hausdorff.ChooseStrategy(nB, nA).String()}
	return out, nil
}

func countInside[T any](points []T, contains func(T) bool) int {
	n := 0
	for _, p := range points {
		if contains(p) {
			n++
		}
	}
	return n
}

func newBoundaryCmd(a *app) *cobra.Command {
	var (
		fileA, fileB string
		directed     bool
		df           densifyFlags
	)
	cmd := &cobra.Command{
		Use:   "boundary",
		Short: "Hausdorff distance between two polygon boundaries",
		Long: `Densifies the rings of the first polygon in each GeoJSON file and
reports the Hausdorff distance between the boundaries, with the ring and
sample index of each witness.`,
		Example: `  geodist boundary --a district_2020.geojson --b district_2024.geojson --max-length 50`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pa, err := firstPolygon(fileA)
			if err != nil {
				return errors.Wrap(err, "--a")
			}
			pb, err := firstPolygon(fileB)
			if err != nil {
				return errors.Wrap(err, "--b")
			}
			opts := df.options(cmd, a.cfg.Densify.Options())

			if directed {
				w, err := boundary.Directed(pa, pb, opts)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), w)
			}
			w, err := boundary.Symmetric(pa, pb, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), w)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fileA, "a", "", "GeoJSON file holding polygon A")
	f.StringVar(&fileB, "b", "", "GeoJSON file holding polygon B")
	f.BoolVar(&directed, "directed", false, "Only compute the directed distance from A to B")
	df.register(cmd)
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func firstPolygon(path string) (boundary.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return boundary.Polygon{}, errors.Wrap(err, "read")
	}
	polys, err := geoio.ParseGeoJSONPolygons(data)
	if err != nil {
		return boundary.Polygon{}, err
	}
	if len(polys) == 0 {
		return boundary.Polygon{}, errors.Newf("%s holds no polygon", path)
	}
	return polys[0], nil
}
