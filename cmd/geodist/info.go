package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/hausdorff"
)

func newInfoCmd(a *app) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print earth models, strategy thresholds and densify defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var scale float64
			switch unit {
			case "m":
				scale = 1
			case "km":
				scale = 1e-3
			default:
				return errors.Newf("unknown unit %q (want m or km)", unit)
			}

			wgs := geo.WGS84()
			mean, err := wgs.MeanRadius()
			if err != nil {
				return err
			}
			e, err := a.ellipsoid()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mean earth radius:         %.4f %s\n", geo.EarthRadiusMeters*scale, unit)
			fmt.Fprintf(out, "WGS84 semi-major axis:     %.4f %s\n", wgs.SemiMajorAxis*scale, unit)
			fmt.Fprintf(out, "WGS84 semi-minor axis:     %.6f %s\n", wgs.SemiMinorAxis*scale, unit)
			fmt.Fprintf(out, "WGS84 mean radius:         %.4f %s\n", mean*scale, unit)
			fmt.Fprintf(out, "WGS84 eccentricity²:       %.12f\n", wgs.EccentricitySquared())
			fmt.Fprintf(out, "Configured ellipsoid:      a=%.4f b=%.4f %s\n", e.SemiMajorAxis*scale, e.SemiMinorAxis*scale, unit)
			fmt.Fprintf(out, "Index threshold (per set): %d points\n", hausdorff.MinIndexCandidateSize)
			fmt.Fprintf(out, "Naive cross-product limit: %d pairs\n", hausdorff.MaxNaiveCrossProduct)
			fmt.Fprintf(out, "Densify defaults:          %g m, %g°, cap %d\n",
				densify.DefaultMaxSegmentLengthMeters, densify.DefaultMaxSegmentAngleDegrees, densify.DefaultSampleCap)
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "m", "Length unit: m or km")
	return cmd
}
