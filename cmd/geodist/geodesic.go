package main

import (
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/internal/config"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
)

func (a *app) ellipsoid() (geo.Ellipsoid, error) {
	return config.ParseEllipsoid(a.cfg.Hausdorff.Ellipsoid)
}

func newGeodesicCmd(a *app) *cobra.Command {
	var (
		radius    float64
		ellipsoid string
	)
	cmd := &cobra.Command{
		Use:   "geodesic FROM TO",
		Short: "Great-circle distance and bearings between two lat,lon points",
		Example: `  geodist geodesic 40.7128,-74.0060 51.5074,-0.1278
  geodist geodesic 0,0 0,1 --radius 1
  geodist geodesic 0,0 0,1 --ellipsoid wgs84
  geodist geodesic -- -33.8688,151.2093 51.5074,-0.1278`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := geoio.ParsePoint(args[0])
			if err != nil {
				return err
			}
			to, err := geoio.ParsePoint(args[1])
			if err != nil {
				return err
			}

			var sol geo.GeodesicSolution
			switch {
			case cmd.Flags().Changed("radius"):
				sol, err = geo.GeodesicWithBearingsOnRadius(radius, from, to)
			case ellipsoid != "":
				e, perr := config.ParseEllipsoid(ellipsoid)
				if perr != nil {
					return perr
				}
				sol, err = geo.GeodesicWithBearingsOnEllipsoid(e, from, to)
			default:
				sol, err = geo.GeodesicWithBearings(from, to)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sol)
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", geo.EarthRadiusMeters, "Sphere radius in meters")
	cmd.Flags().StringVar(&ellipsoid, "ellipsoid", "", `Use the mean radius of an ellipsoid: "wgs84" or "a,b"`)
	cmd.MarkFlagsMutuallyExclusive("radius", "ellipsoid")
	return cmd
}

func newDistance3DCmd(a *app) *cobra.Command {
	var ellipsoid string
	cmd := &cobra.Command{
		Use:     "distance3d FROM TO",
		Short:   "ECEF straight-line distance between two lat,lon,alt points",
		Example: `  geodist distance3d 45,7,0 45,7,100`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := geoio.ParsePoint3D(args[0])
			if err != nil {
				return err
			}
			to, err := geoio.ParsePoint3D(args[1])
			if err != nil {
				return err
			}

			e, err := a.ellipsoid()
			if err != nil {
				return err
			}
			if ellipsoid != "" {
				if e, err = config.ParseEllipsoid(ellipsoid); err != nil {
					return err
				}
			}

			d, err := geo.GeodesicDistance3DOnEllipsoid(e, from, to)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]geo.Distance{"distance_m": d})
		},
	}
	cmd.Flags().StringVar(&ellipsoid, "ellipsoid", "", `Reference ellipsoid: "wgs84" or "a,b" (default from config)`)
	return cmd
}
