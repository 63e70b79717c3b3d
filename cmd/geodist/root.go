package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/azybler/geodist/internal/config"
	"github.com/azybler/geodist/internal/logging"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
)

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "geodist",
		Short:         "Geodesic, Hausdorff and densification tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a YAML config file (default: ./geodist.yaml or ./configs/geodist.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format: json or text (overrides config)")

	root.AddCommand(
		newInfoCmd(a),
		newGeodesicCmd(a),
		newDistance3DCmd(a),
		newHausdorffCmd(a),
		newBoundaryCmd(a),
		newDensifyCmd(a),
		newOSMCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// Results go to stdout, logs to stderr.
	logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// loadParts reads parts from a file when s names one and parses s as inline
// "lat,lon;..." points otherwise.
func loadParts(ctx context.Context, s string) ([][]geo.Point, error) {
	if _, err := os.Stat(s); err == nil {
		return geoio.ReadFile(ctx, s)
	}
	points, err := geoio.ParsePoints(s)
	if err != nil {
		return nil, err
	}
	return [][]geo.Point{points}, nil
}

// loadPoints is loadParts with every part concatenated.
func loadPoints(ctx context.Context, s string) ([]geo.Point, error) {
	parts, err := loadParts(ctx, s)
	if err != nil {
		return nil, err
	}
	var out []geo.Point
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// optionalBBox parses s when it is set.
func optionalBBox(s string) (*geo.BoundingBox, error) {
	if s == "" {
		return nil, nil
	}
	b, err := geoio.ParseBoundingBox(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
