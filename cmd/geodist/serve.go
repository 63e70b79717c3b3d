package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/azybler/geodist/pkg/api"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr       string
		corsOrigin string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Example: `  geodist serve --addr :8080
  GEODIST_SERVER_MAX_CONCURRENT=32 geodist serve --config configs/geodist.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
				if err := a.cfg.Validate(); err != nil {
					return errors.Wrap(err, "--addr")
				}
			}
			s := a.cfg.Server

			cfg := api.DefaultConfig(s.Addr)
			cfg.MaxConcurrent = s.MaxConcurrent
			cfg.RequestTimeout = s.RequestTimeout
			cfg.CORSOrigin = corsOrigin

			e, err := a.ellipsoid()
			if err != nil {
				return err
			}
			handlers := api.NewHandlers(api.HandlerConfig{
				MaxBodyBytes: s.MaxBodyBytes,
				MaxPoints:    s.MaxPoints,
				Densify:      a.cfg.Densify.Options(),
				Ellipsoid:    e,
			})

			return api.ListenAndServe(cmd.Context(), api.NewServer(cfg, handlers))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (overrides config)")
	cmd.Flags().StringVar(&corsOrigin, "cors-origin", "", "CORS allowed origin (empty = same-origin)")
	return cmd
}
