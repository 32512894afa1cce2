package main

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vinrisk/vinrisk/internal/api"
)

func newServeCmd(global *globalOpts) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, cfg, err := loadAnalyzer(ctx, global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			h := api.NewHandler(a,
				api.WithLogger(logger),
				api.WithAllowedOrigins(cfg.Server.AllowedOrigins),
			)
			return api.Serve(ctx, cfg.Server.Addr(), h.Routes(), logger)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (default: config or $PORT, then 8000)")

	return cmd
}
