package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ramp/cost-calculator/internal/config"
	"github.com/ramp/cost-calculator/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the HTML calculator",
		Long:  "serve reads RAMP_* environment variables (RAMP_ADDRESS, RAMP_LOG_LEVEL,\nRAMP_CORS_ORIGINS, RAMP_GRANULARITY, RAMP_READ_TIMEOUT, RAMP_WRITE_TIMEOUT); flags override them.",
		// the server's log level comes from its configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewServerConfig()
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if err := a.init(cfg.LogLevel); err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			log := a.logger.Sugar().Named("serve")
			log.Infof("Starting rampcalc server on %s", cfg.Address)
			defer log.Info("rampcalc server stopped")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()
			return server.New(cfg, a.engine, a.logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides RAMP_ADDRESS)")
	return cmd
}
