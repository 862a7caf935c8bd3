package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/server"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resource families over HTTP",
	Long: `Start an HTTP server exposing every resource family, filter search,
health checks and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Network.ProbeURL != "" && !forceOffline {
			go monitor.Watch(ctx, cfg.Network.ProbeInterval)
		}

		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(addr, server.Deps{
			Registry: registry,
			Filters:  filters,
			Monitor:  monitor,
			Tracker:  tracker,
			Logger:   logger,
			Version:  version,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
