package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/afsts/OMeuBairro/internal/catalog"
	"github.com/afsts/OMeuBairro/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the reference catalog and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Readiness barrier: no request is accepted before the full catalog
		// is in memory.
		cat, err := catalog.Load(ctx, cfg.Data)
		if err != nil {
			return err
		}
		for _, d := range cat.Diagnostics {
			zap.L().Warn("serve: reference item dropped",
				zap.String("source", d.Source),
				zap.Int("item", d.Item),
				zap.String("reason", d.Reason),
			)
		}

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		return server.New(cat, cfg).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
