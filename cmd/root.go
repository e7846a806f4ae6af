package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/afsts/OMeuBairro/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "omeubairro",
	Short: "Neighborhood evaluation service for Lisbon",
	Long:  "Resolves an address or postal code to coordinates, retrieves nearby infrastructure from an in-memory spatial index, and derives categorical quality indices for the surrounding freguesia.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
