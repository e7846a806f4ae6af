package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/afsts/OMeuBairro/internal/catalog"
	"github.com/afsts/OMeuBairro/internal/evaluate"
)

var evaluateRadius float64

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <address-or-postal-code>",
	Short: "Evaluate one location and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cmd.Context(), cfg.Data)
		if err != nil {
			return err
		}

		radius := evaluateRadius
		if radius == 0 {
			radius = cfg.Search.DefaultRadiusMeters
		}

		result, err := evaluate.New(cat).Evaluate(args[0], radius)
		if err != nil {
			if eris.Is(err, evaluate.ErrNotFound) {
				return eris.Errorf("no gazetteer entry matches %q", args[0])
			}
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal result")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	evaluateCmd.Flags().Float64Var(&evaluateRadius, "radius", 0, "search radius in meters (default from config)")
	rootCmd.AddCommand(evaluateCmd)
}
