package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afsts/OMeuBairro/internal/catalog"
)

var validateVerbose bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load all reference datasets and report drop diagnostics",
	Long:  "Loads the full catalog the same way serve does and prints a summary plus every skipped item. Exits non-zero when a dataset is missing or unreadable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cmd.Context(), cfg.Data)
		if err != nil {
			return err
		}

		fmt.Printf("gazetteer keys:   %d\n", cat.Gazetteer.Len())
		fmt.Printf("infra points:     %d\n", cat.Index.Len())
		fmt.Printf("regions:          %d\n", cat.Regions.Len())
		fmt.Printf("collective keys:  %d\n", cat.Collective.Len())
		fmt.Printf("dropped items:    %d\n", len(cat.Diagnostics))

		if validateVerbose {
			for _, d := range cat.Diagnostics {
				fmt.Println("  " + d.String())
			}
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateVerbose, "verbose", false, "print every dropped item")
	rootCmd.AddCommand(validateCmd)
}
