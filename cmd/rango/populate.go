package main

import (
	"github.com/spf13/cobra"

	"rango/internal/config"
	"rango/internal/populate"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Load the sample categories and pages",
	Long: `Load the sample categories and pages, then list every stored page.

Safe to run repeatedly: existing categories and pages are updated in place
and page view counts are re-drawn.`,
	Args: cobra.NoArgs,
	RunE: runPopulate,
}

func runPopulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return populate.Script(cmd.Context(), cfg, cmd.OutOrStdout())
}
