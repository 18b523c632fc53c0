package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "focusplaces",
	Short: "Rank nearby study spots by focus-friendliness",
	Long: `FocusPlaces searches for cafes, libraries, and co-working spaces,
reads their recent reviews, and ranks them by a blended focus score:
the provider rating combined with a keyword signal mined from review text.

Pipeline: search → score → list/show`,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
