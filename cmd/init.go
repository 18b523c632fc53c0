package cmd

import (
	"fmt"
	"os"

	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize focusplaces configuration and database",
	Long:  `Creates the ~/.focusplaces directory with config.yaml and SQLite database.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Created config at %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	db.Close()
	fmt.Printf("Created database at %s/focusplaces.db\n", dir)

	fmt.Println("\nFocusPlaces initialized! Next steps:")
	fmt.Printf("  export %s=<key>           Set your places provider key\n", cfg.APIs.PlacesKeyEnv)
	fmt.Println("  focusplaces search        Find and score study spots near you")

	return nil
}
