package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/search"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search cached reviews by text",
	Long:  `Full-text search across all cached review text.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

var findLimit int

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().IntVarP(&findLimit, "limit", "l", 20, "Maximum results to show")
}

func runFind(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	searchRepo := search.NewRepository(db)
	results, err := searchRepo.Search(query, findLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No reviews mention '%s'\n", query)
		return nil
	}

	// Display results
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	snippetStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	fmt.Printf("\n%s '%s' (%d results)\n\n", titleStyle.Render("FIND:"), query, len(results))

	for _, r := range results {
		fmt.Printf("%s %s", idStyle.Render("["+r.PlaceID+"]"), r.PlaceName)
		if r.FocusScore > 0 {
			fmt.Printf(" • Focus: %.1f", r.FocusScore)
		}
		fmt.Println()

		if r.Snippet != "" {
			snippet := strings.ReplaceAll(r.Snippet, "<b>", "")
			snippet = strings.ReplaceAll(snippet, "</b>", "")
			fmt.Printf("    %s\n", snippetStyle.Render(snippet))
		}
		fmt.Println()
	}

	return nil
}
