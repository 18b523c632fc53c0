package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/place"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scored places",
	Long:  `List cached places ranked by focus score.`,
	RunE:  runList,
}

var listTop int

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listTop, "top", "n", 20, "Number of places to show")
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := place.NewRepository(db)
	places, err := repo.ListRanked(listTop)
	if err != nil {
		return err
	}

	if len(places) == 0 {
		fmt.Println("No places found. Run 'focusplaces search' to find study spots.")
		return nil
	}

	// Styles
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	scoreStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ratingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	addrStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// Header
	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-5s  %-6s  %-35s  %s", "FOCUS", "RATING", "NAME", "ADDRESS")))
	fmt.Println(strings.Repeat("─", 100))

	for _, p := range places {
		focus := "-"
		if p.FocusScore != nil {
			focus = fmt.Sprintf("%.1f", *p.FocusScore)
		}

		rating := "-"
		if p.Rating != nil {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}

		name := p.Name
		if len(name) > 35 {
			name = name[:32] + "..."
		}

		addr := p.Address
		if len(addr) > 40 {
			addr = addr[:37] + "..."
		}

		warn := ""
		if p.FocusScore != nil && !p.Reliable {
			warn = warnStyle.Render(" ⚠ few recent reviews")
		}

		fmt.Printf(" %s  %s  %-35s  %s%s\n",
			scoreStyle.Render(fmt.Sprintf("%-5s", focus)),
			ratingStyle.Render(fmt.Sprintf("%-6s", rating)),
			name,
			addrStyle.Render(addr),
			warn,
		)
	}

	return nil
}
