package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/place"
	"github.com/mkarlsen/focusplaces/internal/review"
	"github.com/mkarlsen/focusplaces/internal/score"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <place-id>",
	Short: "Show a place's score breakdown",
	Long:  `Display a place's focus score, contributing factors, and review excerpts.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := place.NewRepository(db)
	p, err := repo.Get(id)
	if err != nil {
		return fmt.Errorf("place not found: %s", id)
	}

	// Styles
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	posStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	negStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	divider := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(strings.Repeat("━", 70))

	fmt.Println(divider)
	fmt.Println(titleStyle.Render(p.Name))
	fmt.Println(divider)

	if p.Address != "" {
		fmt.Printf("%s %s\n", labelStyle.Render("Address:"), valueStyle.Render(p.Address))
	}
	if p.Rating != nil {
		fmt.Printf("%s %.1f / 5\n", labelStyle.Render("Provider rating:"), *p.Rating)
	}

	scoreRepo := score.NewRepository(db)
	b, scoredAt, err := scoreRepo.Get(id)
	if err != nil {
		fmt.Println("\nNot scored yet. Run 'focusplaces score'.")
		return nil
	}

	fmt.Printf("\n%s\n", labelStyle.Render("FOCUS SCORE:"))
	fmt.Printf("  Rating: %.1f  Keyword: %.1f  → Focus: %.1f   (scored %s)\n",
		b.RatingComponent, b.KeywordComponent, b.FocusScore, scoredAt.Format("2006-01-02"))
	fmt.Printf("  Reviews analyzed: %d (recent: %d)\n", b.ReviewCount, b.RecentReviewCount)

	if !b.Reliable {
		fmt.Println(negStyle.Render("  ⚠ Fewer recent reviews than the reliability threshold; treat with caution."))
	}
	if b.RatingMissing {
		fmt.Println(labelStyle.Render("  No provider rating; score is keyword signal only."))
	}
	if b.KeywordMissing {
		fmt.Println(labelStyle.Render("  No recent review signal; score is the provider rating only."))
	}

	if len(b.PositiveFactors) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("POSITIVE FACTORS:"))
		for _, f := range sortedFactors(b.PositiveFactors) {
			fmt.Printf("  %s %d\n", posStyle.Render("+ "+f.name+":"), f.count)
		}
	}
	if len(b.NegativeFactors) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("NEGATIVE FACTORS:"))
		for _, f := range sortedFactors(b.NegativeFactors) {
			fmt.Printf("  %s %d\n", negStyle.Render("- "+f.name+":"), f.count)
		}
	}

	if len(b.Excerpts) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("EVIDENCE:"))
		for _, e := range b.Excerpts {
			fmt.Printf("  • %s (weight %+.1f): %s\n", e.Keyword, e.Weight, valueStyle.Render(e.Text))
		}
	}

	reviewRepo := review.NewRepository(db)
	reviews, _ := reviewRepo.ListForPlace(id)
	if len(reviews) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("REVIEWS:"))
		for _, rev := range reviews {
			date := "undated"
			if rev.ReviewedAt != nil {
				date = rev.ReviewedAt.Format("2006-01-02")
			}
			stars := ""
			if rev.Rating != nil {
				stars = fmt.Sprintf(" %d★", *rev.Rating)
			}
			text := rev.Text
			if len(text) > 200 {
				text = text[:197] + "..."
			}
			fmt.Printf("  [%s]%s %s\n", date, stars, text)
		}
	}

	fmt.Println()
	return nil
}

type factor struct {
	name  string
	count int
}

// sortedFactors orders factor tallies by count descending, name ascending,
// so output is stable.
func sortedFactors(m map[string]int) []factor {
	out := make([]factor, 0, len(m))
	for name, count := range m {
		out = append(out, factor{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
