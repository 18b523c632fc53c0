package cmd

import (
	"fmt"
	"time"

	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/place"
	"github.com/mkarlsen/focusplaces/internal/review"
	"github.com/mkarlsen/focusplaces/internal/score"
	"github.com/mkarlsen/focusplaces/internal/scorer"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rescore cached places",
	Long: `Recomputes focus scores for cached places from their cached reviews,
without touching the places provider. Useful after changing scoring weights
or the keyword list.`,
	RunE: runScore,
}

var scoreAll bool

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVarP(&scoreAll, "all", "a", false, "Rescore every cached place, not just unscored ones")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(config.DBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	placeRepo := place.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	scoreRepo := score.NewRepository(db)

	engine, err := scorer.NewEngine(cfg)
	if err != nil {
		return err
	}

	var ids []string
	if scoreAll {
		ids, err = placeRepo.IDs()
	} else {
		ids, err = scoreRepo.UnscoredPlaceIDs(1000)
	}
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Println("Nothing to score. Run 'focusplaces search' first, or pass --all.")
		return nil
	}

	// Load all inputs, then fan the scoring out across workers.
	pls := make([]scorer.Place, 0, len(ids))
	revs := make([][]scorer.Review, 0, len(ids))
	for _, id := range ids {
		p, err := placeRepo.Get(id)
		if err != nil {
			fmt.Printf("Error loading place %s: %v\n", id, err)
			continue
		}
		cached, err := reviewRepo.ListForPlace(id)
		if err != nil {
			fmt.Printf("Error loading reviews for %s: %v\n", p.Name, err)
			continue
		}

		in := make([]scorer.Review, len(cached))
		for j, rev := range cached {
			in[j] = scorer.Review{Author: rev.Author, Rating: rev.Rating, Text: rev.Text, ReviewedAt: rev.ReviewedAt}
		}
		pls = append(pls, scorer.Place{ID: p.ID, Name: p.Name, Rating: p.Rating})
		revs = append(revs, in)
	}

	fmt.Printf("Scoring %d places\n\n", len(pls))

	now := time.Now()
	results := engine.ScoreAll(pls, revs, now, cfg.Search.Concurrency)

	scored := 0
	for i, res := range results {
		if res.Err != nil {
			fmt.Printf("  %s: %v\n", pls[i].Name, res.Err)
			continue
		}
		if err := scoreRepo.Upsert(res.Breakdown); err != nil {
			fmt.Printf("  %s: failed to save score: %v\n", pls[i].Name, err)
			continue
		}
		fmt.Printf("  %-40s rating %5.1f  keyword %5.1f  -> %5.1f\n",
			pls[i].Name, res.Breakdown.RatingComponent, res.Breakdown.KeywordComponent, res.Breakdown.FocusScore)
		scored++
	}

	fmt.Printf("\nScored %d of %d places\n", scored, len(pls))
	return nil
}
