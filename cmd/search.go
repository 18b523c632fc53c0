package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/place"
	"github.com/mkarlsen/focusplaces/internal/places"
	"github.com/mkarlsen/focusplaces/internal/review"
	"github.com/mkarlsen/focusplaces/internal/score"
	"github.com/mkarlsen/focusplaces/internal/scorer"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find and score study spots",
	Long: `Searches the places provider for each query, fetches recent reviews,
computes focus scores, and caches everything locally.`,
	RunE: runSearch,
}

var (
	searchQueries string
	searchNear    string
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQueries, "queries", "q", "coffee shop, library, co-working space", "Comma-separated search queries")
	searchCmd.Flags().StringVar(&searchNear, "near", "", "Address to search around (geocoded)")
}

// takeCandidates picks up to max candidates from one query's results that
// have not been seen before. Duplicates from earlier queries do not consume
// the per-query budget.
func takeCandidates(found []places.Candidate, seen map[string]bool, max int) []places.Candidate {
	var picked []places.Candidate
	for _, c := range found {
		if len(picked) >= max {
			break
		}
		if seen[c.PlaceID] {
			continue
		}
		seen[c.PlaceID] = true
		picked = append(picked, c)
	}
	return picked
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	apiKey := os.Getenv(cfg.APIs.PlacesKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("missing provider key: set %s (or add it to .env)", cfg.APIs.PlacesKeyEnv)
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

	client := places.NewClient(apiKey, time.Duration(cfg.Search.TimeoutSeconds)*time.Second)
	ctx := context.Background()

	var lat, lng float64
	if searchNear != "" {
		lat, lng, err = client.Geocode(ctx, searchNear)
		if err != nil {
			return err
		}
		fmt.Printf("Geocoded %q to %.6f, %.6f\n", searchNear, lat, lng)
	}

	// Collect unique candidates across all queries.
	seen := make(map[string]bool)
	var candidates []places.Candidate
	for _, q := range strings.Split(searchQueries, ",") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}

		fmt.Printf("Searching %q...\n", q)
		found, err := client.TextSearch(ctx, q, lat, lng, cfg.Search.RadiusMeters)
		if err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}

		picked := takeCandidates(found, seen, cfg.Search.MaxCandidates)
		candidates = append(candidates, picked...)
		fmt.Printf("  %d candidates\n", len(picked))
	}

	if len(candidates) == 0 {
		fmt.Println("No places found for those queries.")
		return nil
	}

	// Fetch details and reviews concurrently, bounded.
	type fetched struct {
		cand    *places.Candidate
		reviews []places.Review
	}
	results := make([]*fetched, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Search.Concurrency)

	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c places.Candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			cand, reviews, err := client.Details(ctx, c.PlaceID, cfg.Search.MaxReviewsPerPlace)
			if err != nil {
				fmt.Printf("  %s: %v\n", c.Name, err)
				return
			}
			results[i] = &fetched{cand: cand, reviews: reviews}
		}(i, c)
	}
	wg.Wait()

	now := time.Now()
	var breakdowns []*scorer.Breakdown

	for _, f := range results {
		if f == nil {
			continue
		}

		if err := placeRepo.Upsert(f.cand.PlaceID, f.cand.Name, f.cand.Address, f.cand.Lat, f.cand.Lng, f.cand.Rating); err != nil {
			fmt.Printf("  Failed to save %s: %v\n", f.cand.Name, err)
			continue
		}

		cached := make([]review.Review, len(f.reviews))
		engineReviews := make([]scorer.Review, len(f.reviews))
		for j, rev := range f.reviews {
			cached[j] = review.Review{Author: rev.Author, Rating: rev.Rating, Text: rev.Text, ReviewedAt: rev.Time}
			engineReviews[j] = scorer.Review{Author: rev.Author, Rating: rev.Rating, Text: rev.Text, ReviewedAt: rev.Time}
		}
		if err := reviewRepo.Replace(f.cand.PlaceID, cached); err != nil {
			fmt.Printf("  Failed to save reviews for %s: %v\n", f.cand.Name, err)
			continue
		}

		b, err := engine.Score(scorer.Place{ID: f.cand.PlaceID, Name: f.cand.Name, Rating: f.cand.Rating}, engineReviews, now)
		if err != nil {
			fmt.Printf("  Failed to score %s: %v\n", f.cand.Name, err)
			continue
		}
		if err := scoreRepo.Upsert(b); err != nil {
			fmt.Printf("  Failed to save score for %s: %v\n", f.cand.Name, err)
			continue
		}
		breakdowns = append(breakdowns, b)
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].FocusScore != breakdowns[j].FocusScore {
			return breakdowns[i].FocusScore > breakdowns[j].FocusScore
		}
		return breakdowns[i].Name < breakdowns[j].Name
	})

	fmt.Printf("\nScored %d places:\n\n", len(breakdowns))
	for _, b := range breakdowns {
		flag := ""
		if !b.Reliable {
			flag = "  (few recent reviews)"
		}
		fmt.Printf("  %5.1f  %s%s\n", b.FocusScore, b.Name, flag)
	}
	fmt.Println("\nRun 'focusplaces list' for the full table or 'focusplaces show <place-id>' for details.")

	return nil
}
