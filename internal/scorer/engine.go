package scorer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkarlsen/focusplaces/internal/config"
	"github.com/mkarlsen/focusplaces/internal/nlp"
)

// ErrInput marks bad per-place input. It fails that place's scoring call
// only; sibling places in a batch are unaffected.
var ErrInput = errors.New("invalid scoring input")

// Place is the slice of provider metadata the engine needs. Rating is nil
// when the provider returned none.
type Place struct {
	ID     string
	Name   string
	Rating *float64
}

// Review is one user review, in provider order. ReviewedAt is nil when the
// provider gave no timestamp; Rating is the optional per-review star rating,
// carried for display only.
type Review struct {
	Text       string
	ReviewedAt *time.Time
	Rating     *int
	Author     string
}

// Breakdown is the fully-serializable result of scoring one place. All score
// fields share the 0-100 scale.
type Breakdown struct {
	PlaceID           string         `json:"place_id"`
	Name              string         `json:"name"`
	RatingComponent   float64        `json:"rating_component"`
	KeywordComponent  float64        `json:"keyword_component"`
	FocusScore        float64        `json:"focus_score"`
	Reliable          bool           `json:"reliable"`
	RatingMissing     bool           `json:"rating_missing"`
	KeywordMissing    bool           `json:"keyword_missing"`
	ReviewCount       int            `json:"review_count"`
	RecentReviewCount int            `json:"recent_review_count"`
	PositiveFactors   map[string]int `json:"positive_factors,omitempty"`
	NegativeFactors   map[string]int `json:"negative_factors,omitempty"`
	Excerpts          []Excerpt      `json:"excerpts,omitempty"`
}

// Engine computes focus scores. It holds only immutable configuration and is
// safe for concurrent use; all per-call state lives on the stack.
type Engine struct {
	table       Table
	scoring     config.ScoringConfig
	maxExcerpts int
	context     int
}

// NewEngine validates the config once and builds the keyword table. An
// invalid blend or range fails here, never at scoring time.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table := DefaultTable()
	if len(cfg.Keywords) > 0 {
		table = NewTable(cfg.Keywords)
	}
	return &Engine{
		table:       table,
		scoring:     cfg.Scoring,
		maxExcerpts: cfg.Display.MaxExcerpts,
		context:     cfg.Display.ContextChars,
	}, nil
}

// reviewSignal is one review's contribution: its matches, per-review score,
// and recency weight.
type reviewSignal struct {
	index      int
	text       string
	reviewedAt *time.Time
	matches    MatchResult
	score      float64
	weight     float64
}

// Score computes the focus score for one place. It is deterministic in
// (place, reviews, config, now); now is injected so recency decay is
// testable and never read from a system clock.
func (e *Engine) Score(place Place, reviews []Review, now time.Time) (*Breakdown, error) {
	if place.ID == "" {
		return nil, fmt.Errorf("%w: place %q has no identifier", ErrInput, place.Name)
	}

	signals := make([]reviewSignal, 0, len(reviews))
	recent := 0
	for i, r := range reviews {
		tokens := nlp.Tokenize(r.Text)
		matches := e.table.Match(tokens)
		signals = append(signals, reviewSignal{
			index:      i,
			text:       r.Text,
			reviewedAt: r.ReviewedAt,
			matches:    matches,
			score:      reviewScore(matches, len(tokens), e.scoring.SigmoidSteepness),
			weight:     recencyWeight(r.ReviewedAt, now, e.scoring.RecencyWindowDays),
		})
		if isRecent(r.ReviewedAt, now, e.scoring.RecencyWindowDays) {
			recent++
		}
	}

	b := e.aggregate(place, signals)
	b.ReviewCount = len(reviews)
	b.RecentReviewCount = recent
	b.Reliable = recent >= e.scoring.MinRecentReviews && len(reviews) > 0
	b.Excerpts = extractExcerpts(signals, e.maxExcerpts, e.context)
	return b, nil
}

// Result pairs a place's breakdown with its error. Exactly one of the two is
// set.
type Result struct {
	Breakdown *Breakdown
	Err       error
}

// ScoreAll scores independent places in parallel, bounded by concurrency.
// Per-place failures are isolated: one bad place never blocks its siblings.
// Results come back in input order.
func (e *Engine) ScoreAll(places []Place, reviews [][]Review, now time.Time, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result, len(places))
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i := range places {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			b, err := e.Score(places[i], reviews[i], now)
			results[i] = Result{Breakdown: b, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}
