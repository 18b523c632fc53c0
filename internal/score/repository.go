package score

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/scorer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Upsert persists a place's score breakdown. Factor tallies and excerpts are
// stored as JSON so the breakdown round-trips losslessly.
func (r *Repository) Upsert(b *scorer.Breakdown) error {
	positive, err := json.Marshal(b.PositiveFactors)
	if err != nil {
		return fmt.Errorf("failed to encode positive factors: %w", err)
	}
	negative, err := json.Marshal(b.NegativeFactors)
	if err != nil {
		return fmt.Errorf("failed to encode negative factors: %w", err)
	}
	excerpts, err := json.Marshal(b.Excerpts)
	if err != nil {
		return fmt.Errorf("failed to encode excerpts: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO scores (place_id, rating_component, keyword_component, focus_score,
			reliable, rating_missing, keyword_missing, review_count, recent_review_count,
			positive_factors, negative_factors, excerpts, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(place_id) DO UPDATE SET
			rating_component = excluded.rating_component,
			keyword_component = excluded.keyword_component,
			focus_score = excluded.focus_score,
			reliable = excluded.reliable,
			rating_missing = excluded.rating_missing,
			keyword_missing = excluded.keyword_missing,
			review_count = excluded.review_count,
			recent_review_count = excluded.recent_review_count,
			positive_factors = excluded.positive_factors,
			negative_factors = excluded.negative_factors,
			excerpts = excluded.excerpts,
			scored_at = CURRENT_TIMESTAMP
	`, b.PlaceID, b.RatingComponent, b.KeywordComponent, b.FocusScore,
		b.Reliable, b.RatingMissing, b.KeywordMissing, b.ReviewCount, b.RecentReviewCount,
		string(positive), string(negative), string(excerpts))
	return err
}

// Get loads a place's stored breakdown and when it was scored.
func (r *Repository) Get(placeID string) (*scorer.Breakdown, time.Time, error) {
	var b scorer.Breakdown
	var positive, negative, excerpts string
	var scoredAt time.Time
	err := r.db.QueryRow(`
		SELECT place_id, rating_component, keyword_component, focus_score,
			reliable, rating_missing, keyword_missing, review_count, recent_review_count,
			positive_factors, negative_factors, excerpts, scored_at
		FROM scores WHERE place_id = ?
	`, placeID).Scan(&b.PlaceID, &b.RatingComponent, &b.KeywordComponent, &b.FocusScore,
		&b.Reliable, &b.RatingMissing, &b.KeywordMissing, &b.ReviewCount, &b.RecentReviewCount,
		&positive, &negative, &excerpts, &scoredAt)
	if err != nil {
		return nil, time.Time{}, err
	}

	if err := json.Unmarshal([]byte(positive), &b.PositiveFactors); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode positive factors: %w", err)
	}
	if err := json.Unmarshal([]byte(negative), &b.NegativeFactors); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode negative factors: %w", err)
	}
	if err := json.Unmarshal([]byte(excerpts), &b.Excerpts); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode excerpts: %w", err)
	}
	return &b, scoredAt, nil
}

// UnscoredPlaceIDs returns cached places that have no stored score yet.
func (r *Repository) UnscoredPlaceIDs(limit int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT p.id FROM places p
		LEFT JOIN scores s ON p.id = s.place_id
		WHERE s.place_id IS NULL
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
