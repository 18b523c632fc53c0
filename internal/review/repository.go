package review

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkarlsen/focusplaces/internal/database"
)

type Review struct {
	ID         int64
	PlaceID    string
	Position   int
	Author     string
	Rating     *int
	Text       string
	ReviewedAt *time.Time
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Replace swaps out a place's cached reviews for a freshly fetched set,
// preserving provider order via position.
func (r *Repository) Replace(placeID string, reviews []Review) error {
	if _, err := r.db.Exec(`DELETE FROM reviews WHERE place_id = ?`, placeID); err != nil {
		return fmt.Errorf("failed to clear reviews: %w", err)
	}

	for i, rev := range reviews {
		_, err := r.db.Exec(`
			INSERT INTO reviews (place_id, position, author, rating, text, reviewed_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, placeID, i, rev.Author, rev.Rating, rev.Text, rev.ReviewedAt)
		if err != nil {
			return fmt.Errorf("failed to insert review: %w", err)
		}
	}
	return nil
}

// ListForPlace returns a place's reviews in provider order.
func (r *Repository) ListForPlace(placeID string) ([]Review, error) {
	rows, err := r.db.Query(`
		SELECT id, place_id, position, COALESCE(author, ''), rating, text, reviewed_at
		FROM reviews
		WHERE place_id = ?
		ORDER BY position
	`, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rev Review
		var rating sql.NullInt64
		var reviewedAt sql.NullTime
		if err := rows.Scan(&rev.ID, &rev.PlaceID, &rev.Position, &rev.Author, &rating, &rev.Text, &reviewedAt); err != nil {
			return nil, err
		}
		if rating.Valid {
			n := int(rating.Int64)
			rev.Rating = &n
		}
		if reviewedAt.Valid {
			t := reviewedAt.Time
			rev.ReviewedAt = &t
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
