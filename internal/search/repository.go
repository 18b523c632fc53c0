package search

import (
	"github.com/mkarlsen/focusplaces/internal/database"
)

// Result is one review matching a full-text query, joined with its place
// and focus score.
type Result struct {
	PlaceID    string
	PlaceName  string
	Snippet    string
	Rank       float64
	FocusScore float64
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Search runs a full-text query across cached review text, best BM25 rank
// first.
func (r *Repository) Search(query string, limit int) ([]Result, error) {
	rows, err := r.db.Query(`
		SELECT
			p.id,
			p.name,
			snippet(reviews_fts, -1, '<b>', '</b>', '...', 32) as snippet,
			bm25(reviews_fts) as rank,
			COALESCE(s.focus_score, 0) as focus_score
		FROM reviews_fts
		JOIN reviews rv ON reviews_fts.rowid = rv.id
		JOIN places p ON rv.place_id = p.id
		LEFT JOIN scores s ON p.id = s.place_id
		WHERE reviews_fts MATCH ?
		ORDER BY bm25(reviews_fts)
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var sr Result
		if err := rows.Scan(&sr.PlaceID, &sr.PlaceName, &sr.Snippet, &sr.Rank, &sr.FocusScore); err != nil {
			return nil, err
		}
		results = append(results, sr)
	}
	return results, rows.Err()
}

// RebuildIndex repopulates the full-text index from the reviews table.
func (r *Repository) RebuildIndex() error {
	_, err := r.db.Exec(`INSERT INTO reviews_fts(reviews_fts) VALUES('rebuild')`)
	return err
}
