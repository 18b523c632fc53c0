package place

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkarlsen/focusplaces/internal/database"
)

type Place struct {
	ID         string
	Name       string
	Address    string
	Lat        float64
	Lng        float64
	Rating     *float64
	FetchedAt  time.Time
	FocusScore *float64
	Reliable   bool
}

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts or refreshes a place fetched from the provider.
func (r *Repository) Upsert(id, name, address string, lat, lng float64, rating *float64) error {
	_, err := r.db.Exec(`
		INSERT INTO places (id, name, address, lat, lng, rating, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			lat = excluded.lat,
			lng = excluded.lng,
			rating = excluded.rating,
			fetched_at = CURRENT_TIMESTAMP
	`, id, name, address, lat, lng, rating)
	if err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}
	return nil
}

func (r *Repository) Get(id string) (*Place, error) {
	var p Place
	var rating sql.NullFloat64
	err := r.db.QueryRow(`
		SELECT p.id, p.name, COALESCE(p.address, ''), p.lat, p.lng, p.rating, p.fetched_at
		FROM places p WHERE p.id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &rating, &p.FetchedAt)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	return &p, nil
}

// ListRanked returns places ordered by focus score descending. Unscored
// places sort last.
func (r *Repository) ListRanked(limit int) ([]Place, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.name, COALESCE(p.address, ''), p.lat, p.lng, p.rating, p.fetched_at,
		       s.focus_score, COALESCE(s.reliable, FALSE)
		FROM places p
		LEFT JOIN scores s ON p.id = s.place_id
		ORDER BY s.focus_score DESC NULLS LAST, p.name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var places []Place
	for rows.Next() {
		var p Place
		var rating, focus sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.Lat, &p.Lng, &rating, &p.FetchedAt, &focus, &p.Reliable); err != nil {
			return nil, err
		}
		if rating.Valid {
			p.Rating = &rating.Float64
		}
		if focus.Valid {
			p.FocusScore = &focus.Float64
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// IDs returns every cached place ID, for offline rescoring.
func (r *Repository) IDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM places ORDER BY id`)
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
