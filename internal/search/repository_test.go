package search

import (
	"path/filepath"
	"testing"

	"github.com/mkarlsen/focusplaces/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	seed := []struct{ query string }{
		{`INSERT INTO places (id, name) VALUES ('pl-1', 'Corner Cafe')`},
		{`INSERT INTO places (id, name) VALUES ('pl-2', 'City Library')`},
		{`INSERT INTO reviews (place_id, position, text) VALUES ('pl-1', 0, 'Wonderfully quiet in the mornings with fast wifi')`},
		{`INSERT INTO reviews (place_id, position, text) VALUES ('pl-2', 0, 'Great reading rooms but no outlets anywhere')`},
		{`INSERT INTO scores (place_id, focus_score) VALUES ('pl-1', 81.0)`},
	}
	for _, s := range seed {
		if _, err := db.Exec(s.query); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
	return db
}

func TestSearchFindsReviewText(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	results, err := repo.Search("quiet", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].PlaceID != "pl-1" || results[0].PlaceName != "Corner Cafe" {
		t.Errorf("unexpected result: %+v", results[0])
	}
	if results[0].FocusScore != 81.0 {
		t.Errorf("expected joined focus score 81, got %f", results[0].FocusScore)
	}
}

func TestSearchNoResults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	results, err := repo.Search("skylight", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRebuildIndex(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	if err := repo.RebuildIndex(); err != nil {
		t.Fatalf("RebuildIndex failed: %v", err)
	}

	results, err := repo.Search("outlets", 10)
	if err != nil {
		t.Fatalf("Search after rebuild failed: %v", err)
	}
	if len(results) != 1 || results[0].PlaceID != "pl-2" {
		t.Errorf("rebuilt index lost reviews: %+v", results)
	}
}
