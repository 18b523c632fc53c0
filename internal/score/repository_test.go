package score

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mkarlsen/focusplaces/internal/database"
	"github.com/mkarlsen/focusplaces/internal/scorer"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO places (id, name) VALUES ('pl-1', 'Corner Cafe')`); err != nil {
		t.Fatalf("failed to seed place: %v", err)
	}
	return db
}

func TestUpsertAndGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	b := &scorer.Breakdown{
		PlaceID:           "pl-1",
		RatingComponent:   90.0,
		KeywordComponent:  76.4,
		FocusScore:        83.2,
		Reliable:          true,
		ReviewCount:       4,
		RecentReviewCount: 3,
		PositiveFactors:   map[string]int{"quiet": 2, "wifi": 1},
		NegativeFactors:   map[string]int{"crowded": 1},
		Excerpts: []scorer.Excerpt{
			{Keyword: "quiet", Weight: 3.0, Text: "...wonderfully quiet in the mornings..."},
		},
	}

	if err := repo.Upsert(b); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, scoredAt, err := repo.Get("pl-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if scoredAt.IsZero() {
		t.Error("expected a scored_at timestamp")
	}
	if got.FocusScore != b.FocusScore || got.KeywordComponent != b.KeywordComponent {
		t.Errorf("score fields did not round-trip: %+v", got)
	}
	if !got.Reliable {
		t.Error("reliable flag did not round-trip")
	}
	if !reflect.DeepEqual(got.PositiveFactors, b.PositiveFactors) {
		t.Errorf("positive factors did not round-trip: %v", got.PositiveFactors)
	}
	if !reflect.DeepEqual(got.NegativeFactors, b.NegativeFactors) {
		t.Errorf("negative factors did not round-trip: %v", got.NegativeFactors)
	}
	if !reflect.DeepEqual(got.Excerpts, b.Excerpts) {
		t.Errorf("excerpts did not round-trip: %v", got.Excerpts)
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	if err := repo.Upsert(&scorer.Breakdown{PlaceID: "pl-1", FocusScore: 40}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := repo.Upsert(&scorer.Breakdown{PlaceID: "pl-1", FocusScore: 65}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	got, _, err := repo.Get("pl-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.FocusScore != 65 {
		t.Errorf("expected updated score 65, got %f", got.FocusScore)
	}
}

func TestUnscoredPlaceIDs(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO places (id, name) VALUES ('pl-2', 'Library')`); err != nil {
		t.Fatal(err)
	}

	repo := NewRepository(db)
	if err := repo.Upsert(&scorer.Breakdown{PlaceID: "pl-1", FocusScore: 50}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	ids, err := repo.UnscoredPlaceIDs(10)
	if err != nil {
		t.Fatalf("UnscoredPlaceIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "pl-2" {
		t.Errorf("expected only pl-2 unscored, got %v", ids)
	}
}
