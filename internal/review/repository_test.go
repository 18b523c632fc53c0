package review

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mkarlsen/focusplaces/internal/database"
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

func TestReplaceAndList(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	ts := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	stars := 5

	reviews := []Review{
		{Author: "Sam", Rating: &stars, Text: "Quiet and calm.", ReviewedAt: &ts},
		{Author: "Ana", Text: "Great wifi."},
	}
	if err := repo.Replace("pl-1", reviews); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := repo.ListForPlace("pl-1")
	if err != nil {
		t.Fatalf("ListForPlace failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(got))
	}
	if got[0].Author != "Sam" || got[1].Author != "Ana" {
		t.Errorf("provider order not preserved: %q, %q", got[0].Author, got[1].Author)
	}
	if got[0].Rating == nil || *got[0].Rating != 5 {
		t.Errorf("rating did not round-trip: %v", got[0].Rating)
	}
	if got[0].ReviewedAt == nil || !got[0].ReviewedAt.Equal(ts) {
		t.Errorf("timestamp did not round-trip: %v", got[0].ReviewedAt)
	}
	if got[1].ReviewedAt != nil || got[1].Rating != nil {
		t.Errorf("expected undated, unrated second review: %+v", got[1])
	}
}

func TestReplaceSwapsOldReviews(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	if err := repo.Replace("pl-1", []Review{{Text: "Old review."}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := repo.Replace("pl-1", []Review{{Text: "New review."}, {Text: "Another."}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	got, err := repo.ListForPlace("pl-1")
	if err != nil {
		t.Fatalf("ListForPlace failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected the fresh set of 2 reviews, got %d", len(got))
	}
	if got[0].Text != "New review." {
		t.Errorf("old reviews were not replaced: %q", got[0].Text)
	}
}

func TestListForPlaceEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	got, err := repo.ListForPlace("pl-1")
	if err != nil {
		t.Fatalf("ListForPlace failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no reviews, got %d", len(got))
	}
}
