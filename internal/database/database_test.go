package database

import (
	"path/filepath"
	"testing"
)

func TestNewCreatesSchema(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"places", "reviews", "scores"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE name='reviews_fts'`).Scan(&name)
	if err != nil {
		t.Errorf("expected reviews_fts index to exist: %v", err)
	}
}

func TestReviewTriggersKeepIndexInSync(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO places (id, name) VALUES ('pl-1', 'Corner Cafe')`); err != nil {
		t.Fatalf("failed to seed place: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO reviews (id, place_id, position, text) VALUES (1, 'pl-1', 0, 'quiet spot')`); err != nil {
		t.Fatalf("failed to insert review: %v", err)
	}

	if _, err := db.Exec(`UPDATE reviews SET text = 'noisy spot' WHERE id = 1`); err != nil {
		t.Fatalf("update on reviews must not break the index triggers: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT count(*) FROM reviews_fts WHERE reviews_fts MATCH 'noisy'`).Scan(&n); err != nil {
		t.Fatalf("failed to query index: %v", err)
	}
	if n != 1 {
		t.Errorf("expected the updated text to be indexed, got %d matches", n)
	}

	if _, err := db.Exec(`DELETE FROM reviews WHERE id = 1`); err != nil {
		t.Fatalf("delete on reviews must not break the index triggers: %v", err)
	}
	if err := db.QueryRow(`SELECT count(*) FROM reviews_fts WHERE reviews_fts MATCH 'noisy'`).Scan(&n); err != nil {
		t.Fatalf("failed to query index: %v", err)
	}
	if n != 0 {
		t.Errorf("expected the deleted review out of the index, got %d matches", n)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := New(path)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	db.Close()
}
