package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_fts5=true")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS places (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT,
		lat REAL,
		lng REAL,
		rating REAL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY,
		place_id TEXT NOT NULL REFERENCES places(id),
		position INTEGER NOT NULL,
		author TEXT,
		rating INTEGER,
		text TEXT NOT NULL,
		reviewed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS scores (
		place_id TEXT PRIMARY KEY REFERENCES places(id),
		rating_component REAL,
		keyword_component REAL,
		focus_score REAL,
		reliable BOOLEAN,
		rating_missing BOOLEAN,
		keyword_missing BOOLEAN,
		review_count INTEGER,
		recent_review_count INTEGER,
		positive_factors TEXT,
		negative_factors TEXT,
		excerpts TEXT,
		scored_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reviews_place ON reviews(place_id);
	CREATE INDEX IF NOT EXISTS idx_reviews_reviewed ON reviews(reviewed_at);
	CREATE INDEX IF NOT EXISTS idx_scores_focus ON scores(focus_score DESC);

	CREATE VIRTUAL TABLE IF NOT EXISTS reviews_fts USING fts5(
		text,
		content='reviews',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS reviews_ai AFTER INSERT ON reviews BEGIN
		INSERT INTO reviews_fts(rowid, text) VALUES (new.id, new.text);
	END;

	CREATE TRIGGER IF NOT EXISTS reviews_ad AFTER DELETE ON reviews BEGIN
		INSERT INTO reviews_fts(reviews_fts, rowid, text) VALUES('delete', old.id, old.text);
	END;

	CREATE TRIGGER IF NOT EXISTS reviews_au AFTER UPDATE ON reviews BEGIN
		INSERT INTO reviews_fts(reviews_fts, rowid, text) VALUES('delete', old.id, old.text);
		INSERT INTO reviews_fts(rowid, text) VALUES (new.id, new.text);
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
