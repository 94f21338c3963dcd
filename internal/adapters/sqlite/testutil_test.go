// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/barline/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedBook inserts a test book and returns its ID.
func seedBook(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	if title == "" {
		title = "Test Book"
	}
	res, err := db.Exec("INSERT INTO music_book (title, composer) VALUES (?, 'Test Composer')", title)
	if err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedSong inserts a test song and returns its ID.
func seedSong(t *testing.T, db *sql.DB, bookID int64, title string) int64 {
	t.Helper()
	if title == "" {
		title = "Test Song"
	}
	res, err := db.Exec("INSERT INTO songs (book_id, title, first_page_position) VALUES (?, ?, 'left')", bookID, title)
	if err != nil {
		t.Fatalf("failed to seed song: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// seedPageLine inserts one layout row for a song.
func seedPageLine(t *testing.T, db *sql.DB, songID int64, page, line, measures int) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO song_page_lines (song_id, page_number, line_number_on_page, num_measures) VALUES (?, ?, ?, ?)",
		songID, page, line, measures,
	)
	if err != nil {
		t.Fatalf("failed to seed page line: %v", err)
	}
}
