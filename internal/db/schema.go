package db

import "database/sql"

// SchemaSQL is the complete modern schema for fresh barline installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests load
// it via GetSchemaSQL(); repository code that references a column missing here
// fails immediately with "no such column" in tests instead of in production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Books (physical or PDF sheet-music books)
CREATE TABLE IF NOT EXISTS music_book (
	book_id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	composer TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Songs (one song belongs to one book)
CREATE TABLE IF NOT EXISTS songs (
	song_id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	first_page_position TEXT NOT NULL CHECK(first_page_position IN ('left', 'right')) DEFAULT 'left',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (book_id) REFERENCES music_book(book_id)
);

-- Page layout: one row per printed line, ordered by (page, line)
CREATE TABLE IF NOT EXISTS song_page_lines (
	song_page_line_id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id INTEGER NOT NULL,
	page_number INTEGER NOT NULL,
	line_number_on_page INTEGER NOT NULL,
	num_measures INTEGER NOT NULL,
	last_measure_overflows INTEGER DEFAULT 0,
	start_time_secs REAL,
	FOREIGN KEY (song_id) REFERENCES songs(song_id),
	UNIQUE(song_id, page_number, line_number_on_page)
);

-- Current per-measure confidence records. At most one row per
-- (song, page, line, measure, practicer, hands) slot.
CREATE TABLE IF NOT EXISTS song_measure (
	song_measure_id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id INTEGER NOT NULL,
	book_id INTEGER NOT NULL,
	page_number INTEGER NOT NULL,
	line_number INTEGER NOT NULL,
	measure_number INTEGER NOT NULL,
	confidence REAL NOT NULL CHECK(confidence >= 0 AND confidence <= 10),
	notes TEXT NOT NULL DEFAULT '',
	practicer TEXT NOT NULL DEFAULT 'User',
	bpm INTEGER,
	hands TEXT NOT NULL CHECK(hands IN ('left', 'right', 'both')) DEFAULT 'both',
	time DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (song_id) REFERENCES songs(song_id),
	FOREIGN KEY (book_id) REFERENCES music_book(book_id),
	UNIQUE(song_id, page_number, line_number, measure_number, practicer, hands)
);

CREATE INDEX IF NOT EXISTS idx_song_measure_slot ON song_measure(song_id, page_number, line_number, measure_number);

-- Superseded confidence records, appended on every overwrite. Never updated.
CREATE TABLE IF NOT EXISTS song_measure_history (
	history_id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_measure_id INTEGER NOT NULL,
	song_id INTEGER NOT NULL,
	book_id INTEGER NOT NULL,
	page_number INTEGER NOT NULL,
	line_number INTEGER NOT NULL,
	measure_number INTEGER NOT NULL,
	confidence REAL NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	practicer TEXT NOT NULL DEFAULT 'User',
	bpm INTEGER,
	hands TEXT NOT NULL DEFAULT 'both',
	time DATETIME,
	archived_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (song_measure_id) REFERENCES song_measure(song_measure_id)
);

CREATE INDEX IF NOT EXISTS idx_song_measure_history_slot ON song_measure_history(song_id, page_number, line_number, measure_number);

-- Practice session log (whole-passage practice, separate from per-measure confidence)
CREATE TABLE IF NOT EXISTS practice_session (
	practice_session_id INTEGER PRIMARY KEY AUTOINCREMENT,
	song_id INTEGER NOT NULL,
	part_number INTEGER,
	from_measure INTEGER,
	to_measure INTEGER,
	from_page INTEGER,
	to_page INTEGER,
	session_type TEXT,
	notes TEXT,
	confidence_before REAL,
	confidence_after REAL,
	hands TEXT,
	playback_speed REAL,
	practicers TEXT,
	duration_minutes INTEGER,
	practice_time DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (song_id) REFERENCES songs(song_id)
);

CREATE INDEX IF NOT EXISTS idx_practice_session_song ON practice_session(song_id, practice_time);

-- Migration tracking
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// GetSchemaSQL returns the authoritative schema SQL.
// Tests use this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema creates all tables and runs pending migrations.
func InitSchema(database *sql.DB) error {
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	return RunMigrations(database)
}
