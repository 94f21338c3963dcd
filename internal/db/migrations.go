package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order.
//
// The measure table predates both the practicer and hands dimensions; these
// migrations widen the slot key for databases created before SchemaSQL
// reflected the full tuple. Fresh installs already carry every column, so each
// migration checks before altering.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_practicer_to_song_measure",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_bpm_and_hands_to_song_measure",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_hands_to_song_measure_history",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations(database *sql.DB) error {
	// Get current schema version
	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(database); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = database.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// columnExists reports whether a table already has a column.
func columnExists(database *sql.DB, table, column string) (bool, error) {
	rows, err := database.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to read table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// migrationV1 adds the practicer dimension to measure records.
// Pre-practicer rows belong to the default practicer.
func migrationV1(database *sql.DB) error {
	exists, err := columnExists(database, "song_measure", "practicer")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = database.Exec(`ALTER TABLE song_measure ADD COLUMN practicer TEXT NOT NULL DEFAULT 'User'`)
	if err != nil {
		return fmt.Errorf("failed to add practicer column: %w", err)
	}
	return nil
}

// migrationV2 adds bpm and hands to measure records. Legacy rows recorded
// before the hands dimension existed default to 'both'.
func migrationV2(database *sql.DB) error {
	exists, err := columnExists(database, "song_measure", "hands")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := database.Exec(`ALTER TABLE song_measure ADD COLUMN bpm INTEGER`); err != nil {
		return fmt.Errorf("failed to add bpm column: %w", err)
	}
	if _, err := database.Exec(`ALTER TABLE song_measure ADD COLUMN hands TEXT NOT NULL DEFAULT 'both'`); err != nil {
		return fmt.Errorf("failed to add hands column: %w", err)
	}
	return nil
}

// migrationV3 mirrors the bpm/hands widening onto the history table so
// archived snapshots keep the full field set.
func migrationV3(database *sql.DB) error {
	exists, err := columnExists(database, "song_measure_history", "hands")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := database.Exec(`ALTER TABLE song_measure_history ADD COLUMN bpm INTEGER`); err != nil {
		return fmt.Errorf("failed to add bpm column to history: %w", err)
	}
	if _, err := database.Exec(`ALTER TABLE song_measure_history ADD COLUMN hands TEXT NOT NULL DEFAULT 'both'`); err != nil {
		return fmt.Errorf("failed to add hands column to history: %w", err)
	}
	return nil
}
