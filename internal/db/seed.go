package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: one book,
// two songs, and the page layout for the first song. Measure data is left
// empty so the grid starts neutral.
func SeedFixtures(database *sql.DB) error {
	res, err := database.Exec(
		"INSERT INTO music_book (title, composer) VALUES (?, ?)",
		"Nocturnes", "Frédéric Chopin",
	)
	if err != nil {
		return fmt.Errorf("seed book: %w", err)
	}
	bookID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("seed book id: %w", err)
	}

	songs := []struct {
		title    string
		position string
	}{
		{"Nocturne Op. 9 No. 2", "left"},
		{"Nocturne Op. 48 No. 1", "right"},
	}
	songIDs := make([]int64, 0, len(songs))
	for _, s := range songs {
		res, err := database.Exec(
			"INSERT INTO songs (book_id, title, first_page_position) VALUES (?, ?, ?)",
			bookID, s.title, s.position,
		)
		if err != nil {
			return fmt.Errorf("seed song %q: %w", s.title, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed song id: %w", err)
		}
		songIDs = append(songIDs, id)
	}

	// Layout for the first song: page 8 has lines of 5,3,3,3 measures,
	// page 9 has five lines of 3.
	lines := []struct {
		page, line, measures int
	}{
		{8, 1, 5}, {8, 2, 3}, {8, 3, 3}, {8, 4, 3},
		{9, 1, 3}, {9, 2, 3}, {9, 3, 3}, {9, 4, 3}, {9, 5, 3},
	}
	for _, l := range lines {
		_, err := database.Exec(
			"INSERT INTO song_page_lines (song_id, page_number, line_number_on_page, num_measures) VALUES (?, ?, ?, ?)",
			songIDs[0], l.page, l.line, l.measures,
		)
		if err != nil {
			return fmt.Errorf("seed page line p%dl%d: %w", l.page, l.line, err)
		}
	}

	return nil
}

// Seeded reports whether fixtures already exist (any book present).
func Seeded(database *sql.DB) (bool, error) {
	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM music_book").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check seed state: %w", err)
	}
	return count > 0, nil
}
