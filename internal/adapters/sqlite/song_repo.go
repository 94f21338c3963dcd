// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/barline/internal/ports/secondary"
)

// SongRepository implements secondary.SongRepository with SQLite.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SQLite song repository.
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// GetSong retrieves a song by its ID.
func (r *SongRepository) GetSong(ctx context.Context, songID int64) (*secondary.SongRecord, error) {
	record := &secondary.SongRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT song_id, book_id, title, first_page_position, created_at FROM songs WHERE song_id = ?",
		songID,
	).Scan(&record.SongID, &record.BookID, &record.Title, &record.FirstPagePosition, &record.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song %d: %w", songID, secondary.ErrSongNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get song: %w", err)
	}

	return record, nil
}

// ListSongs retrieves all songs ordered by title.
func (r *SongRepository) ListSongs(ctx context.Context) ([]*secondary.SongRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT song_id, book_id, title, first_page_position, created_at FROM songs ORDER BY title",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	var songs []*secondary.SongRecord
	for rows.Next() {
		record := &secondary.SongRecord{}
		if err := rows.Scan(&record.SongID, &record.BookID, &record.Title, &record.FirstPagePosition, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, record)
	}

	return songs, rows.Err()
}

// ListBooks retrieves all books ordered by title.
func (r *SongRepository) ListBooks(ctx context.Context) ([]*secondary.BookRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT book_id, title, composer, created_at FROM music_book ORDER BY title",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*secondary.BookRecord
	for rows.Next() {
		var composer sql.NullString
		record := &secondary.BookRecord{}
		if err := rows.Scan(&record.BookID, &record.Title, &composer, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		record.Composer = composer.String
		books = append(books, record)
	}

	return books, rows.Err()
}

// CreateBook persists a new book and returns its assigned ID.
func (r *SongRepository) CreateBook(ctx context.Context, book *secondary.BookRecord) (int64, error) {
	var composer sql.NullString
	if book.Composer != "" {
		composer = sql.NullString{String: book.Composer, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO music_book (title, composer) VALUES (?, ?)",
		book.Title, composer,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read book id: %w", err)
	}
	return id, nil
}

// CreateSong persists a new song and returns its assigned ID.
func (r *SongRepository) CreateSong(ctx context.Context, song *secondary.SongRecord) (int64, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM music_book WHERE book_id = ?", song.BookID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to check book existence: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("book %d: %w", song.BookID, secondary.ErrBookNotFound)
	}

	position := song.FirstPagePosition
	if position == "" {
		position = "left"
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO songs (book_id, title, first_page_position) VALUES (?, ?, ?)",
		song.BookID, song.Title, position,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create song: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read song id: %w", err)
	}
	return id, nil
}

// Ensure SongRepository implements the interface
var _ secondary.SongRepository = (*SongRepository)(nil)
