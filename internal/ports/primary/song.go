// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the CLI and HTTP layers call.
package primary

import "context"

// SongService defines the primary port for song and book reads.
type SongService interface {
	// ListBooks lists all books ordered by title.
	ListBooks(ctx context.Context) ([]*Book, error)

	// ListSongs lists all songs ordered by title.
	ListSongs(ctx context.Context) ([]*Song, error)

	// GetSong retrieves a song by ID.
	GetSong(ctx context.Context, songID int64) (*Song, error)
}

// Song represents a song at the port boundary.
type Song struct {
	SongID            int64
	BookID            int64
	Title             string
	FirstPagePosition string
}

// Book represents a sheet-music book at the port boundary.
type Book struct {
	BookID   int64
	Title    string
	Composer string
}
