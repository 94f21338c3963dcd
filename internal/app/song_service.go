// Package app contains the application services that implement the primary
// ports by orchestrating core guards and secondary repositories.
package app

import (
	"context"
	"fmt"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

// SongServiceImpl implements the SongService interface.
type SongServiceImpl struct {
	songRepo secondary.SongRepository
}

// NewSongService creates a new SongService with injected dependencies.
func NewSongService(songRepo secondary.SongRepository) *SongServiceImpl {
	return &SongServiceImpl{songRepo: songRepo}
}

// ListBooks lists all books ordered by title.
func (s *SongServiceImpl) ListBooks(ctx context.Context) ([]*primary.Book, error) {
	records, err := s.songRepo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]*primary.Book, len(records))
	for i, r := range records {
		books[i] = &primary.Book{
			BookID:   r.BookID,
			Title:    r.Title,
			Composer: r.Composer,
		}
	}
	return books, nil
}

// ListSongs lists all songs ordered by title.
func (s *SongServiceImpl) ListSongs(ctx context.Context) ([]*primary.Song, error) {
	records, err := s.songRepo.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	songs := make([]*primary.Song, len(records))
	for i, r := range records {
		songs[i] = recordToSong(r)
	}
	return songs, nil
}

// GetSong retrieves a song by ID.
func (s *SongServiceImpl) GetSong(ctx context.Context, songID int64) (*primary.Song, error) {
	record, err := s.songRepo.GetSong(ctx, songID)
	if err != nil {
		return nil, err
	}
	return recordToSong(record), nil
}

func recordToSong(r *secondary.SongRecord) *primary.Song {
	return &primary.Song{
		SongID:            r.SongID,
		BookID:            r.BookID,
		Title:             r.Title,
		FirstPagePosition: r.FirstPagePosition,
	}
}

// Ensure SongServiceImpl implements the interface
var _ primary.SongService = (*SongServiceImpl)(nil)
