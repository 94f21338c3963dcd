// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors surfaced by repositories. Callers check with errors.Is.
var (
	// ErrSongNotFound indicates the referenced song does not exist.
	ErrSongNotFound = errors.New("song not found")

	// ErrBookNotFound indicates the referenced book does not exist.
	ErrBookNotFound = errors.New("book not found")
)

// SongRepository defines the secondary port for song and book persistence.
type SongRepository interface {
	// GetSong retrieves a song by its ID. Returns ErrSongNotFound if absent.
	GetSong(ctx context.Context, songID int64) (*SongRecord, error)

	// ListSongs retrieves all songs ordered by title.
	ListSongs(ctx context.Context) ([]*SongRecord, error)

	// ListBooks retrieves all books ordered by title.
	ListBooks(ctx context.Context) ([]*BookRecord, error)

	// CreateBook persists a new book and returns its assigned ID.
	CreateBook(ctx context.Context, book *BookRecord) (int64, error)

	// CreateSong persists a new song and returns its assigned ID.
	// Returns ErrBookNotFound if the book does not exist.
	CreateSong(ctx context.Context, song *SongRecord) (int64, error)
}

// SongRecord represents a song as stored in persistence.
type SongRecord struct {
	SongID            int64
	BookID            int64
	Title             string
	FirstPagePosition string // "left" or "right"
	CreatedAt         time.Time
}

// BookRecord represents a sheet-music book as stored in persistence.
type BookRecord struct {
	BookID    int64
	Title     string
	Composer  string // Empty string means null
	CreatedAt time.Time
}

// LayoutRepository defines the secondary port for page-layout reads.
// Layout rows are read-only to the core; they are authored out of band.
type LayoutRepository interface {
	// ListPageLines retrieves a song's layout rows ordered by
	// (page_number, line_number_on_page).
	ListPageLines(ctx context.Context, songID int64) ([]*PageLineRecord, error)
}

// PageLineRecord is one printed line of a song's layout.
type PageLineRecord struct {
	SongID               int64
	PageNumber           int
	LineNumberOnPage     int
	NumMeasures          int
	LastMeasureOverflows bool
	StartTimeSecs        float64 // 0 means null
}

// MeasureRepository defines the secondary port for confidence-record
// persistence, including the history archive written on overwrite.
type MeasureRepository interface {
	// Upsert writes a confidence record for its slot
	// (song, page, line, measure, practicer, hands). If a current record
	// already occupies the slot, the prior values are archived to history and
	// the row is updated in place, keeping its ID; otherwise a new row is
	// inserted. The archive-then-update sequence runs in one transaction.
	// Returns the resulting current record with all fields populated.
	Upsert(ctx context.Context, rec *MeasureRecord) (*MeasureRecord, error)

	// ListCurrent retrieves current records for a song, optionally narrowed by
	// filters, ordered by (page, line, measure) ascending.
	ListCurrent(ctx context.Context, songID int64, filters MeasureFilters) ([]*MeasureRecord, error)

	// ListHistory retrieves archived records for a cell ordered newest-first
	// by archive time. Practicer/hands filters are optional exact matches.
	ListHistory(ctx context.Context, songID int64, page, line, measure int, filters HistoryFilters) ([]*HistoryRecord, error)
}

// MeasureRecord represents a current confidence record as stored in
// persistence.
type MeasureRecord struct {
	ID         int64 // Assigned by the store on insert
	SongID     int64
	BookID     int64
	Page       int
	Line       int
	Measure    int
	Confidence float64
	Notes      string
	Practicer  string
	BPM        int64 // 0 means null
	Hands      string
	Time       time.Time // Last write time
}

// MeasureFilters contains optional narrowing for current-record queries.
// Zero values mean "not filtered" (page/line/measure numbers are 1-based).
type MeasureFilters struct {
	Page      int
	Line      int
	Measure   int
	Practicer string
	Hands     string
}

// HistoryFilters contains optional narrowing for history queries.
type HistoryFilters struct {
	Practicer string
	Hands     string
}

// HistoryRecord is a frozen copy of a superseded confidence record.
type HistoryRecord struct {
	HistoryID  int64
	MeasureID  int64 // ID of the current record this snapshot belonged to
	SongID     int64
	BookID     int64
	Page       int
	Line       int
	Measure    int
	Confidence float64
	Notes      string
	Practicer  string
	BPM        int64 // 0 means null
	Hands      string
	Time       time.Time // Write time of the superseded record
	ArchivedAt time.Time
}

// SessionRepository defines the secondary port for practice-session logging.
type SessionRepository interface {
	// Create persists a practice session and returns its assigned ID.
	Create(ctx context.Context, session *SessionRecord) (int64, error)

	// ListBySong retrieves sessions for a song ordered newest-first.
	ListBySong(ctx context.Context, songID int64) ([]*SessionRecord, error)

	// ListOverlapping retrieves sessions whose measure range overlaps
	// [from, to], plus whole-song sessions with no range, newest-first.
	ListOverlapping(ctx context.Context, songID int64, from, to int) ([]*SessionRecord, error)
}

// SessionRecord represents a logged practice session.
type SessionRecord struct {
	ID               int64
	SongID           int64
	PartNumber       int64 // 0 means null
	FromMeasure      int64 // 0 means null
	ToMeasure        int64 // 0 means null
	FromPage         int64 // 0 means null
	ToPage           int64 // 0 means null
	SessionType      string
	Notes            string
	ConfidenceBefore *float64 // nil means null; 0 is a valid confidence
	ConfidenceAfter  *float64 // nil means null
	Hands            string
	PlaybackSpeed    float64 // 0 means null
	Practicers       string
	DurationMinutes  int64 // 0 means null
	PracticeTime     time.Time
}
