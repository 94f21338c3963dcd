package primary

import (
	"context"
	"time"
)

// MeasureService defines the primary port for confidence-record operations.
type MeasureService interface {
	// RecordPractice validates and writes a confidence record for one slot.
	// If the slot already holds a current record, the prior values are
	// archived to history and the record is updated in place. Returns the
	// resulting current record with all fields populated.
	RecordPractice(ctx context.Context, req RecordPracticeRequest) (*Measure, error)

	// GetCurrent lists current records for a song, optionally narrowed,
	// ordered by (page, line, measure).
	GetCurrent(ctx context.Context, q CurrentQuery) ([]*Measure, error)

	// GetHistory lists superseded records for a cell, newest first.
	GetHistory(ctx context.Context, q HistoryQuery) ([]*HistoryEntry, error)
}

// RecordPracticeRequest contains parameters for a confidence-record write.
type RecordPracticeRequest struct {
	SongID     int64
	Page       int
	Line       int
	Measure    int
	Confidence float64
	Notes      string
	Practicer  string // Defaults to "User" when blank
	BPM        int64  // 0 means not provided
	Hands      string // Defaults to "both" when blank
}

// CurrentQuery narrows a current-record read. Zero values mean unfiltered.
type CurrentQuery struct {
	SongID    int64
	Page      int
	Line      int
	Measure   int
	Practicer string
	Hands     string
}

// HistoryQuery identifies a cell plus optional practicer/hands filters.
type HistoryQuery struct {
	SongID    int64
	Page      int
	Line      int
	Measure   int
	Practicer string
	Hands     string
}

// Measure represents a current confidence record at the port boundary.
type Measure struct {
	ID         int64
	SongID     int64
	BookID     int64
	Page       int
	Line       int
	Measure    int
	Confidence float64
	Notes      string
	Practicer  string
	BPM        int64 // 0 means not set
	Hands      string
	Time       time.Time
}

// HistoryEntry represents an archived confidence record at the port boundary.
type HistoryEntry struct {
	MeasureID  int64
	SongID     int64
	Page       int
	Line       int
	Measure    int
	Confidence float64
	Notes      string
	Practicer  string
	BPM        int64
	Hands      string
	Time       time.Time
	ArchivedAt time.Time
}
