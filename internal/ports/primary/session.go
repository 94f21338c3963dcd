package primary

import (
	"context"
	"time"
)

// SessionService defines the primary port for the practice-session log.
// Sessions record whole-passage practice; they are independent of the
// per-measure confidence grid.
type SessionService interface {
	// LogSession appends a practice session.
	LogSession(ctx context.Context, req LogSessionRequest) (*PracticeSession, error)

	// ListSessions lists a song's sessions, newest first.
	ListSessions(ctx context.Context, songID int64) ([]*PracticeSession, error)

	// ListSessionsForMeasures lists sessions overlapping an absolute measure
	// range, plus whole-song sessions, newest first.
	ListSessionsForMeasures(ctx context.Context, songID int64, from, to int) ([]*PracticeSession, error)
}

// LogSessionRequest contains parameters for logging a practice session.
type LogSessionRequest struct {
	SongID           int64
	PartNumber       int64
	FromMeasure      int64
	ToMeasure        int64
	FromPage         int64
	ToPage           int64
	SessionType      string
	Notes            string
	ConfidenceBefore *float64
	ConfidenceAfter  *float64
	Hands            string
	PlaybackSpeed    float64
	Practicers       string
	DurationMinutes  int64
}

// PracticeSession represents a logged session at the port boundary.
type PracticeSession struct {
	ID               int64
	SongID           int64
	PartNumber       int64
	FromMeasure      int64
	ToMeasure        int64
	FromPage         int64
	ToPage           int64
	SessionType      string
	Notes            string
	ConfidenceBefore *float64
	ConfidenceAfter  *float64
	Hands            string
	PlaybackSpeed    float64
	Practicers       string
	DurationMinutes  int64
	PracticeTime     time.Time
}
