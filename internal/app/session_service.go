package app

import (
	"context"
	"fmt"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	songRepo    secondary.SongRepository
	sessionRepo secondary.SessionRepository
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(songRepo secondary.SongRepository, sessionRepo secondary.SessionRepository) *SessionServiceImpl {
	return &SessionServiceImpl{
		songRepo:    songRepo,
		sessionRepo: sessionRepo,
	}
}

// LogSession appends a practice session.
func (s *SessionServiceImpl) LogSession(ctx context.Context, req primary.LogSessionRequest) (*primary.PracticeSession, error) {
	if _, err := s.songRepo.GetSong(ctx, req.SongID); err != nil {
		return nil, err
	}
	if req.FromMeasure > req.ToMeasure && req.ToMeasure != 0 {
		return nil, primary.NewValidationError("from_measure must not exceed to_measure")
	}

	record := &secondary.SessionRecord{
		SongID:           req.SongID,
		PartNumber:       req.PartNumber,
		FromMeasure:      req.FromMeasure,
		ToMeasure:        req.ToMeasure,
		FromPage:         req.FromPage,
		ToPage:           req.ToPage,
		SessionType:      req.SessionType,
		Notes:            req.Notes,
		ConfidenceBefore: req.ConfidenceBefore,
		ConfidenceAfter:  req.ConfidenceAfter,
		Hands:            req.Hands,
		PlaybackSpeed:    req.PlaybackSpeed,
		Practicers:       req.Practicers,
		DurationMinutes:  req.DurationMinutes,
	}

	id, err := s.sessionRepo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to log session: %w", err)
	}

	// Reread by listing; Create does not return the stored practice_time.
	sessions, err := s.sessionRepo.ListBySong(ctx, req.SongID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logged session: %w", err)
	}
	for _, rec := range sessions {
		if rec.ID == id {
			return recordToSession(rec), nil
		}
	}
	return nil, fmt.Errorf("logged session %d not found on reread", id)
}

// ListSessions lists a song's sessions, newest first.
func (s *SessionServiceImpl) ListSessions(ctx context.Context, songID int64) ([]*primary.PracticeSession, error) {
	records, err := s.sessionRepo.ListBySong(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return recordsToSessions(records), nil
}

// ListSessionsForMeasures lists sessions overlapping an absolute measure
// range, plus whole-song sessions, newest first.
func (s *SessionServiceImpl) ListSessionsForMeasures(ctx context.Context, songID int64, from, to int) ([]*primary.PracticeSession, error) {
	records, err := s.sessionRepo.ListOverlapping(ctx, songID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping sessions: %w", err)
	}
	return recordsToSessions(records), nil
}

func recordsToSessions(records []*secondary.SessionRecord) []*primary.PracticeSession {
	sessions := make([]*primary.PracticeSession, len(records))
	for i, r := range records {
		sessions[i] = recordToSession(r)
	}
	return sessions
}

func recordToSession(r *secondary.SessionRecord) *primary.PracticeSession {
	return &primary.PracticeSession{
		ID:               r.ID,
		SongID:           r.SongID,
		PartNumber:       r.PartNumber,
		FromMeasure:      r.FromMeasure,
		ToMeasure:        r.ToMeasure,
		FromPage:         r.FromPage,
		ToPage:           r.ToPage,
		SessionType:      r.SessionType,
		Notes:            r.Notes,
		ConfidenceBefore: r.ConfidenceBefore,
		ConfidenceAfter:  r.ConfidenceAfter,
		Hands:            r.Hands,
		PlaybackSpeed:    r.PlaybackSpeed,
		Practicers:       r.Practicers,
		DurationMinutes:  r.DurationMinutes,
		PracticeTime:     r.PracticeTime,
	}
}

// Ensure SessionServiceImpl implements the interface
var _ primary.SessionService = (*SessionServiceImpl)(nil)
