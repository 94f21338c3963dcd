package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

func TestSessionService_LogSession(t *testing.T) {
	svc := NewSessionService(newMockSongRepository(), &mockSessionRepository{})

	before := 3.0
	logged, err := svc.LogSession(context.Background(), primary.LogSessionRequest{
		SongID:           1,
		FromMeasure:      5,
		ToMeasure:        12,
		SessionType:      "slow practice",
		ConfidenceBefore: &before,
		DurationMinutes:  15,
	})
	if err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}

	if logged.ID == 0 {
		t.Error("expected a session ID")
	}
	if logged.SessionType != "slow practice" {
		t.Errorf("expected session type preserved, got '%s'", logged.SessionType)
	}
	if logged.ConfidenceBefore == nil || *logged.ConfidenceBefore != 3.0 {
		t.Errorf("expected confidence before 3.0, got %v", logged.ConfidenceBefore)
	}
	if logged.PracticeTime.IsZero() {
		t.Error("expected practice time assigned")
	}
}

func TestSessionService_LogSession_SongNotFound(t *testing.T) {
	svc := NewSessionService(newMockSongRepository(), &mockSessionRepository{})

	_, err := svc.LogSession(context.Background(), primary.LogSessionRequest{SongID: 42})
	if !errors.Is(err, secondary.ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
}

func TestSessionService_LogSession_InvertedRange(t *testing.T) {
	svc := NewSessionService(newMockSongRepository(), &mockSessionRepository{})

	_, err := svc.LogSession(context.Background(), primary.LogSessionRequest{
		SongID:      1,
		FromMeasure: 12,
		ToMeasure:   5,
	})
	var vErr *primary.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("expected ValidationError for inverted range, got %v", err)
	}
}

func TestSessionService_ListSessions_NewestFirst(t *testing.T) {
	sessions := &mockSessionRepository{}
	svc := NewSessionService(newMockSongRepository(), sessions)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := svc.LogSession(ctx, primary.LogSessionRequest{SongID: 1, SessionType: name}); err != nil {
			t.Fatalf("LogSession failed: %v", err)
		}
	}

	listed, err := svc.ListSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(listed))
	}
	if listed[0].SessionType != "third" {
		t.Errorf("expected newest session first, got '%s'", listed[0].SessionType)
	}
}

func TestSessionService_ListSessionsForMeasures(t *testing.T) {
	sessions := &mockSessionRepository{}
	svc := NewSessionService(newMockSongRepository(), sessions)
	ctx := context.Background()

	ranges := []struct{ from, to int64 }{{1, 8}, {15, 20}}
	for _, r := range ranges {
		if _, err := svc.LogSession(ctx, primary.LogSessionRequest{SongID: 1, FromMeasure: r.from, ToMeasure: r.to}); err != nil {
			t.Fatalf("LogSession failed: %v", err)
		}
	}
	// Whole-song run always matches.
	if _, err := svc.LogSession(ctx, primary.LogSessionRequest{SongID: 1, SessionType: "run-through"}); err != nil {
		t.Fatalf("LogSession failed: %v", err)
	}

	overlapping, err := svc.ListSessionsForMeasures(ctx, 1, 5, 10)
	if err != nil {
		t.Fatalf("ListSessionsForMeasures failed: %v", err)
	}
	if len(overlapping) != 2 {
		t.Fatalf("expected 2 overlapping sessions, got %d", len(overlapping))
	}
}
