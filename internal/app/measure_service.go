package app

import (
	"context"
	"fmt"

	"github.com/example/barline/internal/core/measure"
	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

// MeasureServiceImpl implements the MeasureService interface.
type MeasureServiceImpl struct {
	songRepo         secondary.SongRepository
	measureRepo      secondary.MeasureRepository
	defaultPracticer string
}

// NewMeasureService creates a new MeasureService with injected dependencies.
// defaultPracticer is recorded on writes that name no practicer; blank falls
// back to the domain default.
func NewMeasureService(songRepo secondary.SongRepository, measureRepo secondary.MeasureRepository, defaultPracticer string) *MeasureServiceImpl {
	if defaultPracticer == "" {
		defaultPracticer = measure.DefaultPracticer
	}
	return &MeasureServiceImpl{
		songRepo:         songRepo,
		measureRepo:      measureRepo,
		defaultPracticer: defaultPracticer,
	}
}

// RecordPractice validates and writes a confidence record for one slot.
// Blank practicer and hands take their defaults before validation, so a
// request that names neither still passes the guards.
func (s *MeasureServiceImpl) RecordPractice(ctx context.Context, req primary.RecordPracticeRequest) (*primary.Measure, error) {
	if req.Practicer == "" {
		req.Practicer = s.defaultPracticer
	}
	if req.Hands == "" {
		req.Hands = measure.HandsBoth
	}

	guard := measure.CanRecord(measure.RecordContext{
		Confidence: req.Confidence,
		Practicer:  req.Practicer,
		Hands:      req.Hands,
		BPM:        req.BPM,
	})
	if !guard.Allowed {
		return nil, primary.NewValidationError(guard.Reason)
	}

	// Resolve the song before writing so a bad song ID surfaces as not-found
	// and supplies the denormalized book ID.
	song, err := s.songRepo.GetSong(ctx, req.SongID)
	if err != nil {
		return nil, err
	}

	saved, err := s.measureRepo.Upsert(ctx, &secondary.MeasureRecord{
		SongID:     req.SongID,
		BookID:     song.BookID,
		Page:       req.Page,
		Line:       req.Line,
		Measure:    req.Measure,
		Confidence: req.Confidence,
		Notes:      req.Notes,
		Practicer:  req.Practicer,
		BPM:        req.BPM,
		Hands:      req.Hands,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record practice: %w", err)
	}

	return recordToMeasure(saved), nil
}

// GetCurrent lists current records for a song, ordered by (page, line, measure).
// An unknown song is not-found; an empty filtered result is an empty list.
func (s *MeasureServiceImpl) GetCurrent(ctx context.Context, q primary.CurrentQuery) ([]*primary.Measure, error) {
	if _, err := s.songRepo.GetSong(ctx, q.SongID); err != nil {
		return nil, err
	}

	records, err := s.measureRepo.ListCurrent(ctx, q.SongID, secondary.MeasureFilters{
		Page:      q.Page,
		Line:      q.Line,
		Measure:   q.Measure,
		Practicer: q.Practicer,
		Hands:     q.Hands,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list measures: %w", err)
	}

	measures := make([]*primary.Measure, len(records))
	for i, r := range records {
		measures[i] = recordToMeasure(r)
	}
	return measures, nil
}

// GetHistory lists superseded records for a cell, newest first. An unknown
// song is not-found; a cell with no archives is an empty list.
func (s *MeasureServiceImpl) GetHistory(ctx context.Context, q primary.HistoryQuery) ([]*primary.HistoryEntry, error) {
	if _, err := s.songRepo.GetSong(ctx, q.SongID); err != nil {
		return nil, err
	}

	records, err := s.measureRepo.ListHistory(ctx, q.SongID, q.Page, q.Line, q.Measure, secondary.HistoryFilters{
		Practicer: q.Practicer,
		Hands:     q.Hands,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*primary.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.HistoryEntry{
			MeasureID:  r.MeasureID,
			SongID:     r.SongID,
			Page:       r.Page,
			Line:       r.Line,
			Measure:    r.Measure,
			Confidence: r.Confidence,
			Notes:      r.Notes,
			Practicer:  r.Practicer,
			BPM:        r.BPM,
			Hands:      r.Hands,
			Time:       r.Time,
			ArchivedAt: r.ArchivedAt,
		}
	}
	return entries, nil
}

func recordToMeasure(r *secondary.MeasureRecord) *primary.Measure {
	return &primary.Measure{
		ID:         r.ID,
		SongID:     r.SongID,
		BookID:     r.BookID,
		Page:       r.Page,
		Line:       r.Line,
		Measure:    r.Measure,
		Confidence: r.Confidence,
		Notes:      r.Notes,
		Practicer:  r.Practicer,
		BPM:        r.BPM,
		Hands:      r.Hands,
		Time:       r.Time,
	}
}

// Ensure MeasureServiceImpl implements the interface
var _ primary.MeasureService = (*MeasureServiceImpl)(nil)
