package app

import (
	"context"

	"github.com/example/barline/internal/core/layout"
	"github.com/example/barline/internal/ports/primary"
)

// BulkServiceImpl implements the BulkService interface by fanning one payload
// out over the MeasureService, one slot write per key.
type BulkServiceImpl struct {
	measures primary.MeasureService
}

// NewBulkService creates a new BulkService with injected dependencies.
func NewBulkService(measures primary.MeasureService) *BulkServiceImpl {
	return &BulkServiceImpl{measures: measures}
}

// Apply writes the payload once per key, sequentially and independently.
// A failed key is reported and skipped; keys already written stay written.
// There is no cross-key rollback.
func (s *BulkServiceImpl) Apply(ctx context.Context, req primary.BulkApplyRequest) *primary.BulkResult {
	result := &primary.BulkResult{}

	for _, key := range req.Keys {
		page, line, measureNum, err := layout.ParseKey(key)
		if err != nil {
			result.Failures = append(result.Failures, primary.BulkFailure{Key: key, Message: err.Error()})
			continue
		}

		saved, err := s.measures.RecordPractice(ctx, primary.RecordPracticeRequest{
			SongID:     req.SongID,
			Page:       page,
			Line:       line,
			Measure:    measureNum,
			Confidence: req.Payload.Confidence,
			Notes:      req.Payload.Notes,
			Practicer:  req.Payload.Practicer,
			BPM:        req.Payload.BPM,
			Hands:      req.Payload.Hands,
		})
		if err != nil {
			result.Failures = append(result.Failures, primary.BulkFailure{Key: key, Message: err.Error()})
			continue
		}
		result.Saved = append(result.Saved, saved)
	}

	return result
}

// Ensure BulkServiceImpl implements the interface
var _ primary.BulkService = (*BulkServiceImpl)(nil)
