package primary

import "context"

// BulkService defines the primary port for applying one edit to many cells.
type BulkService interface {
	// Apply writes the payload once per key, sequentially. Keys that fail
	// are reported individually; keys already written stay written (no
	// rollback across keys).
	Apply(ctx context.Context, req BulkApplyRequest) *BulkResult
}

// BulkApplyRequest is one payload fanned out over a set of cell keys.
type BulkApplyRequest struct {
	SongID  int64
	Keys    []string // canonical "page-line-measure" keys
	Payload BulkPayload
}

// BulkPayload is the single edit applied to every selected cell.
type BulkPayload struct {
	Confidence float64
	Notes      string
	Practicer  string
	BPM        int64
	Hands      string
}

// BulkResult reports per-key outcomes of a bulk apply.
type BulkResult struct {
	Saved    []*Measure
	Failures []BulkFailure
}

// BulkFailure attributes one failed key.
type BulkFailure struct {
	Key     string
	Message string
}

// AllSucceeded reports whether every key was written.
func (r *BulkResult) AllSucceeded() bool {
	return len(r.Failures) == 0
}
