// Package measure contains the pure business logic for confidence-record
// writes. Guards are pure functions that evaluate preconditions without side
// effects.
package measure

import (
	"fmt"
	"math"
	"strings"
)

// Hands values accepted on a confidence record.
const (
	HandsLeft  = "left"
	HandsRight = "right"
	HandsBoth  = "both"
)

// DefaultPracticer is used when a caller leaves the practicer blank upstream.
const DefaultPracticer = "User"

// Confidence domain bounds, inclusive.
const (
	MinConfidence = 0.0
	MaxConfidence = 10.0
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RecordContext provides context for confidence-record write guards.
type RecordContext struct {
	Confidence float64
	Practicer  string
	Hands      string
	BPM        int64 // 0 means not provided
}

// CanRecord evaluates whether a confidence record may be written.
// Rules:
// - Confidence must be a number in [0, 10] (NaN is rejected, not coerced)
// - Practicer must be non-empty after trimming
// - Hands must be one of left, right, both
// - BPM, when provided, must be positive
func CanRecord(ctx RecordContext) GuardResult {
	if math.IsNaN(ctx.Confidence) || math.IsInf(ctx.Confidence, 0) ||
		ctx.Confidence < MinConfidence || ctx.Confidence > MaxConfidence {
		return GuardResult{
			Allowed: false,
			Reason:  "confidence must be between 0 and 10",
		}
	}

	if strings.TrimSpace(ctx.Practicer) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "practicer is required",
		}
	}

	if !ValidHands(ctx.Hands) {
		return GuardResult{
			Allowed: false,
			Reason:  "hands must be one of left, right, both",
		}
	}

	if ctx.BPM < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "bpm must be a positive number",
		}
	}

	return GuardResult{Allowed: true}
}

// ValidHands reports whether h is an accepted hands value.
func ValidHands(h string) bool {
	switch h {
	case HandsLeft, HandsRight, HandsBoth:
		return true
	}
	return false
}
