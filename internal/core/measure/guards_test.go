package measure

import (
	"math"
	"testing"
)

func TestCanRecord(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RecordContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name: "can record mid-range confidence",
			ctx: RecordContext{
				Confidence: 7.5,
				Practicer:  "Ryan",
				Hands:      HandsRight,
				BPM:        96,
			},
			wantAllowed: true,
		},
		{
			name: "can record boundary confidence zero",
			ctx: RecordContext{
				Confidence: 0,
				Practicer:  "User",
				Hands:      HandsBoth,
			},
			wantAllowed: true,
		},
		{
			name: "can record boundary confidence ten",
			ctx: RecordContext{
				Confidence: 10,
				Practicer:  "User",
				Hands:      HandsLeft,
			},
			wantAllowed: true,
		},
		{
			name: "cannot record confidence above range",
			ctx: RecordContext{
				Confidence: 10.1,
				Practicer:  "User",
				Hands:      HandsBoth,
			},
			wantAllowed: false,
			wantReason:  "confidence must be between 0 and 10",
		},
		{
			name: "cannot record negative confidence",
			ctx: RecordContext{
				Confidence: -0.5,
				Practicer:  "User",
				Hands:      HandsBoth,
			},
			wantAllowed: false,
			wantReason:  "confidence must be between 0 and 10",
		},
		{
			name: "cannot record NaN confidence",
			ctx: RecordContext{
				Confidence: math.NaN(),
				Practicer:  "User",
				Hands:      HandsBoth,
			},
			wantAllowed: false,
			wantReason:  "confidence must be between 0 and 10",
		},
		{
			name: "cannot record infinite confidence",
			ctx: RecordContext{
				Confidence: math.Inf(1),
				Practicer:  "User",
				Hands:      HandsBoth,
			},
			wantAllowed: false,
			wantReason:  "confidence must be between 0 and 10",
		},
		{
			name: "cannot record blank practicer",
			ctx: RecordContext{
				Confidence: 5,
				Practicer:  "   ",
				Hands:      HandsBoth,
			},
			wantAllowed: false,
			wantReason:  "practicer is required",
		},
		{
			name: "cannot record invalid hands value",
			ctx: RecordContext{
				Confidence: 5,
				Practicer:  "User",
				Hands:      "either",
			},
			wantAllowed: false,
			wantReason:  "hands must be one of left, right, both",
		},
		{
			name: "cannot record empty hands value",
			ctx: RecordContext{
				Confidence: 5,
				Practicer:  "User",
				Hands:      "",
			},
			wantAllowed: false,
			wantReason:  "hands must be one of left, right, both",
		},
		{
			name: "cannot record negative bpm",
			ctx: RecordContext{
				Confidence: 5,
				Practicer:  "User",
				Hands:      HandsBoth,
				BPM:        -10,
			},
			wantAllowed: false,
			wantReason:  "bpm must be a positive number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRecord(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidHands(t *testing.T) {
	valid := []string{HandsLeft, HandsRight, HandsBoth}
	for _, h := range valid {
		if !ValidHands(h) {
			t.Errorf("ValidHands(%q) = false, want true", h)
		}
	}
	invalid := []string{"", "Left", "BOTH", "single"}
	for _, h := range invalid {
		if ValidHands(h) {
			t.Errorf("ValidHands(%q) = true, want false", h)
		}
	}
}

func TestGuardResultError(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("allowed result should have nil error, got %v", err)
	}
	err := (GuardResult{Allowed: false, Reason: "practicer is required"}).Error()
	if err == nil || err.Error() != "practicer is required" {
		t.Errorf("expected reason error, got %v", err)
	}
}
