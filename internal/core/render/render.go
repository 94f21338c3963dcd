// Package render derives the visual state of a grid cell from the set of
// current confidence records that share it. It is pure: the same records and
// selection state always produce the same output.
package render

import "math"

// Record is the slice of a confidence record that rendering cares about.
type Record struct {
	Practicer  string
	Hands      string
	Confidence float64
}

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Categorical colors for cells holding records from more than one practicer
// and/or hands value.
var (
	// MultiPracticerColor marks cells where only the practicer varies.
	MultiPracticerColor = RGB{128, 0, 128} // purple

	// MultiHandsColor marks cells where only the hands value varies.
	MultiHandsColor = RGB{100, 149, 237} // cornflower blue

	// MultiBothColor is the midpoint of the two, for cells where both vary.
	MultiBothColor = midpoint(MultiPracticerColor, MultiHandsColor)
)

// Selection border colors. Cells with records already carry a strong fill, so
// the border is near-black there; empty cells get a blue border that stays
// visible against the neutral background.
var (
	SelectedBorderOnRecords = RGB{33, 33, 33}
	SelectedBorderOnEmpty   = RGB{0, 123, 255}
)

// Badge is the glyph shown inside a cell in place of (or next to) its number.
type Badge string

const (
	BadgeNone               Badge = ""
	BadgeStar               Badge = "★"
	BadgePracticers         Badge = "👥"
	BadgeHands              Badge = "🤲"
	BadgePracticersAndHands Badge = "👥🤲"
)

// CellState is the derived visual state of one grid cell.
type CellState struct {
	Styled      bool // false: neutral cell, Color is meaningless
	Color       RGB
	Badge       Badge
	RecordCount int
	Selected    bool
	Border      RGB // valid only when Selected
}

// ConfidenceColor maps a confidence in [0,10] onto the red→yellow→green ramp:
// 0 is (255,0,0), 5 is (255,255,0), 10 is (0,187,0), linear within each
// segment.
func ConfidenceColor(c float64) RGB {
	if c <= 5 {
		t := c / 5
		return RGB{255, round(255 * t), 0}
	}
	t := (c - 5) / 5
	return RGB{
		round(255 * (1 - t)),
		round(255 - (255-187)*t),
		0,
	}
}

// DeriveCell computes the visual state for a cell from its current records
// and whether it is part of an active selection. Records that agree on both
// practicer and hands are duplicates for display purposes and collapse to the
// single-record case using the first.
func DeriveCell(records []Record, selected bool) CellState {
	state := CellState{
		RecordCount: len(records),
		Selected:    selected,
	}
	if selected {
		if len(records) > 0 {
			state.Border = SelectedBorderOnRecords
		} else {
			state.Border = SelectedBorderOnEmpty
		}
	}

	if len(records) == 0 {
		return state
	}

	practicersVary, handsVary := variance(records)

	if !practicersVary && !handsVary {
		first := records[0]
		state.Styled = true
		state.Color = ConfidenceColor(first.Confidence)
		if first.Confidence == 10 {
			state.Badge = BadgeStar
		}
		return state
	}

	state.Styled = true
	switch {
	case practicersVary && handsVary:
		state.Color = MultiBothColor
		state.Badge = BadgePracticersAndHands
	case practicersVary:
		state.Color = MultiPracticerColor
		state.Badge = BadgePracticers
	default:
		state.Color = MultiHandsColor
		state.Badge = BadgeHands
	}
	return state
}

// variance reports which slot dimensions differ across the records.
func variance(records []Record) (practicersVary, handsVary bool) {
	firstPracticer := records[0].Practicer
	firstHands := records[0].Hands
	for _, r := range records[1:] {
		if r.Practicer != firstPracticer {
			practicersVary = true
		}
		if r.Hands != firstHands {
			handsVary = true
		}
	}
	return practicersVary, handsVary
}

func midpoint(a, b RGB) RGB {
	return RGB{
		uint8((int(a.R) + int(b.R)) / 2),
		uint8((int(a.G) + int(b.G)) / 2),
		uint8((int(a.B) + int(b.B)) / 2),
	}
}

func round(f float64) uint8 {
	return uint8(math.Round(f))
}
