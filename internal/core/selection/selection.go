// Package selection contains the pure state machine behind multi-measure
// editing: a session moves Browsing → Selecting → BulkEditing and back, with
// range selection resolved through the layout's absolute-number index. The
// machine holds no I/O; applying the edit itself is the bulk service's job.
package selection

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/barline/internal/core/layout"
)

// Mode is the session's current state.
type Mode int

const (
	// Browsing: selection mode off, clicks open the single-measure editor.
	Browsing Mode = iota
	// Selecting: selection mode on, clicks toggle cells in and out.
	Selecting
	// BulkEditing: the bulk-edit payload is being composed for the selection.
	BulkEditing
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Selecting:
		return "selecting"
	case BulkEditing:
		return "bulk-editing"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Session tracks one selection/bulk-edit interaction. Sessions are ephemeral
// and never persisted; the ID only correlates a bulk save with its outcome
// report.
type Session struct {
	id       string
	mode     Mode
	index    *layout.Index
	selected map[string]struct{}
	anchor   string // last individually toggled-on key, range endpoint
}

// NewSession starts a session in Browsing over the given layout index.
func NewSession(ix *layout.Index) *Session {
	return &Session{
		id:       uuid.NewString(),
		mode:     Browsing,
		index:    ix,
		selected: make(map[string]struct{}),
	}
}

// ID returns the session's correlation ID.
func (s *Session) ID() string {
	return s.id
}

// Mode returns the current state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Count returns the number of selected cells.
func (s *Session) Count() int {
	return len(s.selected)
}

// IsSelected reports whether a cell key is in the selection.
func (s *Session) IsSelected(key string) bool {
	_, ok := s.selected[key]
	return ok
}

// Selected returns the selected keys in document order.
func (s *Session) Selected() []string {
	keys := make([]string, 0, len(s.selected))
	for k := range s.selected {
		keys = append(keys, k)
	}
	s.index.SortKeys(keys)
	return keys
}

// ToggleSelectMode flips between Browsing and Selecting. Leaving Selecting
// discards the selection. Not allowed while BulkEditing.
func (s *Session) ToggleSelectMode() error {
	switch s.mode {
	case Browsing:
		s.mode = Selecting
		return nil
	case Selecting:
		s.reset(Browsing)
		return nil
	default:
		return fmt.Errorf("cannot toggle selection mode while %s", s.mode)
	}
}

// Click feeds a cell click into the machine. modifier reports whether the
// range/select modifier key was held.
//
// Transitions:
//   - Browsing + plain click: no selection change (the caller opens the
//     single-measure editor instead).
//   - Browsing + modifier click: enter Selecting with that cell selected.
//   - Selecting + plain click: toggle the cell; a toggle-on makes it the
//     range anchor.
//   - Selecting + modifier click with an anchor: select every cell between
//     anchor and target inclusive, by absolute measure number. Cells already
//     selected outside the range stay selected.
//   - Selecting + modifier click without an anchor: same as a plain toggle.
func (s *Session) Click(key string, modifier bool) error {
	switch s.mode {
	case Browsing:
		if !modifier {
			return nil
		}
		s.mode = Selecting
		s.selected[key] = struct{}{}
		s.anchor = key
		return nil

	case Selecting:
		if modifier && s.anchor != "" {
			keys, err := s.index.RangeKeys(s.anchor, key)
			if err != nil {
				return fmt.Errorf("range select: %w", err)
			}
			for _, k := range keys {
				s.selected[k] = struct{}{}
			}
			s.anchor = key
			return nil
		}
		if _, ok := s.selected[key]; ok {
			delete(s.selected, key)
			if s.anchor == key {
				s.anchor = ""
			}
			return nil
		}
		s.selected[key] = struct{}{}
		s.anchor = key
		return nil

	default:
		return fmt.Errorf("cannot change selection while %s", s.mode)
	}
}

// BeginBulkEdit moves Selecting → BulkEditing. Requires a non-empty
// selection.
func (s *Session) BeginBulkEdit() error {
	if s.mode != Selecting {
		return fmt.Errorf("cannot start bulk edit while %s", s.mode)
	}
	if len(s.selected) == 0 {
		return fmt.Errorf("no measures selected")
	}
	s.mode = BulkEditing
	return nil
}

// CompleteBulkEdit records a finished bulk save: the selection is cleared and
// the session returns to Browsing. Call it after the save attempt regardless
// of per-key failures; re-selecting failed keys is the caller's choice.
func (s *Session) CompleteBulkEdit() error {
	if s.mode != BulkEditing {
		return fmt.Errorf("no bulk edit in progress (currently %s)", s.mode)
	}
	s.reset(Browsing)
	return nil
}

// Cancel abandons the current selection or bulk edit and returns to Browsing.
// Canceling from Browsing is a no-op.
func (s *Session) Cancel() {
	s.reset(Browsing)
}

func (s *Session) reset(mode Mode) {
	s.mode = mode
	s.selected = make(map[string]struct{})
	s.anchor = ""
}
