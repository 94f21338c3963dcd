package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/barline/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.SongRepository    = (*mockSongRepository)(nil)
	_ secondary.LayoutRepository  = (*mockLayoutRepository)(nil)
	_ secondary.MeasureRepository = (*mockMeasureRepository)(nil)
	_ secondary.SessionRepository = (*mockSessionRepository)(nil)
)

// mockSongRepository implements secondary.SongRepository for testing.
type mockSongRepository struct {
	songs map[int64]*secondary.SongRecord
	books map[int64]*secondary.BookRecord
}

func newMockSongRepository() *mockSongRepository {
	m := &mockSongRepository{
		songs: make(map[int64]*secondary.SongRecord),
		books: make(map[int64]*secondary.BookRecord),
	}
	m.books[1] = &secondary.BookRecord{BookID: 1, Title: "Test Book"}
	m.songs[1] = &secondary.SongRecord{SongID: 1, BookID: 1, Title: "Test Song", FirstPagePosition: "left"}
	return m
}

func (m *mockSongRepository) GetSong(ctx context.Context, songID int64) (*secondary.SongRecord, error) {
	if song, ok := m.songs[songID]; ok {
		return song, nil
	}
	return nil, fmt.Errorf("song %d: %w", songID, secondary.ErrSongNotFound)
}

func (m *mockSongRepository) ListSongs(ctx context.Context) ([]*secondary.SongRecord, error) {
	var out []*secondary.SongRecord
	for _, s := range m.songs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockSongRepository) ListBooks(ctx context.Context) ([]*secondary.BookRecord, error) {
	var out []*secondary.BookRecord
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockSongRepository) CreateBook(ctx context.Context, book *secondary.BookRecord) (int64, error) {
	id := int64(len(m.books) + 1)
	book.BookID = id
	m.books[id] = book
	return id, nil
}

func (m *mockSongRepository) CreateSong(ctx context.Context, song *secondary.SongRecord) (int64, error) {
	if _, ok := m.books[song.BookID]; !ok {
		return 0, fmt.Errorf("book %d: %w", song.BookID, secondary.ErrBookNotFound)
	}
	id := int64(len(m.songs) + 1)
	song.SongID = id
	m.songs[id] = song
	return id, nil
}

// mockLayoutRepository implements secondary.LayoutRepository for testing.
type mockLayoutRepository struct {
	lines []*secondary.PageLineRecord
}

func (m *mockLayoutRepository) ListPageLines(ctx context.Context, songID int64) ([]*secondary.PageLineRecord, error) {
	var out []*secondary.PageLineRecord
	for _, l := range m.lines {
		if l.SongID == songID {
			out = append(out, l)
		}
	}
	return out, nil
}

// mockMeasureRepository implements secondary.MeasureRepository for testing.
// It reproduces the slot semantics of the SQLite adapter: one current record
// per (song, page, line, measure, practicer, hands), archive on overwrite.
type mockMeasureRepository struct {
	current   map[string]*secondary.MeasureRecord
	history   []*secondary.HistoryRecord
	nextID    int64
	upsertErr error
}

func newMockMeasureRepository() *mockMeasureRepository {
	return &mockMeasureRepository{current: make(map[string]*secondary.MeasureRecord)}
}

func slotKey(r *secondary.MeasureRecord) string {
	return fmt.Sprintf("%d|%d|%d|%d|%s|%s", r.SongID, r.Page, r.Line, r.Measure, r.Practicer, r.Hands)
}

func (m *mockMeasureRepository) Upsert(ctx context.Context, rec *secondary.MeasureRecord) (*secondary.MeasureRecord, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}

	key := slotKey(rec)
	stored := *rec
	if existing, ok := m.current[key]; ok {
		m.history = append(m.history, &secondary.HistoryRecord{
			HistoryID:  int64(len(m.history) + 1),
			MeasureID:  existing.ID,
			SongID:     existing.SongID,
			BookID:     existing.BookID,
			Page:       existing.Page,
			Line:       existing.Line,
			Measure:    existing.Measure,
			Confidence: existing.Confidence,
			Notes:      existing.Notes,
			Practicer:  existing.Practicer,
			BPM:        existing.BPM,
			Hands:      existing.Hands,
			Time:       existing.Time,
			ArchivedAt: time.Now(),
		})
		stored.ID = existing.ID
	} else {
		m.nextID++
		stored.ID = m.nextID
	}
	stored.Time = time.Now()
	m.current[key] = &stored

	out := stored
	return &out, nil
}

func (m *mockMeasureRepository) ListCurrent(ctx context.Context, songID int64, filters secondary.MeasureFilters) ([]*secondary.MeasureRecord, error) {
	var out []*secondary.MeasureRecord
	for _, r := range m.current {
		if r.SongID != songID {
			continue
		}
		if filters.Page != 0 && r.Page != filters.Page {
			continue
		}
		if filters.Line != 0 && r.Line != filters.Line {
			continue
		}
		if filters.Measure != 0 && r.Measure != filters.Measure {
			continue
		}
		if filters.Practicer != "" && r.Practicer != filters.Practicer {
			continue
		}
		if filters.Hands != "" && r.Hands != filters.Hands {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Measure < b.Measure
	})
	return out, nil
}

func (m *mockMeasureRepository) ListHistory(ctx context.Context, songID int64, page, line, measure int, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	var out []*secondary.HistoryRecord
	for i := len(m.history) - 1; i >= 0; i-- {
		r := m.history[i]
		if r.SongID != songID || r.Page != page || r.Line != line || r.Measure != measure {
			continue
		}
		if filters.Practicer != "" && r.Practicer != filters.Practicer {
			continue
		}
		if filters.Hands != "" && r.Hands != filters.Hands {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// mockSessionRepository implements secondary.SessionRepository for testing.
type mockSessionRepository struct {
	sessions []*secondary.SessionRecord
}

func (m *mockSessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) (int64, error) {
	stored := *session
	stored.ID = int64(len(m.sessions) + 1)
	stored.PracticeTime = time.Now()
	m.sessions = append(m.sessions, &stored)
	return stored.ID, nil
}

func (m *mockSessionRepository) ListBySong(ctx context.Context, songID int64) ([]*secondary.SessionRecord, error) {
	var out []*secondary.SessionRecord
	for i := len(m.sessions) - 1; i >= 0; i-- {
		if m.sessions[i].SongID == songID {
			out = append(out, m.sessions[i])
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListOverlapping(ctx context.Context, songID int64, from, to int) ([]*secondary.SessionRecord, error) {
	var out []*secondary.SessionRecord
	for i := len(m.sessions) - 1; i >= 0; i-- {
		s := m.sessions[i]
		if s.SongID != songID {
			continue
		}
		wholeSong := s.FromMeasure == 0 && s.ToMeasure == 0
		overlaps := s.FromMeasure <= int64(to) && s.ToMeasure >= int64(from)
		if wholeSong || overlaps {
			out = append(out, s)
		}
	}
	return out, nil
}
