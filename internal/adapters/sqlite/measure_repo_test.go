package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/example/barline/internal/adapters/sqlite"
	"github.com/example/barline/internal/ports/secondary"
)

// setupMeasureTestDB creates the test database with a book and song seeded.
func setupMeasureTestDB(t *testing.T) (*sql.DB, int64, int64) {
	t.Helper()
	testDB := setupTestDB(t)
	bookID := seedBook(t, testDB, "Nocturnes")
	songID := seedSong(t, testDB, bookID, "Nocturne Op. 9 No. 2")
	return testDB, bookID, songID
}

func slotRecord(songID, bookID int64, confidence float64) *secondary.MeasureRecord {
	return &secondary.MeasureRecord{
		SongID:     songID,
		BookID:     bookID,
		Page:       8,
		Line:       2,
		Measure:    1,
		Confidence: confidence,
		Practicer:  "User",
		Hands:      "both",
	}
}

func TestMeasureRepository_Upsert_Insert(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	rec := slotRecord(songID, bookID, 7.5)
	rec.BPM = 96
	rec.Hands = "right"

	saved, err := repo.Upsert(ctx, rec)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if saved.ID == 0 {
		t.Error("expected a new record ID to be assigned")
	}
	if saved.Confidence != 7.5 {
		t.Errorf("expected confidence 7.5, got %v", saved.Confidence)
	}
	if saved.BPM != 96 {
		t.Errorf("expected bpm 96, got %d", saved.BPM)
	}
	if saved.Hands != "right" {
		t.Errorf("expected hands 'right', got '%s'", saved.Hands)
	}
	if saved.Time.IsZero() {
		t.Error("expected a write time to be set")
	}

	// A first write must not produce a history row.
	history, err := repo.ListHistory(ctx, songID, 8, 2, 1, secondary.HistoryFilters{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history after first write, got %d rows", len(history))
	}
}

func TestMeasureRepository_Upsert_OverwriteArchivesAndKeepsID(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	first := slotRecord(songID, bookID, 7.5)
	first.Notes = "shaky left hand"
	first.BPM = 96

	original, err := repo.Upsert(ctx, first)
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}

	second := slotRecord(songID, bookID, 9.0)
	second.BPM = 104

	updated, err := repo.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if updated.ID != original.ID {
		t.Errorf("expected slot to keep ID %d, got %d", original.ID, updated.ID)
	}
	if updated.Confidence != 9.0 {
		t.Errorf("expected confidence 9.0, got %v", updated.Confidence)
	}
	if updated.Notes != "" {
		t.Errorf("expected notes overwritten to empty, got '%s'", updated.Notes)
	}

	history, err := repo.ListHistory(ctx, songID, 8, 2, 1, secondary.HistoryFilters{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(history))
	}
	if history[0].Confidence != 7.5 {
		t.Errorf("expected archived confidence 7.5, got %v", history[0].Confidence)
	}
	if history[0].Notes != "shaky left hand" {
		t.Errorf("expected archived notes preserved, got '%s'", history[0].Notes)
	}
	if history[0].BPM != 96 {
		t.Errorf("expected archived bpm 96, got %d", history[0].BPM)
	}
	if history[0].MeasureID != original.ID {
		t.Errorf("expected history to reference measure %d, got %d", original.ID, history[0].MeasureID)
	}
	if history[0].ArchivedAt.IsZero() {
		t.Error("expected archived_at to be set")
	}
}

func TestMeasureRepository_Upsert_DistinctSlotsPerPracticerAndHands(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	base := slotRecord(songID, bookID, 5)
	if _, err := repo.Upsert(ctx, base); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	kid := slotRecord(songID, bookID, 3)
	kid.Practicer = "Kid"
	if _, err := repo.Upsert(ctx, kid); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	left := slotRecord(songID, bookID, 8)
	left.Hands = "left"
	if _, err := repo.Upsert(ctx, left); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Three records share the same cell but occupy distinct slots.
	records, err := repo.ListCurrent(ctx, songID, secondary.MeasureFilters{Page: 8, Line: 2, Measure: 1})
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records in the cell, got %d", len(records))
	}

	// None of the writes was an overwrite, so history stays empty.
	history, err := repo.ListHistory(ctx, songID, 8, 2, 1, secondary.HistoryFilters{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d rows", len(history))
	}
}

func TestMeasureRepository_Upsert_NullBPM(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	saved, err := repo.Upsert(ctx, slotRecord(songID, bookID, 6))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if saved.BPM != 0 {
		t.Errorf("expected zero bpm for null, got %d", saved.BPM)
	}

	var bpm sql.NullInt64
	err = testDB.QueryRow("SELECT bpm FROM song_measure WHERE song_measure_id = ?", saved.ID).Scan(&bpm)
	if err != nil {
		t.Fatalf("failed to read bpm column: %v", err)
	}
	if bpm.Valid {
		t.Errorf("expected bpm stored as NULL, got %d", bpm.Int64)
	}
}

func TestMeasureRepository_ListCurrent_Ordering(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	// Insert out of document order.
	slots := []struct{ page, line, measure int }{
		{9, 1, 2},
		{8, 3, 1},
		{8, 1, 4},
		{8, 1, 2},
	}
	for _, s := range slots {
		rec := slotRecord(songID, bookID, 5)
		rec.Page = s.page
		rec.Line = s.line
		rec.Measure = s.measure
		if _, err := repo.Upsert(ctx, rec); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	records, err := repo.ListCurrent(ctx, songID, secondary.MeasureFilters{})
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	want := []struct{ page, line, measure int }{
		{8, 1, 2},
		{8, 1, 4},
		{8, 3, 1},
		{9, 1, 2},
	}
	for i, w := range want {
		got := records[i]
		if got.Page != w.page || got.Line != w.line || got.Measure != w.measure {
			t.Errorf("position %d: expected %d-%d-%d, got %d-%d-%d",
				i, w.page, w.line, w.measure, got.Page, got.Line, got.Measure)
		}
	}
}

func TestMeasureRepository_ListCurrent_Filters(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	user := slotRecord(songID, bookID, 5)
	if _, err := repo.Upsert(ctx, user); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	kid := slotRecord(songID, bookID, 3)
	kid.Practicer = "Kid"
	kid.Hands = "left"
	if _, err := repo.Upsert(ctx, kid); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	byPracticer, err := repo.ListCurrent(ctx, songID, secondary.MeasureFilters{Practicer: "Kid"})
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(byPracticer) != 1 || byPracticer[0].Practicer != "Kid" {
		t.Errorf("expected one Kid record, got %d", len(byPracticer))
	}

	byHands, err := repo.ListCurrent(ctx, songID, secondary.MeasureFilters{Hands: "both"})
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(byHands) != 1 || byHands[0].Hands != "both" {
		t.Errorf("expected one both-hands record, got %d", len(byHands))
	}
}

func TestMeasureRepository_ListHistory_NewestFirst(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	// Three overwrites archive confidences 2, then 4, then 6. All land in
	// the same second; history_id ordering must still put the newest first.
	for _, c := range []float64{2, 4, 6, 8} {
		if _, err := repo.Upsert(ctx, slotRecord(songID, bookID, c)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	history, err := repo.ListHistory(ctx, songID, 8, 2, 1, secondary.HistoryFilters{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(history))
	}

	want := []float64{6, 4, 2}
	for i, c := range want {
		if history[i].Confidence != c {
			t.Errorf("history[%d]: expected confidence %v, got %v", i, c, history[i].Confidence)
		}
	}
}

func TestMeasureRepository_ListHistory_PracticerFilter(t *testing.T) {
	testDB, bookID, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)
	ctx := context.Background()

	for _, practicer := range []string{"User", "Kid"} {
		for _, c := range []float64{3, 7} {
			rec := slotRecord(songID, bookID, c)
			rec.Practicer = practicer
			if _, err := repo.Upsert(ctx, rec); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
		}
	}

	history, err := repo.ListHistory(ctx, songID, 8, 2, 1, secondary.HistoryFilters{Practicer: "Kid"})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history row for Kid, got %d", len(history))
	}
	if history[0].Practicer != "Kid" {
		t.Errorf("expected practicer 'Kid', got '%s'", history[0].Practicer)
	}
	if history[0].Confidence != 3 {
		t.Errorf("expected archived confidence 3, got %v", history[0].Confidence)
	}
}

func TestMeasureRepository_ListCurrent_Empty(t *testing.T) {
	testDB, _, songID := setupMeasureTestDB(t)
	repo := sqlite.NewMeasureRepository(testDB)

	records, err := repo.ListCurrent(context.Background(), songID, secondary.MeasureFilters{})
	if err != nil {
		t.Fatalf("ListCurrent failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
