package app

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/example/barline/internal/ports/secondary"
)

func testLayoutLines() []*secondary.PageLineRecord {
	// Page 8 has lines of 5, 3, 3, 3 measures; page 9 has five lines of 3.
	specs := []struct {
		page, line, measures int
	}{
		{8, 1, 5}, {8, 2, 3}, {8, 3, 3}, {8, 4, 3},
		{9, 1, 3}, {9, 2, 3}, {9, 3, 3}, {9, 4, 3}, {9, 5, 3},
	}
	lines := make([]*secondary.PageLineRecord, len(specs))
	for i, s := range specs {
		lines[i] = &secondary.PageLineRecord{
			SongID:           1,
			PageNumber:       s.page,
			LineNumberOnPage: s.line,
			NumMeasures:      s.measures,
		}
	}
	return lines
}

func TestLayoutService_GetLayout(t *testing.T) {
	songs := newMockSongRepository()
	layouts := &mockLayoutRepository{lines: testLayoutLines()}
	svc := NewLayoutService(songs, layouts)

	got, err := svc.GetLayout(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}

	if got.FirstPagePosition != "left" {
		t.Errorf("expected first page position 'left', got '%s'", got.FirstPagePosition)
	}
	if len(got.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(got.Pages))
	}

	page8 := got.Pages[0]
	if page8.PageNumber != 8 {
		t.Errorf("expected page 8 first, got %d", page8.PageNumber)
	}
	if !reflect.DeepEqual(page8.Lines, []int{5, 3, 3, 3}) {
		t.Errorf("expected page 8 lines [5 3 3 3], got %v", page8.Lines)
	}
	if page8.StartingMeasure != 1 {
		t.Errorf("expected page 8 to start at measure 1, got %d", page8.StartingMeasure)
	}

	page9 := got.Pages[1]
	if page9.StartingMeasure != 15 {
		t.Errorf("expected page 9 to start at measure 15, got %d", page9.StartingMeasure)
	}
}

func TestLayoutService_GetLayout_SongNotFound(t *testing.T) {
	svc := NewLayoutService(newMockSongRepository(), &mockLayoutRepository{})

	_, err := svc.GetLayout(context.Background(), 42)
	if !errors.Is(err, secondary.ErrSongNotFound) {
		t.Errorf("expected ErrSongNotFound, got %v", err)
	}
}

func TestLayoutService_GetLayout_NoLines(t *testing.T) {
	svc := NewLayoutService(newMockSongRepository(), &mockLayoutRepository{})

	got, err := svc.GetLayout(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetLayout failed: %v", err)
	}
	if len(got.Pages) != 0 {
		t.Errorf("expected no pages for a song without layout, got %d", len(got.Pages))
	}
}
