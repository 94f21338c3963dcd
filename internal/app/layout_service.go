package app

import (
	"context"
	"fmt"

	"github.com/example/barline/internal/core/layout"
	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

// LayoutServiceImpl implements the LayoutService interface.
type LayoutServiceImpl struct {
	songRepo   secondary.SongRepository
	layoutRepo secondary.LayoutRepository
}

// NewLayoutService creates a new LayoutService with injected dependencies.
func NewLayoutService(songRepo secondary.SongRepository, layoutRepo secondary.LayoutRepository) *LayoutServiceImpl {
	return &LayoutServiceImpl{
		songRepo:   songRepo,
		layoutRepo: layoutRepo,
	}
}

// GetLayout retrieves the grouped page layout for a song. Line rows arrive in
// print order and are grouped per page; each page's starting absolute measure
// is the running total of all measures before it.
func (s *LayoutServiceImpl) GetLayout(ctx context.Context, songID int64) (*primary.SongLayout, error) {
	song, err := s.songRepo.GetSong(ctx, songID)
	if err != nil {
		return nil, err
	}

	lines, err := s.layoutRepo.ListPageLines(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	pages := groupPages(lines)
	starts := layout.StartingMeasures(pages)

	out := &primary.SongLayout{
		SongID:            song.SongID,
		FirstPagePosition: song.FirstPagePosition,
		Pages:             make([]primary.LayoutPage, len(pages)),
	}
	for i, p := range pages {
		out.Pages[i] = primary.LayoutPage{
			PageNumber:      p.Number,
			Lines:           p.Lines,
			StartingMeasure: starts[p.Number],
		}
	}
	return out, nil
}

// groupPages folds ordered layout rows into per-page line lists.
func groupPages(lines []*secondary.PageLineRecord) []layout.Page {
	var pages []layout.Page
	for _, line := range lines {
		if len(pages) == 0 || pages[len(pages)-1].Number != line.PageNumber {
			pages = append(pages, layout.Page{Number: line.PageNumber})
		}
		last := &pages[len(pages)-1]
		last.Lines = append(last.Lines, line.NumMeasures)
	}
	return pages
}

// Ensure LayoutServiceImpl implements the interface
var _ primary.LayoutService = (*LayoutServiceImpl)(nil)
