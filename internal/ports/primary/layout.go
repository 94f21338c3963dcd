package primary

import "context"

// LayoutService defines the primary port for page-layout reads.
type LayoutService interface {
	// GetLayout retrieves the grouped page layout for a song, with each
	// page's starting absolute measure number computed by running total.
	GetLayout(ctx context.Context, songID int64) (*SongLayout, error)
}

// SongLayout is the grouped layout the grid renders from.
type SongLayout struct {
	SongID            int64
	FirstPagePosition string
	Pages             []LayoutPage
}

// LayoutPage is one page: line lengths in print order plus the absolute
// number of its first measure.
type LayoutPage struct {
	PageNumber      int
	Lines           []int
	StartingMeasure int
}
