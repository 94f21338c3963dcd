package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/barline/internal/ports/secondary"
)

// LayoutRepository implements secondary.LayoutRepository with SQLite.
type LayoutRepository struct {
	db *sql.DB
}

// NewLayoutRepository creates a new SQLite layout repository.
func NewLayoutRepository(db *sql.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// ListPageLines retrieves a song's layout rows in print order.
func (r *LayoutRepository) ListPageLines(ctx context.Context, songID int64) ([]*secondary.PageLineRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT song_id, page_number, line_number_on_page, num_measures, last_measure_overflows, start_time_secs
		 FROM song_page_lines
		 WHERE song_id = ?
		 ORDER BY page_number, line_number_on_page`,
		songID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list page lines: %w", err)
	}
	defer rows.Close()

	var lines []*secondary.PageLineRecord
	for rows.Next() {
		var (
			overflows sql.NullInt64
			startSecs sql.NullFloat64
		)
		record := &secondary.PageLineRecord{}
		err := rows.Scan(&record.SongID, &record.PageNumber, &record.LineNumberOnPage, &record.NumMeasures, &overflows, &startSecs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page line: %w", err)
		}
		record.LastMeasureOverflows = overflows.Int64 != 0
		record.StartTimeSecs = startSecs.Float64
		lines = append(lines, record)
	}

	return lines, rows.Err()
}

// Ensure LayoutRepository implements the interface
var _ secondary.LayoutRepository = (*LayoutRepository)(nil)
