package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/barline/internal/ports/secondary"
)

// MeasureRepository implements secondary.MeasureRepository with SQLite.
type MeasureRepository struct {
	db *sql.DB
}

// NewMeasureRepository creates a new SQLite measure repository.
func NewMeasureRepository(db *sql.DB) *MeasureRepository {
	return &MeasureRepository{db: db}
}

const measureColumns = "song_measure_id, song_id, book_id, page_number, line_number, measure_number, confidence, notes, practicer, bpm, hands, time"

// Upsert writes a confidence record for its slot. When the slot already holds
// a current record, the prior values are copied to song_measure_history and
// the row is updated in place, keeping its song_measure_id. Archive and update
// run in one transaction so a failed write never leaves a dangling history row.
func (r *MeasureRepository) Upsert(ctx context.Context, rec *secondary.MeasureRecord) (*secondary.MeasureRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var bpm sql.NullInt64
	if rec.BPM != 0 {
		bpm = sql.NullInt64{Int64: rec.BPM, Valid: true}
	}

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT song_measure_id FROM song_measure
		 WHERE song_id = ? AND page_number = ? AND line_number = ? AND measure_number = ? AND practicer = ? AND hands = ?`,
		rec.SongID, rec.Page, rec.Line, rec.Measure, rec.Practicer, rec.Hands,
	).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		res, err := tx.ExecContext(ctx,
			`INSERT INTO song_measure (song_id, book_id, page_number, line_number, measure_number, confidence, notes, practicer, bpm, hands, time)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			rec.SongID, rec.BookID, rec.Page, rec.Line, rec.Measure, rec.Confidence, rec.Notes, rec.Practicer, bpm, rec.Hands,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert measure: %w", err)
		}
		existingID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read measure id: %w", err)
		}

	case err != nil:
		return nil, fmt.Errorf("failed to find measure slot: %w", err)

	default:
		// Archive the superseded values before touching the current row.
		_, err = tx.ExecContext(ctx,
			`INSERT INTO song_measure_history (song_measure_id, song_id, book_id, page_number, line_number, measure_number, confidence, notes, practicer, bpm, hands, time)
			 SELECT song_measure_id, song_id, book_id, page_number, line_number, measure_number, confidence, notes, practicer, bpm, hands, time
			 FROM song_measure WHERE song_measure_id = ?`,
			existingID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to archive measure: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE song_measure SET confidence = ?, notes = ?, bpm = ?, time = CURRENT_TIMESTAMP WHERE song_measure_id = ?`,
			rec.Confidence, rec.Notes, bpm, existingID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update measure: %w", err)
		}
	}

	saved, err := scanMeasure(tx.QueryRowContext(ctx,
		"SELECT "+measureColumns+" FROM song_measure WHERE song_measure_id = ?", existingID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to reread measure: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit measure upsert: %w", err)
	}
	return saved, nil
}

// ListCurrent retrieves current records for a song ordered by document
// position. Zero-valued filters are not applied.
func (r *MeasureRepository) ListCurrent(ctx context.Context, songID int64, filters secondary.MeasureFilters) ([]*secondary.MeasureRecord, error) {
	query := "SELECT " + measureColumns + " FROM song_measure WHERE song_id = ?"
	args := []interface{}{songID}

	if filters.Page != 0 {
		query += " AND page_number = ?"
		args = append(args, filters.Page)
	}
	if filters.Line != 0 {
		query += " AND line_number = ?"
		args = append(args, filters.Line)
	}
	if filters.Measure != 0 {
		query += " AND measure_number = ?"
		args = append(args, filters.Measure)
	}
	if filters.Practicer != "" {
		query += " AND practicer = ?"
		args = append(args, filters.Practicer)
	}
	if filters.Hands != "" {
		query += " AND hands = ?"
		args = append(args, filters.Hands)
	}
	query += " ORDER BY page_number, line_number, measure_number, practicer, hands"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list measures: %w", err)
	}
	defer rows.Close()

	var records []*secondary.MeasureRecord
	for rows.Next() {
		record, err := scanMeasure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan measure: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// ListHistory retrieves archived records for a cell, newest archive first.
// history_id breaks ties between archives that land in the same second.
func (r *MeasureRepository) ListHistory(ctx context.Context, songID int64, page, line, measure int, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT history_id, song_measure_id, song_id, book_id, page_number, line_number, measure_number, confidence, notes, practicer, bpm, hands, time, archived_at
		FROM song_measure_history
		WHERE song_id = ? AND page_number = ? AND line_number = ? AND measure_number = ?`)
	args := []interface{}{songID, page, line, measure}

	if filters.Practicer != "" {
		sb.WriteString(" AND practicer = ?")
		args = append(args, filters.Practicer)
	}
	if filters.Hands != "" {
		sb.WriteString(" AND hands = ?")
		args = append(args, filters.Hands)
	}
	sb.WriteString(" ORDER BY archived_at DESC, history_id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []*secondary.HistoryRecord
	for rows.Next() {
		var (
			bpm  sql.NullInt64
			when sql.NullTime
		)
		record := &secondary.HistoryRecord{}
		err := rows.Scan(
			&record.HistoryID, &record.MeasureID, &record.SongID, &record.BookID,
			&record.Page, &record.Line, &record.Measure,
			&record.Confidence, &record.Notes, &record.Practicer,
			&bpm, &record.Hands, &when, &record.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		record.BPM = bpm.Int64
		record.Time = when.Time
		records = append(records, record)
	}

	return records, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeasure(row rowScanner) (*secondary.MeasureRecord, error) {
	var (
		bpm  sql.NullInt64
		when sql.NullTime
	)
	record := &secondary.MeasureRecord{}
	err := row.Scan(
		&record.ID, &record.SongID, &record.BookID,
		&record.Page, &record.Line, &record.Measure,
		&record.Confidence, &record.Notes, &record.Practicer,
		&bpm, &record.Hands, &when,
	)
	if err != nil {
		return nil, err
	}
	record.BPM = bpm.Int64
	record.Time = when.Time
	return record, nil
}

// Ensure MeasureRepository implements the interface
var _ secondary.MeasureRepository = (*MeasureRepository)(nil)
