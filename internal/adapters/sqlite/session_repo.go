package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/barline/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = "practice_session_id, song_id, part_number, from_measure, to_measure, from_page, to_page, session_type, notes, confidence_before, confidence_after, hands, playback_speed, practicers, duration_minutes, practice_time"

// Create persists a practice session and returns its assigned ID.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO practice_session (song_id, part_number, from_measure, to_measure, from_page, to_page, session_type, notes, confidence_before, confidence_after, hands, playback_speed, practicers, duration_minutes, practice_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		session.SongID,
		nullInt(session.PartNumber),
		nullInt(session.FromMeasure),
		nullInt(session.ToMeasure),
		nullInt(session.FromPage),
		nullInt(session.ToPage),
		nullStr(session.SessionType),
		nullStr(session.Notes),
		nullFloatPtr(session.ConfidenceBefore),
		nullFloatPtr(session.ConfidenceAfter),
		nullStr(session.Hands),
		nullFloat(session.PlaybackSpeed),
		nullStr(session.Practicers),
		nullInt(session.DurationMinutes),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create practice session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}
	return id, nil
}

// ListBySong retrieves sessions for a song, newest first.
func (r *SessionRepository) ListBySong(ctx context.Context, songID int64) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM practice_session WHERE song_id = ? ORDER BY practice_time DESC, practice_session_id DESC",
		songID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListOverlapping retrieves sessions whose measure range overlaps [from, to].
// Sessions logged without a range cover the whole song and always match.
func (r *SessionRepository) ListOverlapping(ctx context.Context, songID int64, from, to int) ([]*secondary.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM practice_session
		 WHERE song_id = ?
		   AND ((from_measure IS NULL AND to_measure IS NULL)
		     OR (from_measure <= ? AND to_measure >= ?))
		 ORDER BY practice_time DESC, practice_session_id DESC`,
		songID, to, from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func collectSessions(rows *sql.Rows) ([]*secondary.SessionRecord, error) {
	var sessions []*secondary.SessionRecord
	for rows.Next() {
		var (
			partNumber, fromMeasure, toMeasure       sql.NullInt64
			fromPage, toPage, durationMinutes        sql.NullInt64
			sessionType, notes, hands, practicers    sql.NullString
			confidenceBefore, confidenceAfter, speed sql.NullFloat64
		)
		record := &secondary.SessionRecord{}
		err := rows.Scan(
			&record.ID, &record.SongID,
			&partNumber, &fromMeasure, &toMeasure, &fromPage, &toPage,
			&sessionType, &notes,
			&confidenceBefore, &confidenceAfter,
			&hands, &speed, &practicers, &durationMinutes,
			&record.PracticeTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		record.PartNumber = partNumber.Int64
		record.FromMeasure = fromMeasure.Int64
		record.ToMeasure = toMeasure.Int64
		record.FromPage = fromPage.Int64
		record.ToPage = toPage.Int64
		record.SessionType = sessionType.String
		record.Notes = notes.String
		if confidenceBefore.Valid {
			v := confidenceBefore.Float64
			record.ConfidenceBefore = &v
		}
		if confidenceAfter.Valid {
			v := confidenceAfter.Float64
			record.ConfidenceAfter = &v
		}
		record.Hands = hands.String
		record.PlaybackSpeed = speed.Float64
		record.Practicers = practicers.String
		record.DurationMinutes = durationMinutes.Int64
		sessions = append(sessions, record)
	}

	return sessions, rows.Err()
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)
