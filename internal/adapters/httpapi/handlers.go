package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/version"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   version.String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ----------------------------------------------------------------------------
// Songs and books
// ----------------------------------------------------------------------------

type bookDTO struct {
	BookID   int64  `json:"book_id"`
	Title    string `json:"title"`
	Composer string `json:"composer,omitempty"`
}

type songDTO struct {
	SongID            int64  `json:"song_id"`
	BookID            int64  `json:"book_id"`
	Title             string `json:"title"`
	FirstPagePosition string `json:"first_page_position"`
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.songs.ListBooks(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]bookDTO, len(books))
	for i, b := range books {
		out[i] = bookDTO{BookID: b.BookID, Title: b.Title, Composer: b.Composer}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songs.ListSongs(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]songDTO, len(songs))
	for i, song := range songs {
		out[i] = toSongDTO(song)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}
	song, err := s.songs.GetSong(r.Context(), songID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSongDTO(song))
}

func toSongDTO(song *primary.Song) songDTO {
	return songDTO{
		SongID:            song.SongID,
		BookID:            song.BookID,
		Title:             song.Title,
		FirstPagePosition: song.FirstPagePosition,
	}
}

// ----------------------------------------------------------------------------
// Layout
// ----------------------------------------------------------------------------

type layoutPageDTO struct {
	PageNumber      int   `json:"page_number"`
	Lines           []int `json:"lines"`
	StartingMeasure int   `json:"starting_measure"`
}

type layoutDTO struct {
	SongID            int64           `json:"song_id"`
	FirstPagePosition string          `json:"first_page_position"`
	Pages             []layoutPageDTO `json:"pages"`
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}
	l, err := s.layouts.GetLayout(r.Context(), songID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := layoutDTO{
		SongID:            l.SongID,
		FirstPagePosition: l.FirstPagePosition,
		Pages:             make([]layoutPageDTO, len(l.Pages)),
	}
	for i, p := range l.Pages {
		out.Pages[i] = layoutPageDTO{
			PageNumber:      p.PageNumber,
			Lines:           p.Lines,
			StartingMeasure: p.StartingMeasure,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------------------------------------------------------
// Measures
// ----------------------------------------------------------------------------

type measureDTO struct {
	SongMeasureID int64     `json:"song_measure_id"`
	SongID        int64     `json:"song_id"`
	BookID        int64     `json:"book_id"`
	PageNumber    int       `json:"page_number"`
	LineNumber    int       `json:"line_number"`
	MeasureNumber int       `json:"measure_number"`
	Confidence    float64   `json:"confidence"`
	Notes         string    `json:"notes"`
	Practicer     string    `json:"practicer"`
	BPM           *int64    `json:"bpm"`
	Hands         string    `json:"hands"`
	Time          time.Time `json:"time"`
}

type recordMeasureRequest struct {
	PageNumber    int     `json:"page_number"`
	LineNumber    int     `json:"line_number"`
	MeasureNumber int     `json:"measure_number"`
	Confidence    float64 `json:"confidence"`
	Notes         string  `json:"notes"`
	Practicer     string  `json:"practicer"`
	BPM           int64   `json:"bpm"`
	Hands         string  `json:"hands"`
}

func (s *Server) handleListMeasures(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	measures, err := s.measures.GetCurrent(r.Context(), primary.CurrentQuery{
		SongID:    songID,
		Page:      queryInt(q.Get("page")),
		Line:      queryInt(q.Get("line")),
		Measure:   queryInt(q.Get("measure")),
		Practicer: q.Get("practicer"),
		Hands:     q.Get("hands"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]measureDTO, len(measures))
	for i, m := range measures {
		out[i] = toMeasureDTO(m)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRecordMeasure(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req recordMeasureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	saved, err := s.measures.RecordPractice(r.Context(), primary.RecordPracticeRequest{
		SongID:     songID,
		Page:       req.PageNumber,
		Line:       req.LineNumber,
		Measure:    req.MeasureNumber,
		Confidence: req.Confidence,
		Notes:      req.Notes,
		Practicer:  req.Practicer,
		BPM:        req.BPM,
		Hands:      req.Hands,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMeasureDTO(saved))
}

func toMeasureDTO(m *primary.Measure) measureDTO {
	dto := measureDTO{
		SongMeasureID: m.ID,
		SongID:        m.SongID,
		BookID:        m.BookID,
		PageNumber:    m.Page,
		LineNumber:    m.Line,
		MeasureNumber: m.Measure,
		Confidence:    m.Confidence,
		Notes:         m.Notes,
		Practicer:     m.Practicer,
		Hands:         m.Hands,
		Time:          m.Time,
	}
	if m.BPM != 0 {
		bpm := m.BPM
		dto.BPM = &bpm
	}
	return dto
}

// ----------------------------------------------------------------------------
// Bulk edit
// ----------------------------------------------------------------------------

type bulkApplyRequest struct {
	Keys       []string `json:"keys"`
	Confidence float64  `json:"confidence"`
	Notes      string   `json:"notes"`
	Practicer  string   `json:"practicer"`
	BPM        int64    `json:"bpm"`
	Hands      string   `json:"hands"`
}

type bulkFailureDTO struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

type bulkResultDTO struct {
	Saved    []measureDTO     `json:"saved"`
	Failures []bulkFailureDTO `json:"failures"`
}

func (s *Server) handleBulkApply(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req bulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Keys) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "keys must not be empty"})
		return
	}

	result := s.bulk.Apply(r.Context(), primary.BulkApplyRequest{
		SongID: songID,
		Keys:   req.Keys,
		Payload: primary.BulkPayload{
			Confidence: req.Confidence,
			Notes:      req.Notes,
			Practicer:  req.Practicer,
			BPM:        req.BPM,
			Hands:      req.Hands,
		},
	})

	out := bulkResultDTO{
		Saved:    make([]measureDTO, len(result.Saved)),
		Failures: make([]bulkFailureDTO, len(result.Failures)),
	}
	for i, m := range result.Saved {
		out.Saved[i] = toMeasureDTO(m)
	}
	for i, f := range result.Failures {
		out.Failures[i] = bulkFailureDTO{Key: f.Key, Error: f.Message}
	}

	// Partial success is still a 207-style outcome; all-failed is the
	// caller's error.
	status := http.StatusOK
	if len(out.Saved) == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, out)
}

// ----------------------------------------------------------------------------
// History
// ----------------------------------------------------------------------------

type historyDTO struct {
	SongMeasureID int64     `json:"song_measure_id"`
	SongID        int64     `json:"song_id"`
	PageNumber    int       `json:"page_number"`
	LineNumber    int       `json:"line_number"`
	MeasureNumber int       `json:"measure_number"`
	Confidence    float64   `json:"confidence"`
	Notes         string    `json:"notes"`
	Practicer     string    `json:"practicer"`
	BPM           *int64    `json:"bpm"`
	Hands         string    `json:"hands"`
	Time          time.Time `json:"time"`
	ArchivedAt    time.Time `json:"archived_at"`
}

func (s *Server) handleMeasureHistory(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	// History is addressed per cell, so the coordinates are mandatory.
	q := r.URL.Query()
	page, ok := requiredQueryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	line, ok := requiredQueryInt(w, q.Get("line"), "line")
	if !ok {
		return
	}
	measureNum, ok := requiredQueryInt(w, q.Get("measure"), "measure")
	if !ok {
		return
	}

	entries, err := s.measures.GetHistory(r.Context(), primary.HistoryQuery{
		SongID:    songID,
		Page:      page,
		Line:      line,
		Measure:   measureNum,
		Practicer: q.Get("practicer"),
		Hands:     q.Get("hands"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]historyDTO, len(entries))
	for i, e := range entries {
		out[i] = historyDTO{
			SongMeasureID: e.MeasureID,
			SongID:        e.SongID,
			PageNumber:    e.Page,
			LineNumber:    e.Line,
			MeasureNumber: e.Measure,
			Confidence:    e.Confidence,
			Notes:         e.Notes,
			Practicer:     e.Practicer,
			Hands:         e.Hands,
			Time:          e.Time,
			ArchivedAt:    e.ArchivedAt,
		}
		if e.BPM != 0 {
			bpm := e.BPM
			out[i].BPM = &bpm
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// ----------------------------------------------------------------------------
// Practice sessions
// ----------------------------------------------------------------------------

type sessionDTO struct {
	PracticeSessionID int64     `json:"practice_session_id"`
	SongID            int64     `json:"song_id"`
	PartNumber        int64     `json:"part_number,omitempty"`
	FromMeasure       int64     `json:"from_measure,omitempty"`
	ToMeasure         int64     `json:"to_measure,omitempty"`
	FromPage          int64     `json:"from_page,omitempty"`
	ToPage            int64     `json:"to_page,omitempty"`
	SessionType       string    `json:"session_type,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	ConfidenceBefore  *float64  `json:"confidence_before"`
	ConfidenceAfter   *float64  `json:"confidence_after"`
	Hands             string    `json:"hands,omitempty"`
	PlaybackSpeed     float64   `json:"playback_speed,omitempty"`
	Practicers        string    `json:"practicers,omitempty"`
	DurationMinutes   int64     `json:"duration_minutes,omitempty"`
	PracticeTime      time.Time `json:"practice_time"`
}

type logSessionRequest struct {
	PartNumber       int64    `json:"part_number"`
	FromMeasure      int64    `json:"from_measure"`
	ToMeasure        int64    `json:"to_measure"`
	FromPage         int64    `json:"from_page"`
	ToPage           int64    `json:"to_page"`
	SessionType      string   `json:"session_type"`
	Notes            string   `json:"notes"`
	ConfidenceBefore *float64 `json:"confidence_before"`
	ConfidenceAfter  *float64 `json:"confidence_after"`
	Hands            string   `json:"hands"`
	PlaybackSpeed    float64  `json:"playback_speed"`
	Practicers       string   `json:"practicers"`
	DurationMinutes  int64    `json:"duration_minutes"`
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	from := queryInt(q.Get("from_measure"))
	to := queryInt(q.Get("to_measure"))

	var (
		sessions []*primary.PracticeSession
		err      error
	)
	if from != 0 || to != 0 {
		sessions, err = s.sessions.ListSessionsForMeasures(r.Context(), songID, from, to)
	} else {
		sessions, err = s.sessions.ListSessions(r.Context(), songID)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]sessionDTO, len(sessions))
	for i, sess := range sessions {
		out[i] = toSessionDTO(sess)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLogSession(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req logSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	logged, err := s.sessions.LogSession(r.Context(), primary.LogSessionRequest{
		SongID:           songID,
		PartNumber:       req.PartNumber,
		FromMeasure:      req.FromMeasure,
		ToMeasure:        req.ToMeasure,
		FromPage:         req.FromPage,
		ToPage:           req.ToPage,
		SessionType:      req.SessionType,
		Notes:            req.Notes,
		ConfidenceBefore: req.ConfidenceBefore,
		ConfidenceAfter:  req.ConfidenceAfter,
		Hands:            req.Hands,
		PlaybackSpeed:    req.PlaybackSpeed,
		Practicers:       req.Practicers,
		DurationMinutes:  req.DurationMinutes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionDTO(logged))
}

func toSessionDTO(s *primary.PracticeSession) sessionDTO {
	return sessionDTO{
		PracticeSessionID: s.ID,
		SongID:            s.SongID,
		PartNumber:        s.PartNumber,
		FromMeasure:       s.FromMeasure,
		ToMeasure:         s.ToMeasure,
		FromPage:          s.FromPage,
		ToPage:            s.ToPage,
		SessionType:       s.SessionType,
		Notes:             s.Notes,
		ConfidenceBefore:  s.ConfidenceBefore,
		ConfidenceAfter:   s.ConfidenceAfter,
		Hands:             s.Hands,
		PlaybackSpeed:     s.PlaybackSpeed,
		Practicers:        s.Practicers,
		DurationMinutes:   s.DurationMinutes,
		PracticeTime:      s.PracticeTime,
	}
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

// pathID parses the {id} path segment. A malformed ID answers 400 directly.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid song id"})
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter; absent or malformed
// values mean unfiltered.
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// requiredQueryInt parses a mandatory integer query parameter, answering
// 400 when it is missing or malformed.
func requiredQueryInt(w http.ResponseWriter, s, name string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: name + " query parameter is required"})
		return 0, false
	}
	return n, true
}
