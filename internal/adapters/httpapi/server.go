// Package httpapi exposes the application services over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/barline/internal/ports/primary"
	"github.com/example/barline/internal/ports/secondary"
)

// Server wires HTTP routes for the practice-tracker API.
type Server struct {
	songs    primary.SongService
	layouts  primary.LayoutService
	measures primary.MeasureService
	sessions primary.SessionService
	bulk     primary.BulkService
}

// NewServer creates a new API server with all handlers.
func NewServer(
	songs primary.SongService,
	layouts primary.LayoutService,
	measures primary.MeasureService,
	sessions primary.SessionService,
	bulk primary.BulkService,
) *Server {
	return &Server{
		songs:    songs,
		layouts:  layouts,
		measures: measures,
		sessions: sessions,
		bulk:     bulk,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", metricsMiddleware(s.handleHealth, "health"))
	mux.HandleFunc("GET /api/books", metricsMiddleware(s.handleListBooks, "books"))
	mux.HandleFunc("GET /api/songs", metricsMiddleware(s.handleListSongs, "songs"))
	mux.HandleFunc("GET /api/songs/{id}", metricsMiddleware(s.handleGetSong, "song"))
	mux.HandleFunc("GET /api/songs/{id}/pages", metricsMiddleware(s.handleGetLayout, "pages"))
	mux.HandleFunc("GET /api/songs/{id}/measures", metricsMiddleware(s.handleListMeasures, "measures"))
	mux.HandleFunc("POST /api/songs/{id}/measures", metricsMiddleware(s.handleRecordMeasure, "measures"))
	mux.HandleFunc("POST /api/songs/{id}/measures/bulk", metricsMiddleware(s.handleBulkApply, "measures_bulk"))
	mux.HandleFunc("GET /api/songs/{id}/measures/history", metricsMiddleware(s.handleMeasureHistory, "measure_history"))
	mux.HandleFunc("GET /api/songs/{id}/practice-sessions", metricsMiddleware(s.handleListSessions, "practice_sessions"))
	mux.HandleFunc("POST /api/songs/{id}/practice-sessions", metricsMiddleware(s.handleLogSession, "practice_sessions"))
	mux.Handle("GET /metrics", promhttp.Handler())
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. Validation failures are
// the caller's fault, missing songs and books are 404, everything else is a
// storage failure surfaced as 500.
func writeError(w http.ResponseWriter, err error) {
	var vErr *primary.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Reason})
	case errors.Is(err, secondary.ErrSongNotFound), errors.Is(err, secondary.ErrBookNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
