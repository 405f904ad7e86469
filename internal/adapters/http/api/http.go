// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eventscore/rankd/internal/adapters/repository"
	service "github.com/eventscore/rankd/internal/app"
	"github.com/eventscore/rankd/internal/domain/model"
	"github.com/eventscore/rankd/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// CreateEvent persists a full event definition.
	CreateEvent(ctx context.Context, def service.EventDefinition) (service.CreatedEvent, error)

	// SubmitScore and SubmitScores commit score records and evict affected
	// cached leaderboards before returning.
	SubmitScore(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error)
	SubmitScores(ctx context.Context, recs []model.ScoreRecord) ([]model.ScoreRecord, error)

	// Read operations expose ranking data.
	ActivityRecords(ctx context.Context, activityID int64) ([]model.ScoreRecord, error)
	Leaderboard(ctx context.Context, eventID int64) (types.LeaderboardView, error)
	WriteCSV(ctx context.Context, eventID int64, w io.Writer) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	eventsHandler      *EventsHandler
	recordsHandler     *RecordsHandler
	leaderboardHandler *LeaderboardHandler
	exportHandler      *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		eventsHandler:      NewEventsHandler(deps),
		recordsHandler:     NewRecordsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps),
		exportHandler:      NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/events/", MetricsMiddleware(s.handleEventSubtree, "event_reads"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandlePostRecord, "records"))
	mux.HandleFunc("/records/bulk", MetricsMiddleware(s.recordsHandler.HandlePostRecordsBulk, "records_bulk"))
	mux.HandleFunc("/activities/", MetricsMiddleware(s.recordsHandler.HandleGetActivityRecords, "activity_records"))
}

// handleEventSubtree dispatches /events/{id}/leaderboard and
// /events/{id}/export-csv.
func (s *Server) handleEventSubtree(w http.ResponseWriter, r *http.Request) {
	eventID, rest, err := splitEventPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	switch rest {
	case "leaderboard":
		s.leaderboardHandler.serve(w, r, eventID)
	case "export-csv":
		s.exportHandler.serve(w, r, eventID)
	default:
		http.NotFound(w, r)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates service and storage errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrEmptyEventName),
		errors.Is(err, service.ErrInvalidEvaluationType),
		errors.Is(err, service.ErrNoRecords):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// isNotFound reports whether err is one of the storage not-found sentinels.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrEventNotFound) ||
		errors.Is(err, repository.ErrGroupNotFound) ||
		errors.Is(err, repository.ErrActivityNotFound) ||
		errors.Is(err, repository.ErrParticipantNotFound)
}
