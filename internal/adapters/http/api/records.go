// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eventscore/rankd/internal/domain/model"
)

// RecordsHandler handles score submission and record listing.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// recordRequest mirrors the OpenAPI schema for POST /records.
type recordRequest struct {
	ParticipantID int64  `json:"participant_id"`
	ActivityID    int64  `json:"activity_id"`
	Value         string `json:"value"`
	EvaluatorID   int64  `json:"evaluator_id"`
}

func (r recordRequest) validate() error {
	switch {
	case r.ParticipantID <= 0:
		return errors.New("missing participant_id")
	case r.ActivityID <= 0:
		return errors.New("missing activity_id")
	case r.Value == "":
		return errors.New("missing value")
	}
	return nil
}

func (r recordRequest) toRecord() model.ScoreRecord {
	return model.ScoreRecord{
		ParticipantID: r.ParticipantID,
		ActivityID:    r.ActivityID,
		ValueRaw:      r.Value,
		EvaluatorID:   r.EvaluatorID,
	}
}

type bulkRecordsRequest struct {
	Records []recordRequest `json:"records"`
}

type recordResponse struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participant_id"`
	ActivityID    int64     `json:"activity_id"`
	Value         string    `json:"value"`
	EvaluatorID   int64     `json:"evaluator_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func toRecordResponse(rec model.ScoreRecord) recordResponse {
	return recordResponse{
		ID:            rec.ID,
		ParticipantID: rec.ParticipantID,
		ActivityID:    rec.ActivityID,
		Value:         rec.ValueRaw,
		EvaluatorID:   rec.EvaluatorID,
		CreatedAt:     rec.CreatedAt,
	}
}

type bulkRecordsResponse struct {
	Submitted int              `json:"submitted"`
	Records   []recordResponse `json:"records"`
}

// HandlePostRecord handles POST /records requests. Submitting the same
// (participant, activity) pair again overwrites the stored value.
func (h *RecordsHandler) HandlePostRecord(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_record"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	stored, err := h.deps.SubmitScore(r.Context(), req.toRecord())
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(stored))
}

// HandlePostRecordsBulk handles POST /records/bulk requests.
func (h *RecordsHandler) HandlePostRecordsBulk(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_records_bulk"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req bulkRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	recs := make([]model.ScoreRecord, 0, len(req.Records))
	for _, rr := range req.Records {
		if err := rr.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		recs = append(recs, rr.toRecord())
	}

	stored, err := h.deps.SubmitScores(r.Context(), recs)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	resp := bulkRecordsResponse{Submitted: len(stored)}
	for _, rec := range stored {
		resp.Records = append(resp.Records, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGetActivityRecords handles GET /activities/{id}/records requests.
func (h *RecordsHandler) HandleGetActivityRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_activity_records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	activityID, err := splitActivityPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	recs, err := h.deps.ActivityRecords(r.Context(), activityID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	out := make([]recordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}
