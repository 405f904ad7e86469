// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"fmt"
	"net/http"
)

// ExportHandler handles CSV result export requests.
type ExportHandler struct {
	deps Dependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps Dependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// serve handles GET /events/{id}/export-csv requests. The export is buffered
// so a failing computation still yields a clean error response instead of a
// truncated download.
func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, eventID int64) {
	const op = "api.export_csv"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := h.deps.WriteCSV(r.Context(), eventID, &buf); err != nil {
		writeDomainError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"event_%d_results.csv\"", eventID))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
