// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// LeaderboardHandler handles leaderboard read requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// serve handles GET /events/{id}/leaderboard requests.
func (h *LeaderboardHandler) serve(w http.ResponseWriter, r *http.Request, eventID int64) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	view, err := h.deps.Leaderboard(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
