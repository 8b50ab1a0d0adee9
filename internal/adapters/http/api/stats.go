// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/seasonal/ladder/internal/domain/stats"
)

// StatsDependencies defines the interface for statistics queries.
type StatsDependencies interface {
	GenderStatistics(ctx context.Context) (stats.PlayerStatistics, error)
}

// StatsHandler handles statistics requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleGenderStats handles GET /api/stats/gender requests.
func (h *StatsHandler) HandleGenderStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.gender_stats"

	agg, err := h.deps.GenderStatistics(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}
