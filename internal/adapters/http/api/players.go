// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/stats"
)

// PlayerDependencies defines the interface for player operations.
type PlayerDependencies interface {
	CreatePlayer(ctx context.Context, name, seasonID string) (model.Player, error)
	Players(ctx context.Context, filter stats.GenderFilter) ([]stats.PlayerWithRatings, error)
	PlayerStats(ctx context.Context, playerID string) (stats.PlayerStats, error)
	UpdatePlayerGender(ctx context.Context, playerID string, g *model.Gender) error
	BulkUpdateGender(ctx context.Context, playerIDs []string, g *model.Gender) (int, error)
}

// PlayersHandler handles player requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type createPlayerRequest struct {
	Name     string `json:"name"`
	SeasonID string `json:"season_id,omitempty"`
}

// HandleCreatePlayer handles POST /api/players requests.
func (h *PlayersHandler) HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"

	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	p, err := h.deps.CreatePlayer(r.Context(), req.Name, req.SeasonID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleListPlayers handles GET /api/players?gender=bucket requests.
func (h *PlayersHandler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"

	filter := stats.GenderFilter(strings.TrimSpace(r.URL.Query().Get("gender")))
	players, err := h.deps.Players(r.Context(), filter)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandlePlayerStats handles GET /api/players/{playerID}/stats requests.
func (h *PlayersHandler) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_stats"

	st, err := h.deps.PlayerStats(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type updateGenderRequest struct {
	// Gender is nil to clear the stored value.
	Gender *model.Gender `json:"gender"`
}

// HandleUpdateGender handles PATCH /api/players/{playerID}/gender requests.
func (h *PlayersHandler) HandleUpdateGender(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_gender"

	var req updateGenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.UpdatePlayerGender(r.Context(), chi.URLParam(r, "playerID"), req.Gender); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkGenderRequest struct {
	PlayerIDs []string      `json:"player_ids"`
	Gender    *model.Gender `json:"gender"`
}

type bulkGenderResponse struct {
	Updated int `json:"updated"`
}

// HandleBulkUpdateGender handles POST /api/players/gender requests.
func (h *PlayersHandler) HandleBulkUpdateGender(w http.ResponseWriter, r *http.Request) {
	const op = "api.bulk_update_gender"

	var req bulkGenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	n, err := h.deps.BulkUpdateGender(r.Context(), req.PlayerIDs, req.Gender)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkGenderResponse{Updated: n})
}
