// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/tablesort"
)

// SeasonDependencies defines the interface for season operations.
type SeasonDependencies interface {
	CreateSeason(ctx context.Context, name string) (model.Season, error)
	Seasons(ctx context.Context) ([]model.Season, error)
	AddPlayerToSeason(ctx context.Context, seasonID, playerID string) error
	RemovePlayerFromSeason(ctx context.Context, seasonID, playerID string) error
	UpdateRanking(ctx context.Context, seasonID, playerName string, value float64) error
	SeasonStandings(ctx context.Context, seasonID string, state tablesort.State) ([]tablesort.PlayerRow, error)
	ImportRoster(ctx context.Context, seasonID string, entries []RosterEntry) (RosterSummary, error)
}

// SeasonsHandler handles season requests.
type SeasonsHandler struct {
	deps SeasonDependencies
}

// NewSeasonsHandler creates a new seasons handler.
func NewSeasonsHandler(deps SeasonDependencies) *SeasonsHandler {
	return &SeasonsHandler{deps: deps}
}

type createSeasonRequest struct {
	Name string `json:"name"`
}

// HandleCreateSeason handles POST /api/seasons requests.
func (h *SeasonsHandler) HandleCreateSeason(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_season"

	var req createSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sn, err := h.deps.CreateSeason(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, sn)
}

// HandleListSeasons handles GET /api/seasons requests. Seasons come
// back most recent first.
func (h *SeasonsHandler) HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_seasons"

	seasons, err := h.deps.Seasons(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

// HandleStandings handles GET /api/seasons/{seasonID}/standings
// requests with optional sort=field and dir=asc|desc parameters.
func (h *SeasonsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.standings"

	state := tablesort.State{
		Field:     strings.TrimSpace(r.URL.Query().Get("sort")),
		Direction: tablesort.Direction(r.URL.Query().Get("dir")),
	}
	if state.Direction != tablesort.Desc {
		state.Direction = tablesort.Asc
	}

	rows, err := h.deps.SeasonStandings(r.Context(), chi.URLParam(r, "seasonID"), state)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type addPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

// HandleAddPlayer handles POST /api/seasons/{seasonID}/players requests.
func (h *SeasonsHandler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_player_to_season"

	var req addPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.AddPlayerToSeason(r.Context(), chi.URLParam(r, "seasonID"), req.PlayerID); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemovePlayer handles DELETE /api/seasons/{seasonID}/players/{playerID} requests.
func (h *SeasonsHandler) HandleRemovePlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.remove_player_from_season"

	err := h.deps.RemovePlayerFromSeason(r.Context(), chi.URLParam(r, "seasonID"), chi.URLParam(r, "playerID"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateRankingRequest struct {
	PlayerName string  `json:"player_name"`
	Rank       float64 `json:"rank"`
}

// HandleUpdateRanking handles PUT /api/seasons/{seasonID}/rankings requests.
func (h *SeasonsHandler) HandleUpdateRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_ranking"

	var req updateRankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.PlayerName) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.UpdateRanking(r.Context(), chi.URLParam(r, "seasonID"), req.PlayerName, req.Rank); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importRosterRequest struct {
	Players []RosterEntry `json:"players"`
}

// HandleImportRoster handles POST /api/seasons/{seasonID}/import requests.
func (h *SeasonsHandler) HandleImportRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_roster"

	var req importRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	summary, err := h.deps.ImportRoster(r.Context(), chi.URLParam(r, "seasonID"), req.Players)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
