// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seasonal/ladder/internal/adapters/repository"
	"github.com/seasonal/ladder/internal/app"
	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
)

// Roster types as the import endpoint exchanges them.
type (
	RosterEntry   = app.RosterEntry
	RosterSummary = app.RosterSummary
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	SeasonDependencies
	StatsDependencies
	UserDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	secret string

	healthHandler  *HealthHandler
	playersHandler *PlayersHandler
	seasonsHandler *SeasonsHandler
	statsHandler   *StatsHandler
	usersHandler   *UsersHandler
}

// NewServer creates a new API server with all handlers. The secret
// verifies bearer tokens on protected routes.
func NewServer(deps Dependencies, secret string) *Server {
	return &Server{
		secret:         secret,
		healthHandler:  NewHealthHandler(),
		playersHandler: NewPlayersHandler(deps),
		seasonsHandler: NewSeasonsHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		usersHandler:   NewUsersHandler(deps),
	}
}

// Register attaches all HTTP routes to the router. Reads require a
// signed-in user, writes an organizer, and account management an admin.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(s.secret, model.RoleUser))

			r.Get("/players", MetricsMiddleware(s.playersHandler.HandleListPlayers, "players"))
			r.Get("/players/{playerID}/stats", MetricsMiddleware(s.playersHandler.HandlePlayerStats, "player_stats"))
			r.Get("/seasons", MetricsMiddleware(s.seasonsHandler.HandleListSeasons, "seasons"))
			r.Get("/seasons/{seasonID}/standings", MetricsMiddleware(s.seasonsHandler.HandleStandings, "standings"))
			r.Get("/stats/gender", MetricsMiddleware(s.statsHandler.HandleGenderStats, "gender_stats"))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(s.secret, model.RoleOrganizer))

			r.Post("/players", MetricsMiddleware(s.playersHandler.HandleCreatePlayer, "players"))
			r.Patch("/players/{playerID}/gender", MetricsMiddleware(s.playersHandler.HandleUpdateGender, "player_gender"))
			r.Post("/players/gender", MetricsMiddleware(s.playersHandler.HandleBulkUpdateGender, "player_gender_bulk"))
			r.Post("/seasons", MetricsMiddleware(s.seasonsHandler.HandleCreateSeason, "seasons"))
			r.Post("/seasons/{seasonID}/players", MetricsMiddleware(s.seasonsHandler.HandleAddPlayer, "season_players"))
			r.Delete("/seasons/{seasonID}/players/{playerID}", MetricsMiddleware(s.seasonsHandler.HandleRemovePlayer, "season_players"))
			r.Put("/seasons/{seasonID}/rankings", MetricsMiddleware(s.seasonsHandler.HandleUpdateRanking, "rankings"))
			r.Post("/seasons/{seasonID}/import", MetricsMiddleware(s.seasonsHandler.HandleImportRoster, "roster_import"))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(s.secret, model.RoleAdmin))

			r.Get("/users", MetricsMiddleware(s.usersHandler.HandleListUsers, "users"))
			r.Put("/users/{userID}/role", MetricsMiddleware(s.usersHandler.HandleUpdateRole, "user_role"))
		})
	})
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

// writeServiceError translates business errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := errorStatus(err)
	writeError(w, status, code, Wrap(op, err))
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, rank.ErrInvalidRank),
		errors.Is(err, app.ErrNameRequired),
		errors.Is(err, app.ErrInvalidGender),
		errors.Is(err, app.ErrInvalidRole),
		errors.Is(err, app.ErrEmptyRoster),
		errors.Is(err, app.ErrSelfDemotion),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, app.ErrDuplicateName),
		errors.Is(err, repository.ErrDuplicateRanking):
		return http.StatusConflict, "conflict"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
