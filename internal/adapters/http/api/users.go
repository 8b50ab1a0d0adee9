// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seasonal/ladder/internal/domain/model"
)

// UserDependencies defines the interface for account management.
type UserDependencies interface {
	Users(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, callerID, userID string, role model.Role) (model.User, error)
}

// UsersHandler handles user administration requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleListUsers handles GET /api/users requests.
func (h *UsersHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_users"

	users, err := h.deps.Users(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role model.Role `json:"role"`
}

// HandleUpdateRole handles PUT /api/users/{userID}/role requests. The
// caller is taken from the verified token so the self-demotion guard
// sees who is asking.
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_role"

	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", NewKind(op, ErrUnauthorized))
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	u, err := h.deps.UpdateUserRole(r.Context(), id.UserID, chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
