package handler

import (
	"log/slog"
	"net/http"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/validation"
)

// UserHandler serves the authenticated user's own record.
type UserHandler struct {
	users     *service.UserService
	validator *validation.Validator
	log       *slog.Logger
}

func NewUserHandler(users *service.UserService, v *validation.Validator, log *slog.Logger) *UserHandler {
	return &UserHandler{users: users, validator: v, log: log}
}

// Current handles GET /user.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	body, err := h.users.Current(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.UserResponse{User: *body})
}

// Update handles PUT /user. Identity is checked before the body is read.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	if err := authz.RequireIdentity(id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req model.UpdateUserRequest
	if err := decodePayload(r, h.validator, validation.SchemaUser, "user", validation.Partial, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	body, err := h.users.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.UserResponse{User: *body})
}
