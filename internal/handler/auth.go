package handler

import (
	"log/slog"
	"net/http"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/validation"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	users     *service.UserService
	validator *validation.Validator
	scheme    string
	log       *slog.Logger
}

// NewAuthHandler; scheme prefixes the token in the Authorization response header.
func NewAuthHandler(users *service.UserService, v *validation.Validator, scheme string, log *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, validator: v, scheme: scheme, log: log}
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodePayload(r, h.validator, validation.SchemaLogin, "user", validation.Full, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	body, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.respond(w, http.StatusOK, body)
}

// Register handles POST /users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodePayload(r, h.validator, validation.SchemaUser, "user", validation.Full, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	body, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.respond(w, http.StatusCreated, body)
}

func (h *AuthHandler) respond(w http.ResponseWriter, status int, body *model.UserBody) {
	w.Header().Set("Authorization", h.scheme+" "+body.Token)
	httputil.WriteJSON(w, status, model.UserResponse{User: *body})
}
