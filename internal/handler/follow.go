package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
)

// ProfileHandler serves /profiles/{username} and its follow sub-resource.
type ProfileHandler struct {
	profiles *service.ProfileService
	log      *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, log *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	profile, err := h.profiles.Get(r.Context(), id, chi.URLParam(r, "username"))
	h.respond(w, r, profile, err)
}

func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	profile, err := h.profiles.Follow(r.Context(), id, chi.URLParam(r, "username"))
	h.respond(w, r, profile, err)
}

func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	profile, err := h.profiles.Unfollow(r.Context(), id, chi.URLParam(r, "username"))
	h.respond(w, r, profile, err)
}

func (h *ProfileHandler) respond(w http.ResponseWriter, r *http.Request, profile *model.Profile, err error) {
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.ProfileResponse{Profile: *profile})
}
