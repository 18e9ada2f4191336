package handler

import (
	"log/slog"
	"net/http"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
)

type TagHandler struct {
	tags *service.TagService
	log  *slog.Logger
}

func NewTagHandler(tags *service.TagService, log *slog.Logger) *TagHandler {
	return &TagHandler{tags: tags, log: log}
}

// List handles GET /tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.tags.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.TagListResponse{Tags: names})
}
