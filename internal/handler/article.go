package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/validation"
)

// ArticleHandler serves /articles and its per-slug sub-resources.
type ArticleHandler struct {
	articles  *service.ArticleService
	validator *validation.Validator
	log       *slog.Logger
}

func NewArticleHandler(articles *service.ArticleService, v *validation.Validator, log *slog.Logger) *ArticleHandler {
	return &ArticleHandler{articles: articles, validator: v, log: log}
}

// Get handles GET /articles/{slug}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	view, err := h.articles.Get(r.Context(), id, chi.URLParam(r, "slug"))
	h.respond(w, r, http.StatusOK, view, err)
}

// Create handles POST /articles. Anonymous callers are refused before the
// body is read.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	if err := authz.CanWrite(id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req model.CreateArticleRequest
	if err := decodePayload(r, h.validator, validation.SchemaArticle, "article", validation.Full, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.articles.Create(r.Context(), id, &req)
	h.respond(w, r, http.StatusCreated, view, err)
}

// Update handles PUT /articles/{slug}. Fields are optional.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	slug := chi.URLParam(r, "slug")
	if !writableArticle(w, r, h.log, h.articles, id, slug) {
		return
	}

	var req model.UpdateArticleRequest
	if err := decodePayload(r, h.validator, validation.SchemaArticle, "article", validation.Partial, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.articles.Update(r.Context(), id, slug, &req)
	h.respond(w, r, http.StatusOK, view, err)
}

// Delete handles DELETE /articles/{slug}.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	if err := h.articles.Delete(r.Context(), id, chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct{}{})
}

func (h *ArticleHandler) Favorite(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	view, err := h.articles.Favorite(r.Context(), id, chi.URLParam(r, "slug"))
	h.respond(w, r, http.StatusOK, view, err)
}

func (h *ArticleHandler) Unfavorite(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	view, err := h.articles.Unfavorite(r.Context(), id, chi.URLParam(r, "slug"))
	h.respond(w, r, http.StatusOK, view, err)
}

// writableArticle resolves slug, then checks the write permission, before
// any body is read: an unknown article is a 404 for every caller and an
// anonymous one is a 403 whatever the payload. It writes the response and
// returns false when the request must stop.
func writableArticle(w http.ResponseWriter, r *http.Request, log *slog.Logger, articles *service.ArticleService, id authz.Identity, slug string) bool {
	if err := articles.EnsureExists(r.Context(), slug); err != nil {
		writeError(w, r, log, err)
		return false
	}
	if err := authz.CanWrite(id); err != nil {
		writeError(w, r, log, err)
		return false
	}
	return true
}

func (h *ArticleHandler) respond(w http.ResponseWriter, r *http.Request, status int, view *model.ArticleView, err error) {
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, status, model.ArticleResponse{Article: *view})
}
