package handler

import (
	"net/http"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
)

// List handles GET /articles with the tag, author, favorited, limit and
// offset query parameters.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	q := r.URL.Query()
	filter := model.ArticleFilter{
		Tag:         q.Get("tag"),
		Author:      q.Get("author"),
		FavoritedBy: q.Get("favorited"),
		Limit:       limit,
		Offset:      offset,
	}

	resp, err := h.articles.List(r.Context(), id, filter)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Feed handles GET /articles/feed.
func (h *ArticleHandler) Feed(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	if err := authz.RequireIdentity(id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	resp, err := h.articles.Feed(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
