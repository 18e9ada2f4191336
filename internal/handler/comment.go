package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/validation"
)

// CommentHandler serves /articles/{slug}/comments.
type CommentHandler struct {
	comments  *service.CommentService
	articles  *service.ArticleService
	validator *validation.Validator
	log       *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, articles *service.ArticleService, v *validation.Validator, log *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, articles: articles, validator: v, log: log}
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	views, err := h.comments.List(r.Context(), id, chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.CommentListResponse{Comments: views})
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}
	view, err := h.comments.Get(r.Context(), id, chi.URLParam(r, "slug"), commentID)
	h.respond(w, r, http.StatusOK, view, err)
}

// Create handles POST /articles/{slug}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	slug := chi.URLParam(r, "slug")
	if !writableArticle(w, r, h.log, h.articles, id, slug) {
		return
	}

	var req model.CreateCommentRequest
	if err := decodePayload(r, h.validator, validation.SchemaComment, "comment", validation.Full, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	view, err := h.comments.Create(r.Context(), id, slug, &req)
	h.respond(w, r, http.StatusCreated, view, err)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	commentID, ok := h.commentID(w, r)
	if !ok {
		return
	}
	if err := h.comments.Delete(r.Context(), id, chi.URLParam(r, "slug"), commentID); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, struct{}{})
}

// commentID parses the {id} path parameter. Anything but a positive
// integer cannot name a comment.
func (h *CommentHandler) commentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteNotFound(w, "comment")
		return 0, false
	}
	return id, true
}

func (h *CommentHandler) respond(w http.ResponseWriter, r *http.Request, status int, view *model.CommentView, err error) {
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, status, model.CommentResponse{Comment: *view})
}
