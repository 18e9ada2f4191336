package handler

import (
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/validation"
)

// writeError maps a service error to its HTTP response. Unknown errors are
// logged and reported as 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var verr validation.Errors
	switch {
	case errors.As(err, &verr):
		httputil.WriteErrors(w, http.StatusUnprocessableEntity, verr)
	case errors.Is(err, errInvalidJSON):
		httputil.WriteUnprocessable(w, "request", "is not valid JSON")
	case errors.Is(err, model.ErrInvalidCredentials):
		httputil.WriteUnprocessable(w, "email or password", "is invalid")

	case errors.Is(err, model.ErrAuthenticationRequired):
		httputil.WriteUnauthorized(w)
	case errors.Is(err, model.ErrPermissionDenied):
		httputil.WriteForbidden(w)

	case errors.Is(err, model.ErrUserNotFound):
		httputil.WriteNotFound(w, "user")
	case errors.Is(err, model.ErrArticleNotFound):
		httputil.WriteNotFound(w, "article")
	case errors.Is(err, model.ErrCommentNotFound):
		httputil.WriteNotFound(w, "comment")

	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteUnprocessable(w, model.AvatarFormField, "max size is 5MB")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteUnprocessable(w, model.AvatarFormField, "must be a jpeg, png, gif or webp image")
	case errors.Is(err, model.ErrMediaNotConfigured):
		httputil.WriteError(w, http.StatusNotImplemented, model.AvatarFormField, "uploads are not configured")

	default:
		log.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteInternalError(w)
	}
}
