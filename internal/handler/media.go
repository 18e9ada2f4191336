package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"conduit/internal/authz"
	"conduit/internal/httputil"
	"conduit/internal/model"
	"conduit/internal/service"
	"conduit/internal/validation"
)

// multipartOverhead is allowed on top of the image itself for form framing.
const multipartOverhead = 1 << 20

// MediaHandler serves avatar uploads. media is nil when storage is not configured.
type MediaHandler struct {
	media *service.MediaService
	users *service.UserService
	log   *slog.Logger
}

func NewMediaHandler(media *service.MediaService, users *service.UserService, log *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, users: users, log: log}
}

// UploadAvatar handles POST /user/image with the multipart field "image".
func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request, id authz.Identity) {
	if err := authz.RequireIdentity(id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if h.media == nil {
		writeError(w, r, h.log, model.ErrMediaNotConfigured)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, model.MaxAvatarSizeBytes+multipartOverhead)
	file, header, err := r.FormFile(model.AvatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, h.log, model.ErrFileTooLarge)
			return
		}
		httputil.WriteUnprocessable(w, model.AvatarFormField, validation.MsgRequired)
		return
	}
	defer file.Close()

	upload, err := h.media.UploadAvatar(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	body, err := h.users.SetImage(r.Context(), id, upload.URL)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, model.UserResponse{User: *body})
}
