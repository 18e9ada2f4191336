package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"conduit/internal/handler"
	"conduit/internal/httputil"
	authmw "conduit/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	Auth           *authmw.Auth
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	ArticleHandler *handler.ArticleHandler
	CommentHandler *handler.CommentHandler
	TagHandler     *handler.TagHandler
	MediaHandler   *handler.MediaHandler

	// MaxBodyBytes caps JSON request bodies. Avatar uploads carry their own limit.
	MaxBodyBytes int64
	Log          *slog.Logger
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(authmw.RequestLogger(cfg.Log))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method", "not allowed")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	auth := cfg.Auth

	r.Group(func(r chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			r.Use(middleware.RequestSize(cfg.MaxBodyBytes))
		}

		r.Post("/users", cfg.AuthHandler.Register)
		r.Post("/users/login", cfg.AuthHandler.Login)

		r.Get("/user", auth.With(cfg.UserHandler.Current))
		r.Put("/user", auth.With(cfg.UserHandler.Update))

		r.Route("/profiles/{username}", func(r chi.Router) {
			r.Get("/", auth.With(cfg.ProfileHandler.Get))
			r.Post("/follow", auth.With(cfg.ProfileHandler.Follow))
			r.Delete("/follow", auth.With(cfg.ProfileHandler.Unfollow))
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", auth.With(cfg.ArticleHandler.List))
			r.Post("/", auth.With(cfg.ArticleHandler.Create))
			r.Get("/feed", auth.With(cfg.ArticleHandler.Feed))

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", auth.With(cfg.ArticleHandler.Get))
				r.Put("/", auth.With(cfg.ArticleHandler.Update))
				r.Delete("/", auth.With(cfg.ArticleHandler.Delete))

				r.Post("/favorite", auth.With(cfg.ArticleHandler.Favorite))
				r.Delete("/favorite", auth.With(cfg.ArticleHandler.Unfavorite))

				r.Get("/comments", auth.With(cfg.CommentHandler.List))
				r.Post("/comments", auth.With(cfg.CommentHandler.Create))
				r.Get("/comments/{id}", auth.With(cfg.CommentHandler.Get))
				r.Delete("/comments/{id}", auth.With(cfg.CommentHandler.Delete))
			})
		})

		r.Get("/tags", cfg.TagHandler.List)
	})

	// Multipart avatar uploads (direct to R2)
	r.Post("/user/image", auth.With(cfg.MediaHandler.UploadAvatar))

	return r
}
