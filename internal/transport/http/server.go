package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"conduit/internal/cache"
	"conduit/internal/config"
	"conduit/internal/database"
	"conduit/internal/handler"
	"conduit/internal/model"
	"conduit/internal/queue"
	"conduit/internal/redis"
	"conduit/internal/repository"
	"conduit/internal/repository/memory"
	"conduit/internal/service"
	"conduit/internal/slug"
	authmw "conduit/internal/transport/http/middleware"
	"conduit/internal/validation"
)

// Deps are the backing services the API is built on. TagCache, Publisher
// and Media are optional.
type Deps struct {
	Store     *repository.Store
	Tokens    *service.TokenService
	TagCache  cache.TagCache
	Publisher queue.Publisher
	Media     *service.MediaService

	SlugOptions []slug.Option

	AuthScheme   string
	MaxBodyBytes int64
	Log          *slog.Logger
}

// NewAPI wires services and handlers over deps and returns the router.
func NewAPI(deps Deps) (chi.Router, error) {
	v, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("load validation rules: %w", err)
	}

	scheme := deps.AuthScheme
	if scheme == "" {
		scheme = "Token"
	}

	users := service.NewUserService(deps.Store.Users, deps.Tokens, deps.Log)
	profiles := service.NewProfileService(deps.Store, deps.Publisher, deps.Log)
	articles := service.NewArticleService(deps.Store, slug.New(deps.SlugOptions...), deps.TagCache, deps.Publisher, deps.Log)
	comments := service.NewCommentService(deps.Store, deps.Log)
	tags := service.NewTagService(deps.Store.Tags, deps.TagCache, deps.Log)

	return NewRouter(RouterConfig{
		Auth:           authmw.NewAuth(deps.Tokens, deps.Log),
		AuthHandler:    handler.NewAuthHandler(users, v, scheme, deps.Log),
		UserHandler:    handler.NewUserHandler(users, v, deps.Log),
		ProfileHandler: handler.NewProfileHandler(profiles, deps.Log),
		ArticleHandler: handler.NewArticleHandler(articles, v, deps.Log),
		CommentHandler: handler.NewCommentHandler(comments, articles, v, deps.Log),
		TagHandler:     handler.NewTagHandler(tags, deps.Log),
		MediaHandler:   handler.NewMediaHandler(deps.Media, users, deps.Log),
		MaxBodyBytes:   deps.MaxBodyBytes,
		Log:            deps.Log,
	}), nil
}

// Server wraps the HTTP server and the resources it owns.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	closers         []func() error
	log             *slog.Logger
}

// NewServer connects the configured backends and builds the API.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	s := &Server{shutdownTimeout: cfg.ShutdownTimeout, log: log}

	store, err := s.openStore(ctx, cfg)
	if err != nil {
		s.closeAll()
		return nil, err
	}

	deps := Deps{
		Store:        store,
		Tokens:       service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTokenMaxAge)*time.Second),
		SlugOptions:  slugOptions(cfg),
		AuthScheme:   cfg.AuthScheme,
		MaxBodyBytes: cfg.MaxRequestBodyKiB * 1024,
		Log:          log,
	}

	if cfg.RedisURL != "" {
		rc, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			s.closeAll()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		s.closers = append(s.closers, rc.Close)
		deps.TagCache = cache.NewTagCache(rc.Client, log)
		deps.Publisher = queue.NewPublisher(rc.Client, log)
		log.Info("redis enabled", "features", "tag cache, event stream")
	}

	media, err := service.NewMediaService(ctx, cfg, log)
	switch {
	case err == nil:
		deps.Media = media
	case errors.Is(err, model.ErrMediaNotConfigured):
		log.Info("avatar uploads disabled", "reason", "R2 settings not set")
	default:
		s.closeAll()
		return nil, err
	}

	router, err := NewAPI(deps)
	if err != nil {
		s.closeAll()
		return nil, err
	}

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s, nil
}

func (s *Server) openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	if cfg.Store == config.StoreMemory {
		s.log.Warn("using in-memory store, data is lost on exit")
		return memory.NewStore(), nil
	}

	if cfg.MigrateOnStart {
		if err := database.MigrateUp(cfg.DSN()); err != nil {
			return nil, err
		}
		s.log.Info("migrations applied")
	}

	db, err := database.Connect(ctx, cfg, s.log)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)
	return repository.NewPostgresStore(db), nil
}

// slugOptions applies the configured stop words and length bound. The
// bound never exceeds the slug column width.
func slugOptions(cfg *config.Config) []slug.Option {
	return []slug.Option{
		slug.WithStopWords(cfg.SlugStopWords...),
		slug.WithMaxLength(min(cfg.SlugMaxLength, model.MaxSlugLength)),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeAll()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// closeAll releases resources in reverse order of acquisition.
func (s *Server) closeAll() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.log.Warn("close resource", "error", err)
		}
	}
	s.closers = nil
}
