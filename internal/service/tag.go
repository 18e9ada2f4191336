package service

import (
	"context"
	"fmt"
	"log/slog"

	"conduit/internal/cache"
	"conduit/internal/repository"
)

// TagService lists tags, read through the optional cache.
type TagService struct {
	repo  repository.TagRepository
	cache cache.TagCache
	log   *slog.Logger
}

// NewTagService accepts a nil cache.
func NewTagService(repo repository.TagRepository, c cache.TagCache, log *slog.Logger) *TagService {
	return &TagService{repo: repo, cache: c, log: log.With("service", "tag")}
}

// List returns every tag name sorted by name. Cache failures fall back
// to the store.
func (s *TagService) List(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		names, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn("tag cache read failed", "error", err)
		} else if ok {
			return names, nil
		}
	}

	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, names); err != nil {
			s.log.Warn("tag cache write failed", "error", err)
		}
	}
	return names, nil
}
