package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"conduit/internal/authz"
	"conduit/internal/cache"
	"conduit/internal/model"
	"conduit/internal/queue"
	"conduit/internal/repository"
	"conduit/internal/slug"
)

// slugAttempts bounds retries when a concurrent writer takes the slug
// between the uniqueness check and the insert.
const slugAttempts = 3

// ArticleService implements article CRUD, favorites and listing.
type ArticleService struct {
	users     repository.UserRepository
	articles  repository.ArticleRepository
	present   *presenter
	slugs     *slug.Generator
	tagCache  cache.TagCache
	publisher queue.Publisher
	log       *slog.Logger
}

func NewArticleService(
	store *repository.Store,
	slugs *slug.Generator,
	tagCache cache.TagCache,
	publisher queue.Publisher,
	log *slog.Logger,
) *ArticleService {
	return &ArticleService{
		users:     store.Users,
		articles:  store.Articles,
		present:   newPresenter(store),
		slugs:     slugs,
		tagCache:  tagCache,
		publisher: publisher,
		log:       log.With("service", "article"),
	}
}

// Get returns the article at slug as seen by id.
func (s *ArticleService) Get(ctx context.Context, id authz.Identity, slugValue string) (*model.ArticleView, error) {
	article, err := s.articles.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	return s.present.articleView(ctx, viewer, article)
}

// Create stores a new article authored by the caller under a fresh unique slug.
func (s *ArticleService) Create(ctx context.Context, id authz.Identity, req *model.CreateArticleRequest) (*model.ArticleView, error) {
	author, err := resolveActor(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		AuthorID:    author.ID,
	}
	tags := dedupeTags(req.TagList)

	err = s.withUniqueSlug(ctx, article, func() error {
		return s.articles.Create(ctx, article, tags)
	})
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	if len(tags) > 0 {
		s.invalidateTags(ctx)
	}
	s.publish(ctx, queue.NewArticleEvent(queue.EventArticleCreated, article.ID, author.ID, article.SlugValue(), article.TagList))
	s.log.Info("article created", "article_id", article.ID, "slug", article.SlugValue(), "author_id", author.ID)

	return s.present.articleView(ctx, author, article)
}

// EnsureExists returns model.ErrArticleNotFound when no article holds slugValue.
func (s *ArticleService) EnsureExists(ctx context.Context, slugValue string) error {
	if _, err := s.articles.GetBySlug(ctx, slugValue); err != nil {
		return err
	}
	return nil
}

// Update applies the non-nil fields of req. The slug is re-derived only
// when the title actually changes; a non-nil tag list replaces the tag set.
func (s *ArticleService) Update(ctx context.Context, id authz.Identity, slugValue string, req *model.UpdateArticleRequest) (*model.ArticleView, error) {
	article, err := s.articles.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	editor, err := resolveActor(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	titleChanged := req.Title != nil && *req.Title != article.Title
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.Body != nil {
		article.Body = *req.Body
	}

	var tags *[]string
	if req.TagList != nil {
		deduped := dedupeTags(*req.TagList)
		tags = &deduped
	}

	update := func() error { return s.articles.Update(ctx, article, tags) }
	if titleChanged {
		err = s.withUniqueSlug(ctx, article, update)
	} else {
		err = update()
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if tags != nil {
		s.invalidateTags(ctx)
	}
	s.publish(ctx, queue.NewArticleEvent(queue.EventArticleUpdated, article.ID, article.AuthorID, article.SlugValue(), article.TagList))

	return s.present.articleView(ctx, editor, article)
}

// Delete removes the article with its comments, favorites and tag links.
func (s *ArticleService) Delete(ctx context.Context, id authz.Identity, slugValue string) error {
	article, err := s.articles.GetBySlug(ctx, slugValue)
	if err != nil {
		return err
	}
	if _, err := resolveActor(ctx, s.users, id); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, article.ID); err != nil {
		return err
	}

	s.publish(ctx, queue.NewArticleEvent(queue.EventArticleDeleted, article.ID, article.AuthorID, slugValue, nil))
	s.log.Info("article deleted", "article_id", article.ID, "slug", slugValue)
	return nil
}

// Favorite marks the article for the caller. Repeating it is a no-op.
func (s *ArticleService) Favorite(ctx context.Context, id authz.Identity, slugValue string) (*model.ArticleView, error) {
	return s.setFavorite(ctx, id, slugValue, true)
}

// Unfavorite removes the caller's mark. Repeating it is a no-op.
func (s *ArticleService) Unfavorite(ctx context.Context, id authz.Identity, slugValue string) (*model.ArticleView, error) {
	return s.setFavorite(ctx, id, slugValue, false)
}

func (s *ArticleService) setFavorite(ctx context.Context, id authz.Identity, slugValue string, on bool) (*model.ArticleView, error) {
	article, err := s.articles.GetBySlug(ctx, slugValue)
	if err != nil {
		return nil, err
	}
	user, err := resolveActor(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	if on {
		added, err := s.articles.Favorite(ctx, user.ID, article.ID)
		if err != nil {
			return nil, err
		}
		if added {
			s.publish(ctx, queue.NewArticleFavoritedEvent(article.ID, user.ID, slugValue))
		}
	} else {
		if _, err := s.articles.Unfavorite(ctx, user.ID, article.ID); err != nil {
			return nil, err
		}
	}

	return s.present.articleView(ctx, user, article)
}

// withUniqueSlug assigns a slug derived from the article title and runs
// write, retrying with a new slug if the store reports a collision.
func (s *ArticleService) withUniqueSlug(ctx context.Context, article *model.Article, write func() error) error {
	exists := func(ctx context.Context, candidate string) (bool, error) {
		return s.articles.SlugExists(ctx, candidate, article.ID)
	}

	var err error
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		var value string
		if value, err = s.slugs.Unique(ctx, article.Title, exists); err != nil {
			return err
		}
		article.Slug = &value

		if err = write(); !errors.Is(err, model.ErrSlugExists) {
			return err
		}
		s.log.Warn("slug taken concurrently, retrying", "slug", value, "attempt", attempt)
	}
	return err
}

func (s *ArticleService) invalidateTags(ctx context.Context) {
	if s.tagCache == nil {
		return
	}
	if err := s.tagCache.Invalidate(ctx); err != nil {
		s.log.Warn("failed to invalidate tag cache", "error", err)
	}
}

// publish appends event to the article stream. Failures are logged only.
func (s *ArticleService) publish(ctx context.Context, event queue.ArticleEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := s.publisher.Publish(ctx, queue.StreamArticles, event); err != nil {
		s.log.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}

// dedupeTags drops repeated names, keeping first occurrences in order.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
