package service

import (
	"context"
	"fmt"

	"conduit/internal/authz"
	"conduit/internal/model"
)

// List returns one page of articles matching filter, newest first, with
// the size of the whole filtered set.
func (s *ArticleService) List(ctx context.Context, id authz.Identity, filter model.ArticleFilter) (*model.ArticleListResponse, error) {
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	filter.FeedOf = 0
	return s.list(ctx, viewer, filter)
}

// Feed lists articles by the authors the caller follows.
func (s *ArticleService) Feed(ctx context.Context, id authz.Identity, limit, offset int) (*model.ArticleListResponse, error) {
	if err := authz.RequireIdentity(id); err != nil {
		return nil, err
	}
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, model.ErrAuthenticationRequired
	}

	return s.list(ctx, viewer, model.ArticleFilter{FeedOf: viewer.ID, Limit: limit, Offset: offset})
}

func (s *ArticleService) list(ctx context.Context, viewer *model.User, filter model.ArticleFilter) (*model.ArticleListResponse, error) {
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	views, err := s.present.articleViews(ctx, viewer, articles)
	if err != nil {
		return nil, err
	}

	return &model.ArticleListResponse{Articles: views, ArticlesCount: total}, nil
}
