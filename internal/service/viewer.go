package service

import (
	"context"
	"errors"
	"fmt"

	"conduit/internal/authz"
	"conduit/internal/model"
	"conduit/internal/repository"
)

// resolveViewer returns the user behind id, or nil for anonymous callers
// and tokens whose user no longer exists.
func resolveViewer(ctx context.Context, users repository.UserRepository, id authz.Identity) (*model.User, error) {
	if id.IsAnonymous() {
		return nil, nil
	}
	u, err := users.GetByEmail(ctx, id.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve viewer: %w", err)
	}
	return u, nil
}

// resolveActor is resolveViewer for writes: anonymous callers and
// identities without a user record are denied.
func resolveActor(ctx context.Context, users repository.UserRepository, id authz.Identity) (*model.User, error) {
	if err := authz.CanWrite(id); err != nil {
		return nil, err
	}
	u, err := resolveViewer(ctx, users, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, model.ErrPermissionDenied
	}
	return u, nil
}

func viewerID(u *model.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

// presenter turns stored rows into viewer-relative views with a fixed number
// of batch lookups per page.
type presenter struct {
	users    repository.UserRepository
	follows  repository.FollowRepository
	articles repository.ArticleRepository
}

func newPresenter(store *repository.Store) *presenter {
	return &presenter{users: store.Users, follows: store.Follows, articles: store.Articles}
}

func (p *presenter) profile(ctx context.Context, viewer *model.User, u *model.User) (model.Profile, error) {
	if viewer == nil {
		return model.NewProfile(u, false), nil
	}
	following, err := p.follows.Exists(ctx, viewer.ID, u.ID)
	if err != nil {
		return model.Profile{}, err
	}
	return model.NewProfile(u, following), nil
}

// authorProfiles loads every author once and marks the ones viewer follows.
func (p *presenter) authorProfiles(ctx context.Context, viewer *model.User, authorIDs []int64) (map[int64]model.Profile, error) {
	authors, err := p.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	following := map[int64]bool{}
	if viewer != nil {
		if following, err = p.follows.CheckFollows(ctx, viewer.ID, authorIDs); err != nil {
			return nil, err
		}
	}

	profiles := make(map[int64]model.Profile, len(authors))
	for id, u := range authors {
		profiles[id] = model.NewProfile(u, following[id])
	}
	return profiles, nil
}

func (p *presenter) articleViews(ctx context.Context, viewer *model.User, articles []model.Article) ([]model.ArticleView, error) {
	views := make([]model.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	ids := make([]int64, len(articles))
	authorIDs := make([]int64, 0, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
		authorIDs = append(authorIDs, a.AuthorID)
	}

	profiles, err := p.authorProfiles(ctx, viewer, uniqueIDs(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	stats, err := p.articles.FavoriteStats(ctx, viewerID(viewer), ids)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}

	for _, a := range articles {
		tags := a.TagList
		if tags == nil {
			tags = []string{}
		}
		stat := stats[a.ID]
		views = append(views, model.ArticleView{
			Slug:           a.SlugValue(),
			Title:          a.Title,
			Description:    a.Description,
			Body:           a.Body,
			TagList:        tags,
			CreatedAt:      model.Timestamp(a.CreatedAt),
			UpdatedAt:      model.Timestamp(a.UpdatedAt),
			Favorited:      stat.Favorited,
			FavoritesCount: stat.Count,
			Author:         profiles[a.AuthorID],
		})
	}
	return views, nil
}

func (p *presenter) articleView(ctx context.Context, viewer *model.User, a *model.Article) (*model.ArticleView, error) {
	views, err := p.articleViews(ctx, viewer, []model.Article{*a})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (p *presenter) commentViews(ctx context.Context, viewer *model.User, comments []model.Comment) ([]model.CommentView, error) {
	views := make([]model.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	profiles, err := p.authorProfiles(ctx, viewer, uniqueIDs(authorIDs))
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	for _, c := range comments {
		views = append(views, model.CommentView{
			ID:        c.ID,
			Body:      c.Body,
			CreatedAt: model.Timestamp(c.CreatedAt),
			UpdatedAt: model.Timestamp(c.UpdatedAt),
			Author:    profiles[c.AuthorID],
		})
	}
	return views, nil
}

func (p *presenter) commentView(ctx context.Context, viewer *model.User, c *model.Comment) (*model.CommentView, error) {
	views, err := p.commentViews(ctx, viewer, []model.Comment{*c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
