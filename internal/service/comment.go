package service

import (
	"context"
	"fmt"
	"log/slog"

	"conduit/internal/authz"
	"conduit/internal/model"
	"conduit/internal/repository"
)

// CommentService manages comments under an article.
type CommentService struct {
	users    repository.UserRepository
	articles repository.ArticleRepository
	comments repository.CommentRepository
	present  *presenter
	log      *slog.Logger
}

func NewCommentService(store *repository.Store, log *slog.Logger) *CommentService {
	return &CommentService{
		users:    store.Users,
		articles: store.Articles,
		comments: store.Comments,
		present:  newPresenter(store),
		log:      log.With("service", "comment"),
	}
}

// List returns the article's comments, newest first.
func (s *CommentService) List(ctx context.Context, id authz.Identity, slug string) ([]model.CommentView, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticle(ctx, article.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return s.present.commentViews(ctx, viewer, comments)
}

func (s *CommentService) Get(ctx context.Context, id authz.Identity, slug string, commentID int64) (*model.CommentView, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, article.ID, commentID)
	if err != nil {
		return nil, err
	}
	viewer, err := resolveViewer(ctx, s.users, id)
	if err != nil {
		return nil, err
	}
	return s.present.commentView(ctx, viewer, comment)
}

func (s *CommentService) Create(ctx context.Context, id authz.Identity, slug string, req *model.CreateCommentRequest) (*model.CommentView, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	author, err := resolveActor(ctx, s.users, id)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ArticleID: article.ID,
		AuthorID:  author.ID,
		Body:      req.Body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("comment created", "comment_id", comment.ID, "article_id", article.ID, "author_id", author.ID)
	return s.present.commentView(ctx, author, comment)
}

// Delete removes a comment. Any authenticated user may delete any comment.
func (s *CommentService) Delete(ctx context.Context, id authz.Identity, slug string, commentID int64) error {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if _, err := s.comments.GetByID(ctx, article.ID, commentID); err != nil {
		return err
	}
	if _, err := resolveActor(ctx, s.users, id); err != nil {
		return err
	}

	return s.comments.Delete(ctx, article.ID, commentID)
}
