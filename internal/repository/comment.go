package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"conduit/internal/model"
)

const commentColumns = `id, article_id, author_id, body, created_at, updated_at`

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment and fills its ID and timestamps.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (article_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, c.ArticleID, c.AuthorID, c.Body).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID returns a comment only if it belongs to articleID.
func (r *commentRepository) GetByID(ctx context.Context, articleID, commentID int64) (*model.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1 AND article_id = $2`, commentColumns)

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, commentID, articleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID int64) ([]model.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC, id DESC
	`, commentColumns)

	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, articleID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, articleID, commentID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND article_id = $2`, commentID, articleID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
