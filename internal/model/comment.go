package model

import (
	"errors"
	"time"
)

// Comment represents a comment on an article.
type Comment struct {
	ID        int64     `db:"id"`
	ArticleID int64     `db:"article_id"`
	AuthorID  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	Author    *User     `db:"-"` // Joined field
}

type CommentView struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
	Author    Profile   `json:"author"`
}

type CommentResponse struct {
	Comment CommentView `json:"comment"`
}

type CommentListResponse struct {
	Comments []CommentView `json:"comments"`
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// Comment errors
var (
	ErrCommentNotFound = errors.New("comment not found")
)
