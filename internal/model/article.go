package model

import (
	"errors"
	"time"
)

// Article is a blog post. Slug is nil until the article is first saved.
type Article struct {
	ID          int64     `db:"id"`
	Slug        *string   `db:"slug"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Body        string    `db:"body"`
	AuthorID    int64     `db:"author_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	// Joined fields (not in articles table)
	TagList []string `db:"-"`
	Author  *User    `db:"-"`
}

// SlugValue returns the slug or "" when it has not been assigned.
func (a *Article) SlugValue() string {
	if a.Slug == nil {
		return ""
	}
	return *a.Slug
}

// ArticleView is an article enriched with viewer-relative fields.
type ArticleView struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int       `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

type ArticleResponse struct {
	Article ArticleView `json:"article"`
}

type ArticleListResponse struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int           `json:"articlesCount"`
}

// CreateArticleRequest is the validated payload of POST /articles.
type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

// UpdateArticleRequest is the validated payload of PUT /articles/{slug}.
// Nil fields are left unchanged; a non-nil TagList replaces the tag set.
type UpdateArticleRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	TagList     *[]string `json:"tagList"`
}

// ArticleFilter selects articles for listing. Filters compose with AND.
type ArticleFilter struct {
	Tag         string
	Author      string
	FavoritedBy string
	FeedOf      int64 // only articles by authors this user follows
	Limit       int   // 0 means unbounded
	Offset      int
}

// FavoriteStat is the favorite count of an article plus the viewer's mark.
type FavoriteStat struct {
	Count     int
	Favorited bool
}

const (
	MaxTitleLength  = 255
	MaxSlugLength   = 200
	DefaultPageSize = 20
)

// Article errors
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrSlugExists      = errors.New("slug already exists")
)
