package repository

import (
	"context"
	"time"

	"conduit/internal/model"
)

type UserRepository interface {
	// Create inserts u and fills its ID and timestamps. A taken email or
	// username is reported as model.ErrEmailExists / model.ErrUsernameExists.
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *model.User) error
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// FollowRepository manages the follows association. Add and Remove are
// idempotent and report whether anything changed.
type FollowRepository interface {
	Add(ctx context.Context, followerID, followeeID int64) (bool, error)
	Remove(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	CheckFollows(ctx context.Context, followerID int64, followeeIDs []int64) (map[int64]bool, error)
}

type ArticleRepository interface {
	// Create inserts a and its tags (get-or-create by name) in one transaction.
	// A slug collision is reported as model.ErrSlugExists.
	Create(ctx context.Context, a *model.Article, tags []string) error
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	// Update writes a's editable fields and refreshes UpdatedAt. A non-nil
	// tags replaces the tag set.
	Update(ctx context.Context, a *model.Article, tags *[]string) error
	Delete(ctx context.Context, articleID int64) error
	// SlugExists reports whether another article than excludeID holds slug.
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	// List returns the filtered page ordered by created_at DESC and the size
	// of the whole filtered set.
	List(ctx context.Context, f model.ArticleFilter) ([]model.Article, int, error)
	// Favorite and Unfavorite are idempotent and report whether anything changed.
	Favorite(ctx context.Context, userID, articleID int64) (bool, error)
	Unfavorite(ctx context.Context, userID, articleID int64) (bool, error)
	// FavoriteStats returns counts per article; Favorited is set for viewerID (0 = anonymous).
	FavoriteStats(ctx context.Context, viewerID int64, articleIDs []int64) (map[int64]model.FavoriteStat, error)
}

type TagRepository interface {
	// List returns every tag name sorted by name.
	List(ctx context.Context) ([]string, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, articleID, commentID int64) (*model.Comment, error)
	// ListByArticle returns comments newest first.
	ListByArticle(ctx context.Context, articleID int64) ([]model.Comment, error)
	Delete(ctx context.Context, articleID, commentID int64) error
}

// Store bundles every repository of one backend.
type Store struct {
	Users    UserRepository
	Follows  FollowRepository
	Articles ArticleRepository
	Tags     TagRepository
	Comments CommentRepository
}
