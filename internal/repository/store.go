package repository

import "github.com/jmoiron/sqlx"

// NewPostgresStore wires every repository over db.
func NewPostgresStore(db *sqlx.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Follows:  NewFollowRepository(db),
		Articles: NewArticleRepository(db),
		Tags:     NewTagRepository(db),
		Comments: NewCommentRepository(db),
	}
}
