package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conduit/internal/model"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.SelectContext(ctx, &names, `SELECT name FROM tags ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return names, nil
}

// getOrCreateTags inserts missing names and returns all rows in input order.
// ON CONFLICT keeps concurrent writers from creating duplicate rows.
func getOrCreateTags(ctx context.Context, tx *sqlx.Tx, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO tags (name)
		SELECT unnest($1::varchar[])
		ON CONFLICT (name) DO NOTHING
	`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("insert tags: %w", err)
	}

	var rows []model.Tag
	if err := tx.SelectContext(ctx, &rows, `SELECT id, name FROM tags WHERE name = ANY($1)`, pq.Array(names)); err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}

	byName := make(map[string]model.Tag, len(rows))
	for _, t := range rows {
		byName[t.Name] = t
	}
	tags := make([]model.Tag, 0, len(names))
	for _, n := range names {
		if t, ok := byName[n]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}
