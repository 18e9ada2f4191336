package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"conduit/internal/model"
)

const articleColumns = `a.id, a.slug, a.title, a.description, a.body, a.author_id, a.created_at, a.updated_at`

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts an article and its tag associations in a transaction.
func (r *articleRepository) Create(ctx context.Context, a *model.Article, tags []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (slug, title, description, body, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowxContext(ctx, query, a.Slug, a.Title, a.Description, a.Body, a.AuthorID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapSlugConflict(err, "insert article")
	}

	if a.TagList, err = setArticleTags(ctx, tx, a.ID, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetBySlug retrieves a single article with its tags.
func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	query := fmt.Sprintf(`SELECT %s FROM articles a WHERE a.slug = $1`, articleColumns)

	var a model.Article
	err := r.db.GetContext(ctx, &a, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	tags, err := r.tagsFor(ctx, []int64{a.ID})
	if err != nil {
		return nil, err
	}
	a.TagList = tagsOrEmpty(tags[a.ID])

	return &a, nil
}

func (r *articleRepository) Update(ctx context.Context, a *model.Article, tags *[]string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE articles
		SET slug = $1, title = $2, description = $3, body = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err = tx.QueryRowxContext(ctx, query, a.Slug, a.Title, a.Description, a.Body, a.ID).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrArticleNotFound
	}
	if err != nil {
		return mapSlugConflict(err, "update article")
	}

	if tags != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM article_tags WHERE article_id = $1`, a.ID); err != nil {
			return fmt.Errorf("clear article tags: %w", err)
		}
		if a.TagList, err = setArticleTags(ctx, tx, a.ID, *tags); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Delete hard-deletes an article. Tags, favorites and comments cascade.
func (r *articleRepository) Delete(ctx context.Context, articleID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, articleID)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)`, slug, excludeID)
	if err != nil {
		return false, fmt.Errorf("check slug existence: %w", err)
	}
	return exists, nil
}

// List applies the filter, counts the whole filtered set, then fetches one page.
func (r *articleRepository) List(ctx context.Context, f model.ArticleFilter) ([]model.Article, int, error) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Tag != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM article_tags at JOIN tags t ON t.id = at.tag_id
			WHERE at.article_id = a.id AND t.name = `+arg(f.Tag)+`)`)
	}
	if f.Author != "" {
		conds = append(conds, `a.author_id = (SELECT id FROM users WHERE username = `+arg(f.Author)+`)`)
	}
	if f.FavoritedBy != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM favorites fv JOIN users u ON u.id = fv.user_id
			WHERE fv.article_id = a.id AND u.username = `+arg(f.FavoritedBy)+`)`)
	}
	if f.FeedOf != 0 {
		conds = append(conds, `a.author_id IN (SELECT followee_id FROM follows WHERE follower_id = `+arg(f.FeedOf)+`)`)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM articles a `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM articles a %s ORDER BY a.created_at DESC, a.id DESC`, articleColumns, where)
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	articles := []model.Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}

	ids := make([]int64, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
	}
	tags, err := r.tagsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range articles {
		articles[i].TagList = tagsOrEmpty(tags[articles[i].ID])
	}

	return articles, total, nil
}

func (r *articleRepository) Favorite(ctx context.Context, userID, articleID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("favorite article: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *articleRepository) Unfavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND article_id = $2`, userID, articleID)
	if err != nil {
		return false, fmt.Errorf("unfavorite article: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return rows > 0, nil
}

// FavoriteStats counts favorites per article and marks the viewer's own in one query.
func (r *articleRepository) FavoriteStats(ctx context.Context, viewerID int64, articleIDs []int64) (map[int64]model.FavoriteStat, error) {
	stats := make(map[int64]model.FavoriteStat, len(articleIDs))
	if len(articleIDs) == 0 {
		return stats, nil
	}

	type statRow struct {
		ArticleID int64 `db:"article_id"`
		Count     int   `db:"count"`
		Favorited bool  `db:"favorited"`
	}
	var rows []statRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT article_id, COUNT(*) AS count, BOOL_OR(user_id = $2) AS favorited
		FROM favorites
		WHERE article_id = ANY($1)
		GROUP BY article_id
	`, pq.Array(articleIDs), viewerID)
	if err != nil {
		return nil, fmt.Errorf("favorite stats: %w", err)
	}

	for _, row := range rows {
		stats[row.ArticleID] = model.FavoriteStat{Count: row.Count, Favorited: row.Favorited}
	}
	return stats, nil
}

// tagsFor loads tag names per article, sorted by name.
func (r *articleRepository) tagsFor(ctx context.Context, articleIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	type tagRow struct {
		ArticleID int64  `db:"article_id"`
		Name      string `db:"name"`
	}
	var rows []tagRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT at.article_id, t.name
		FROM article_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.article_id = ANY($1)
		ORDER BY t.name
	`, pq.Array(articleIDs))
	if err != nil {
		return nil, fmt.Errorf("get article tags: %w", err)
	}

	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], row.Name)
	}
	return result, nil
}

// setArticleTags links the named tags (creating missing ones) to an article.
func setArticleTags(ctx context.Context, tx *sqlx.Tx, articleID int64, names []string) ([]string, error) {
	tags, err := getOrCreateTags(ctx, tx, names)
	if err != nil {
		return nil, err
	}

	list := make([]string, 0, len(tags))
	for _, t := range tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, t.ID)
		if err != nil {
			return nil, fmt.Errorf("link tag %q: %w", t.Name, err)
		}
		list = append(list, t.Name)
	}
	sort.Strings(list)
	return list, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func mapSlugConflict(err error, msg string) error {
	if constraint, ok := uniqueConstraint(err); ok && strings.Contains(constraint, "slug") {
		return model.ErrSlugExists
	}
	return fmt.Errorf("%s: %w", msg, err)
}
