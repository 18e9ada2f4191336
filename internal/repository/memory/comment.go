package memory

import (
	"context"
	"sort"

	"conduit/internal/model"
)

type commentRepository struct{ *db }

func (r *commentRepository) Create(_ context.Context, c *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[c.ArticleID]; !ok {
		return model.ErrArticleNotFound
	}

	r.nextCommentID++
	c.ID = r.nextCommentID
	c.CreatedAt = r.timestamp()
	c.UpdatedAt = c.CreatedAt

	stored := *c
	stored.Author = nil
	r.comments[c.ID] = &stored
	return nil
}

func (r *commentRepository) GetByID(_ context.Context, articleID, commentID int64) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[commentID]
	if !ok || c.ArticleID != articleID {
		return nil, model.ErrCommentNotFound
	}
	out := *c
	return &out, nil
}

func (r *commentRepository) ListByArticle(_ context.Context, articleID int64) ([]model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := []model.Comment{}
	for _, c := range r.comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (r *commentRepository) Delete(_ context.Context, articleID, commentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[commentID]
	if !ok || c.ArticleID != articleID {
		return model.ErrCommentNotFound
	}
	delete(r.comments, commentID)
	return nil
}
