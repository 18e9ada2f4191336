package memory

import (
	"context"
	"sort"

	"conduit/internal/model"
)

type articleRepository struct{ *db }

func (r *articleRepository) Create(_ context.Context, a *model.Article, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.Slug != nil && r.slugTaken(*a.Slug, 0) {
		return model.ErrSlugExists
	}

	r.nextArticleID++
	a.ID = r.nextArticleID
	a.CreatedAt = r.timestamp()
	a.UpdatedAt = a.CreatedAt
	a.TagList = r.setTags(a.ID, tags)

	r.articles[a.ID] = cloneArticle(a)
	return nil
}

func (r *articleRepository) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.articles {
		if a.Slug != nil && *a.Slug == slug {
			out := cloneArticle(a)
			out.TagList = r.tagList(a.ID)
			return out, nil
		}
	}
	return nil, model.ErrArticleNotFound
}

func (r *articleRepository) Update(_ context.Context, a *model.Article, tags *[]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.articles[a.ID]
	if !ok {
		return model.ErrArticleNotFound
	}
	if a.Slug != nil && r.slugTaken(*a.Slug, a.ID) {
		return model.ErrSlugExists
	}

	stored.Slug = cloneSlug(a.Slug)
	stored.Title = a.Title
	stored.Description = a.Description
	stored.Body = a.Body
	stored.UpdatedAt = r.timestamp()
	a.UpdatedAt = stored.UpdatedAt

	if tags != nil {
		a.TagList = r.setTags(a.ID, *tags)
	}
	return nil
}

func (r *articleRepository) Delete(_ context.Context, articleID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[articleID]; !ok {
		return model.ErrArticleNotFound
	}
	delete(r.articles, articleID)
	delete(r.articleTags, articleID)
	for key := range r.favorites {
		if key.article == articleID {
			delete(r.favorites, key)
		}
	}
	for id, c := range r.comments {
		if c.ArticleID == articleID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *articleRepository) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slugTaken(slug, excludeID), nil
}

func (r *articleRepository) List(_ context.Context, f model.ArticleFilter) ([]model.Article, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.Article
	for _, a := range r.articles {
		if r.matches(a, f) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := min(f.Offset, total)
	end := total
	if f.Limit > 0 {
		end = min(start+f.Limit, total)
	}

	page := make([]model.Article, 0, end-start)
	for _, a := range matched[start:end] {
		out := cloneArticle(a)
		out.TagList = r.tagList(a.ID)
		page = append(page, *out)
	}
	return page, total, nil
}

func (r *articleRepository) Favorite(_ context.Context, userID, articleID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID, articleID}
	if _, ok := r.favorites[key]; ok {
		return false, nil
	}
	r.favorites[key] = struct{}{}
	return true, nil
}

func (r *articleRepository) Unfavorite(_ context.Context, userID, articleID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := favoriteKey{userID, articleID}
	if _, ok := r.favorites[key]; !ok {
		return false, nil
	}
	delete(r.favorites, key)
	return true, nil
}

func (r *articleRepository) FavoriteStats(_ context.Context, viewerID int64, articleIDs []int64) (map[int64]model.FavoriteStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]bool, len(articleIDs))
	for _, id := range articleIDs {
		wanted[id] = true
	}

	stats := make(map[int64]model.FavoriteStat, len(articleIDs))
	for key := range r.favorites {
		if !wanted[key.article] {
			continue
		}
		s := stats[key.article]
		s.Count++
		if viewerID != 0 && key.user == viewerID {
			s.Favorited = true
		}
		stats[key.article] = s
	}
	return stats, nil
}

func (r *articleRepository) matches(a *model.Article, f model.ArticleFilter) bool {
	if f.Tag != "" {
		if _, ok := r.articleTags[a.ID][f.Tag]; !ok {
			return false
		}
	}
	if f.Author != "" {
		author, ok := r.users[a.AuthorID]
		if !ok || author.Username != f.Author {
			return false
		}
	}
	if f.FavoritedBy != "" {
		fan := r.userIDByName(f.FavoritedBy)
		if _, ok := r.favorites[favoriteKey{fan, a.ID}]; fan == 0 || !ok {
			return false
		}
	}
	if f.FeedOf != 0 {
		if _, ok := r.follows[followKey{f.FeedOf, a.AuthorID}]; !ok {
			return false
		}
	}
	return true
}

func (r *articleRepository) userIDByName(username string) int64 {
	for id, u := range r.users {
		if u.Username == username {
			return id
		}
	}
	return 0
}

func (r *articleRepository) slugTaken(slug string, excludeID int64) bool {
	for id, a := range r.articles {
		if id != excludeID && a.Slug != nil && *a.Slug == slug {
			return true
		}
	}
	return false
}

// setTags replaces the tag set of an article and returns it sorted.
func (r *articleRepository) setTags(articleID int64, names []string) []string {
	set := make(map[string]struct{}, len(names))
	for _, t := range r.getOrCreateTags(names) {
		set[t.Name] = struct{}{}
	}
	r.articleTags[articleID] = set
	return r.tagList(articleID)
}

func (r *articleRepository) tagList(articleID int64) []string {
	list := make([]string, 0, len(r.articleTags[articleID]))
	for name := range r.articleTags[articleID] {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func cloneArticle(a *model.Article) *model.Article {
	out := *a
	out.Slug = cloneSlug(a.Slug)
	out.TagList = nil
	out.Author = nil
	return &out
}

func cloneSlug(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
