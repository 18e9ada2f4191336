package memory

import (
	"context"
	"sort"

	"conduit/internal/model"
)

type tagRepository struct{ *db }

func (r *tagRepository) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// getOrCreateTags must be called with the write lock held.
func (d *db) getOrCreateTags(names []string) []model.Tag {
	tags := make([]model.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		id, ok := d.tags[name]
		if !ok {
			d.nextTagID++
			id = d.nextTagID
			d.tags[name] = id
		}
		tags = append(tags, model.Tag{ID: id, Name: name})
	}
	return tags
}
