// Package memory is an in-process implementation of the repository
// interfaces. It backs `serve --store=memory` and the HTTP tests.
package memory

import (
	"sync"
	"time"

	"conduit/internal/model"
	"conduit/internal/repository"
)

type followKey struct{ follower, followee int64 }

type favoriteKey struct{ user, article int64 }

// db holds every table behind one lock so cross-table operations
// (cascading deletes, filtered listing) see a consistent snapshot.
type db struct {
	mu  sync.RWMutex
	now func() time.Time

	nextUserID    int64
	nextArticleID int64
	nextTagID     int64
	nextCommentID int64

	users       map[int64]*model.User
	follows     map[followKey]time.Time
	articles    map[int64]*model.Article
	tags        map[string]int64
	articleTags map[int64]map[string]struct{}
	favorites   map[favoriteKey]struct{}
	comments    map[int64]*model.Comment
}

// Option configures the in-memory store.
type Option func(*db)

// WithClock replaces time.Now, mostly so tests get distinct timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *db) { d.now = now }
}

// NewStore returns a fresh, empty store.
func NewStore(opts ...Option) *repository.Store {
	d := &db{
		now:         time.Now,
		users:       make(map[int64]*model.User),
		follows:     make(map[followKey]time.Time),
		articles:    make(map[int64]*model.Article),
		tags:        make(map[string]int64),
		articleTags: make(map[int64]map[string]struct{}),
		favorites:   make(map[favoriteKey]struct{}),
		comments:    make(map[int64]*model.Comment),
	}
	for _, opt := range opts {
		opt(d)
	}

	return &repository.Store{
		Users:    &userRepository{d},
		Follows:  &followRepository{d},
		Articles: &articleRepository{d},
		Tags:     &tagRepository{d},
		Comments: &commentRepository{d},
	}
}

func (d *db) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Microsecond)
}
