package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// TagsKey holds the sorted tag list as a JSON array.
	TagsKey = "conduit:tags"

	// TagsTTL bounds staleness if an invalidation is lost.
	TagsTTL = 10 * time.Minute
)

// TagCache caches the result of GET /tags.
type TagCache interface {
	// Get returns the cached names and whether the cache was populated.
	Get(ctx context.Context) ([]string, bool, error)
	Set(ctx context.Context, names []string) error
	Invalidate(ctx context.Context) error
}

// RedisTagCache implements TagCache on a single Redis string key.
type RedisTagCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewTagCache(client *redis.Client, log *slog.Logger) *RedisTagCache {
	return &RedisTagCache{client: client, ttl: TagsTTL, log: log.With("component", "tag_cache")}
}

func (c *RedisTagCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, TagsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("tag cache miss")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read tag cache: %w", err)
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, false, fmt.Errorf("decode tag cache: %w", err)
	}
	c.log.Debug("tag cache hit", "count", len(names))
	return names, true, nil
}

func (c *RedisTagCache) Set(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode tag cache: %w", err)
	}
	if err := c.client.Set(ctx, TagsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write tag cache: %w", err)
	}
	return nil
}

func (c *RedisTagCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, TagsKey).Err(); err != nil {
		return fmt.Errorf("invalidate tag cache: %w", err)
	}
	return nil
}
