package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultMaxLen caps the stream length (approximate trimming).
const DefaultMaxLen = 100_000

// Publisher appends events to a stream.
type Publisher interface {
	// Publish returns the message ID assigned by Redis.
	Publish(ctx context.Context, stream string, event ArticleEvent) (messageID string, err error)
}

// RedisPublisher implements Publisher using Redis Streams.
type RedisPublisher struct {
	client *redis.Client
	maxLen int64
	log    *slog.Logger
}

func NewPublisher(client *redis.Client, log *slog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		maxLen: DefaultMaxLen,
		log:    log.With("component", "publisher"),
	}
}

// Publish adds an event with XADD using an auto-generated message ID.
func (p *RedisPublisher) Publish(ctx context.Context, stream string, event ArticleEvent) (string, error) {
	start := time.Now()

	values, err := event.ToMap()
	if err != nil {
		return "", fmt.Errorf("serialize event: %w", err)
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd to stream: %w", err)
	}

	p.log.Debug("event published",
		"stream", stream,
		"type", event.Type,
		"msg_id", messageID,
		"duration", time.Since(start),
	)
	return messageID, nil
}
