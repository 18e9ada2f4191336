package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types for the article stream
const (
	EventArticleCreated   = "article_created"
	EventArticleUpdated   = "article_updated"
	EventArticleDeleted   = "article_deleted"
	EventArticleFavorited = "article_favorited"
	EventUserFollowed     = "user_followed"
)

// StreamArticles is the Redis stream external consumers read from.
const StreamArticles = "stream:articles"

// ArticleEvent is the payload appended to the article stream.
type ArticleEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix seconds

	// Article events
	Slug      string   `json:"slug,omitempty"`
	ArticleID int64    `json:"article_id,omitempty"`
	AuthorID  int64    `json:"author_id,omitempty"`
	Tags      []string `json:"tags,omitempty"`

	// Actor of follow/favorite events
	UserID     int64 `json:"user_id,omitempty"`
	FolloweeID int64 `json:"followee_id,omitempty"`
}

func newEvent(eventType string) ArticleEvent {
	return ArticleEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
	}
}

// NewArticleEvent builds an event for a created, updated or deleted article.
func NewArticleEvent(eventType string, articleID, authorID int64, slug string, tags []string) ArticleEvent {
	e := newEvent(eventType)
	e.ArticleID = articleID
	e.AuthorID = authorID
	e.Slug = slug
	e.Tags = tags
	return e
}

func NewArticleFavoritedEvent(articleID, userID int64, slug string) ArticleEvent {
	e := newEvent(EventArticleFavorited)
	e.ArticleID = articleID
	e.UserID = userID
	e.Slug = slug
	return e
}

func NewUserFollowedEvent(followerID, followeeID int64) ArticleEvent {
	e := newEvent(EventUserFollowed)
	e.UserID = followerID
	e.FolloweeID = followeeID
	return e
}

// ToMap converts the event to XADD field-value pairs. The full event is
// serialized into "data".
func (e ArticleEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseArticleEvent decodes an event from Redis stream message values.
func ParseArticleEvent(values map[string]interface{}) (ArticleEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return ArticleEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event ArticleEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return ArticleEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
