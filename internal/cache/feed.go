package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"minifeed/internal/model"
)

// FeedCachePrefix is the key prefix for per-viewer feed caches.
const FeedCachePrefix = "feed:user:"

// FeedCache fronts the feed query behind a read-through cache.
// Using an interface enables testing with mocks and potential future backends.
type FeedCache interface {
	// Get returns the cached page for (viewer, page, pageSize) and whether
	// it was present. A hit refreshes the viewer's expiry window.
	Get(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, bool, error)

	// Set stores a computed page and (re)starts the viewer's expiry window.
	Set(ctx context.Context, viewerID string, page, pageSize int, posts []model.PostResponse) error

	// Invalidate drops every cached page for the viewer at once. Called
	// whenever the viewer's followed set changes.
	Invalidate(ctx context.Context, viewerID string) error
}

// RedisFeedCache implements FeedCache with one Redis hash per viewer: the
// hash fields are "<page>:<pageSize>" and the values JSON-encoded pages.
// The TTL lives on the hash key, so every access slides the expiry for all
// of the viewer's cached pages together, and invalidation is a single DEL.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a FeedCache backed by Redis with a sliding TTL.
func NewFeedCache(client *redis.Client, ttl time.Duration) *RedisFeedCache {
	return &RedisFeedCache{client: client, ttl: ttl}
}

func feedKey(viewerID string) string {
	return FeedCachePrefix + viewerID
}

func pageField(page, pageSize int) string {
	return fmt.Sprintf("%d:%d", page, pageSize)
}

func (c *RedisFeedCache) Get(ctx context.Context, viewerID string, page, pageSize int) ([]model.PostResponse, bool, error) {
	key := feedKey(viewerID)

	raw, err := c.client.HGet(ctx, key, pageField(page, pageSize)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get feed page: %w", err)
	}

	var posts []model.PostResponse
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("decode feed page: %w", err)
	}

	// Sliding expiration: reading resets the countdown.
	c.client.Expire(ctx, key, c.ttl)

	return posts, true, nil
}

func (c *RedisFeedCache) Set(ctx context.Context, viewerID string, page, pageSize int, posts []model.PostResponse) error {
	key := feedKey(viewerID)

	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode feed page: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, pageField(page, pageSize), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set feed page: %w", err)
	}

	return nil
}

func (c *RedisFeedCache) Invalidate(ctx context.Context, viewerID string) error {
	if err := c.client.Del(ctx, feedKey(viewerID)).Err(); err != nil {
		return fmt.Errorf("invalidate feed: %w", err)
	}
	return nil
}
