package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"article-hub/internal/domain/model"
)

// FeedCache holds a viewer's assembled home feed for a short TTL. A miss is
// reported with ok=false, never an error, so callers always fall through to
// the repository.
type FeedCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewFeedCache(client RedisClient, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

func feedKey(viewerID string) string {
	return fmt.Sprintf("home_feed:%s", viewerID)
}

func (c *FeedCache) Get(ctx context.Context, viewerID string) ([]model.ArticleView, bool) {
	data, err := c.client.Get(ctx, feedKey(viewerID))
	if err != nil {
		return nil, false
	}
	var views []model.ArticleView
	if err := json.Unmarshal([]byte(data), &views); err != nil {
		return nil, false
	}
	return views, true
}

func (c *FeedCache) Set(ctx context.Context, viewerID string, views []model.ArticleView) {
	data, err := json.Marshal(views)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, feedKey(viewerID), data, c.ttl)
}

// Invalidate drops a viewer's cached feed after any write that would change it.
func (c *FeedCache) Invalidate(ctx context.Context, viewerIDs ...string) {
	keys := make([]string, 0, len(viewerIDs))
	for _, id := range viewerIDs {
		keys = append(keys, feedKey(id))
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...)
	}
}
