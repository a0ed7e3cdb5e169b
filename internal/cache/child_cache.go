package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"hri-companion/internal/model"
)

// ChildCache keeps child profiles in Redis keyed by child id. Profiles are
// immutable, so there is no invalidation path, only TTL expiry.
type ChildCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewChildCache(client *redisv9.Client, ttl time.Duration) *ChildCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ChildCache{client: client, ttl: ttl}
}

func (c *ChildCache) Get(ctx context.Context, childID string) (*model.Child, bool, error) {
	raw, err := c.client.Get(ctx, c.key(childID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get child failed: %w", err)
	}

	var child model.Child
	if err := json.Unmarshal([]byte(raw), &child); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached child failed: %w", err)
	}
	return &child, true, nil
}

func (c *ChildCache) Set(ctx context.Context, child *model.Child) error {
	payload, err := json.Marshal(child)
	if err != nil {
		return fmt.Errorf("marshal child cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(child.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set child failed: %w", err)
	}
	return nil
}

func (c *ChildCache) key(childID string) string {
	return "child:profile:" + childID
}
