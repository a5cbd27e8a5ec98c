package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/assistant/dto"
	"github.com/fekuna/omnipos-assistant-service/pkg/cache"
)

const runKeyPrefix = "assistant:run:"

// RedisRunCache stores views of terminal runs as JSON. Runs in any other
// status can still change and are never written.
type RedisRunCache struct {
	client *cache.RedisClient
	ttl    time.Duration
}

func NewRedisRunCache(client *cache.RedisClient, ttl time.Duration) *RedisRunCache {
	return &RedisRunCache{client: client, ttl: ttl}
}

// Get returns cache.ErrMiss when the run is not cached.
func (c *RedisRunCache) Get(ctx context.Context, runID string) (*dto.RunView, error) {
	var view dto.RunView
	if err := c.client.GetJSON(ctx, runKeyPrefix+runID, &view); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, err
		}
		return nil, fmt.Errorf("get cached run: %w", err)
	}
	if view.Run == nil {
		return nil, cache.ErrMiss
	}
	return &view, nil
}

func (c *RedisRunCache) Set(ctx context.Context, view *dto.RunView) error {
	if view.Run == nil || !view.Run.Status.Terminal() {
		return nil
	}
	return c.client.SetJSON(ctx, runKeyPrefix+view.Run.ID, view, c.ttl)
}
