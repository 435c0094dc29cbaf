// Package cache holds the Redis-backed event listing cache. Every
// method is safe on a nil receiver, so callers running without Redis
// simply always miss.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uuzor/mocalake/models"
)

const eventListKey = "cache:events:all"

type EventCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewEventCache(redisClient *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{redis: redisClient, ttl: ttl}
}

func (c *EventCache) GetEvents(ctx context.Context) ([]models.Event, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, eventListKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("event cache read failed: %v", err)
		return nil, false
	}
	var events []models.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		log.Printf("event cache decode failed: %v", err)
		return nil, false
	}
	return events, true
}

func (c *EventCache) SetEvents(ctx context.Context, events []models.Event) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, eventListKey, data, c.ttl).Err(); err != nil {
		log.Printf("event cache write failed: %v", err)
	}
}

func (c *EventCache) Invalidate(ctx context.Context) {
	if c == nil || c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, eventListKey).Err(); err != nil {
		log.Printf("event cache invalidate failed: %v", err)
	}
}
