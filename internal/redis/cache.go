package redis

import (
	"context"
	"encoding/json"
	"time"

	"eventhub/internal/domain/event"

	goredis "github.com/redis/go-redis/v9"
)

// Cache keys:
// - events:all    - fully expanded listing, 30s TTL
// - events:sorted - like-ordered listing, 30s TTL
// Both are dropped on every event mutation.
const (
	KeyAllEvents    = "events:all"
	KeySortedEvents = "events:sorted"
)

// CacheConfig contains configuration for caching
type CacheConfig struct {
	ListTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{ListTTL: 30 * time.Second}
}

// EventCache caches the two listing endpoints in Redis. All methods are safe
// on a nil receiver so the cache can be absent in tests and local setups.
type EventCache struct {
	client *goredis.Client
	config CacheConfig
}

func NewEventCache(client *goredis.Client, config CacheConfig) *EventCache {
	return &EventCache{client: client, config: config}
}

// GetList retrieves a cached listing. A miss returns (nil, nil).
func (c *EventCache) GetList(ctx context.Context, key string) ([]event.Event, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, key).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var events []event.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *EventCache) SetList(ctx context.Context, key string, events []event.Event) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.config.ListTTL).Err()
}

// Invalidate drops every cached listing. Called after any event mutation.
func (c *EventCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, KeyAllEvents, KeySortedEvents).Err()
}
