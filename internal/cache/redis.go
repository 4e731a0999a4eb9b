package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

// SourceCache keeps the last successful fetch per source. Entries never
// expire; readers decide whether a stale entry is acceptable.
type SourceCache interface {
	Get(ctx context.Context, source domain.Source) (*domain.CachedSource, error)
	Set(ctx context.Context, source domain.Source, items []domain.ContentItem) error
	Ping(ctx context.Context) error
	Clear(ctx context.Context) error
}

type Cache struct {
	client *redis.Client
	now    func() time.Time
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, now: time.Now}
}

func buildKey(source domain.Source) string {
	return fmt.Sprintf("content:source:%s", source)
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, source domain.Source) (*domain.CachedSource, error) {
	key := buildKey(source)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached source %s: %w", source, err)
	}

	var entry domain.CachedSource
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("unmarshal cached source %s: %w", key, err)
	}
	return &entry, nil
}

func (c *Cache) Set(ctx context.Context, source domain.Source, items []domain.ContentItem) error {
	val, err := json.Marshal(domain.CachedSource{
		Source:    source,
		Items:     items,
		FetchedAt: c.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal cached source: %w", err)
	}

	if err := c.client.Set(ctx, buildKey(source), val, 0).Err(); err != nil {
		return fmt.Errorf("set cached source %s: %w", source, err)
	}
	return nil
}

// Clear removes every cached source entry.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "content:source:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
