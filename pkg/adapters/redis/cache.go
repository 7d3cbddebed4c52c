// Package redis provides a Redis-backed page cache, letting several
// rendering processes share fetched pages. Records are encoded with
// msgpack for compact storage of HTML blocks.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/veltran/swoop/pkg/domain"
)

// Cache implements ports.PageCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the expiration for cached pages.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached pages.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: "swoop:page:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

func (c *Cache) key(url string) string {
	return c.prefix + url
}

func (c *Cache) indexKey() string {
	return c.prefix + "index"
}

// Store persists the record under its resolved URL.
func (c *Cache) Store(ctx context.Context, record *domain.PageRecord) error {
	data, err := msgpack.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(record.URL), data, c.ttl)
	// Track keys in an index set so Clear doesn't have to scan the keyspace.
	pipe.SAdd(ctx, c.indexKey(), record.URL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Lookup retrieves the record for a resolved URL.
func (c *Cache) Lookup(ctx context.Context, url string) (*domain.PageRecord, error) {
	val, err := c.client.Get(ctx, c.key(url)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrPageNotCached
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var record domain.PageRecord
	if err := msgpack.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return &record, nil
}

// Remove deletes a single entry.
func (c *Cache) Remove(ctx context.Context, url string) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(url))
	pipe.SRem(ctx, c.indexKey(), url)
	_, err := pipe.Exec(ctx)
	return err
}

// Clear empties the cache by walking the index set.
func (c *Cache) Clear(ctx context.Context) error {
	urls, err := c.client.SMembers(ctx, c.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to list cached pages: %w", err)
	}

	pipe := c.client.Pipeline()
	for _, url := range urls {
		pipe.Del(ctx, c.key(url))
	}
	pipe.Del(ctx, c.indexKey())
	_, err = pipe.Exec(ctx)
	return err
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
