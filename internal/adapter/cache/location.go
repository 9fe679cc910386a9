// Package cache stores provider reference-data lookups. Offers are never cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/itnr/itnr-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces location entries in a shared Redis
	keyPrefix = "itnr:location:"

	// DefaultTTL applies when RedisConfig.TTL is not set.
	DefaultTTL = 24 * time.Hour

	pingTimeout = 5 * time.Second
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache is a domain.LocationCache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to Redis and pings it once.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return newRedisCache(client, cfg.TTL), nil
}

func newRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// GetLocation returns the cached location for key.
func (c *RedisCache) GetLocation(ctx context.Context, key string) (domain.ResolvedLocation, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResolvedLocation{}, false, nil
	}
	if err != nil {
		return domain.ResolvedLocation{}, false, fmt.Errorf("cache get %q: %w", key, err)
	}

	var loc domain.ResolvedLocation
	if err := json.Unmarshal(data, &loc); err != nil {
		// A corrupt entry behaves as a miss and gets overwritten
		return domain.ResolvedLocation{}, false, nil
	}
	return loc, true, nil
}

// SetLocation stores loc under key with the configured TTL.
func (c *RedisCache) SetLocation(ctx context.Context, key string, loc domain.ResolvedLocation) error {
	data, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache never stores anything. It is used when Redis is not configured.
type NoOpCache struct{}

// NewNoOpCache creates a NoOpCache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (NoOpCache) GetLocation(context.Context, string) (domain.ResolvedLocation, bool, error) {
	return domain.ResolvedLocation{}, false, nil
}

func (NoOpCache) SetLocation(context.Context, string, domain.ResolvedLocation) error {
	return nil
}

// Compile-time interface checks.
var (
	_ domain.LocationCache = (*RedisCache)(nil)
	_ domain.LocationCache = (*NoOpCache)(nil)
)
