package invenio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/logging"

	"github.com/MESH-Research/invenio-stats-dashboard-sub001/internal/stats"
)

func init() {
	// The TUI owns the terminal; silence the Redis client globally.
	redis.SetLogger(&logging.VoidLogger{})
}

// CacheKey identifies one fetch's normalized model.
type CacheKey struct {
	CommunityID string
	StartYear   int
	EndYear     int
}

func (k CacheKey) String() string {
	return fmt.Sprintf("statsdash:model:%s:%d:%d", k.CommunityID, k.StartYear, k.EndYear)
}

// Cache stores normalized statistics models in Redis, each with the
// timestamp of the fetch that produced it. It is read before and written
// after every fetch so repeated dashboard sessions skip the expensive
// aggregation download.
type Cache struct {
	redis           *redis.Client
	ttl             time.Duration
	displayRedisURL string
}

// cacheEnvelope is the stored JSON payload.
type cacheEnvelope struct {
	FetchedAt time.Time   `json:"fetched_at"`
	Model     stats.Model `json:"model"`
}

// NewCache creates a Redis-backed model cache from a Redis URL.
func NewCache(redisURL string, ttl time.Duration) (*Cache, error) {
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.MaxRetries = -1
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second
	opts.PoolSize = 1

	return &Cache{
		redis:           redis.NewClient(opts),
		ttl:             ttl,
		displayRedisURL: sanitizeRedisURL(redisURL),
	}, nil
}

// DisplayRedisURL returns a sanitized URL safe for display.
func (c *Cache) DisplayRedisURL() string {
	return c.displayRedisURL
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.redis.Close()
}

// Get looks up the cached model for a key. A missing entry or an
// undecodable payload is a miss, not an error; errors are reserved for the
// connection itself.
func (c *Cache) Get(ctx context.Context, key CacheKey) (stats.Model, time.Time, bool, error) {
	raw, err := c.redis.Get(ctx, key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return stats.Model{}, time.Time{}, false, nil
	}
	if err != nil {
		return stats.Model{}, time.Time{}, false, fmt.Errorf("cache get: %w", err)
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// A stale or corrupt payload degrades to a refetch.
		return stats.Model{}, time.Time{}, false, nil
	}
	return envelope.Model, envelope.FetchedAt, true, nil
}

// Set stores the model for a key, stamped with the fetch time.
func (c *Cache) Set(ctx context.Context, key CacheKey, model stats.Model, fetchedAt time.Time) error {
	payload, err := json.Marshal(cacheEnvelope{FetchedAt: fetchedAt, Model: model})
	if err != nil {
		return fmt.Errorf("encode cached model: %w", err)
	}
	if err := c.redis.Set(ctx, key.String(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func sanitizeRedisURL(redisURL string) string {
	if redisURL == "" {
		return ""
	}
	parsed, err := url.Parse(redisURL)
	if err != nil {
		return redisURL
	}
	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = nil
		} else {
			parsed.User = url.User(username)
		}
	}
	return parsed.String()
}
