// package cache implements the shared response cache on Redis.
//
// Values are opaque serialized response bodies keyed by operation name and
// request parameters. Entries expire after [DefaultTTL]; concurrent writers
// for one key are harmless because cached values are idempotent re-derivations
// of the same upstream query.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is the response cache freshness window.
const DefaultTTL = 30 * time.Minute

const keyPrefix = "replay:"

// Store wraps a Redis client with the cache's get/populate contract.
type Store struct {
	client *redis.Client
}

// NewStore connects to the Redis instance addressed by redisURL
// (e.g. redis://localhost).
func NewStore(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Store{client: redis.NewClient(opt)}, nil
}

// NewStoreWithClient wraps an existing Redis client. Used by tests to point
// the store at a miniredis instance.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Get retrieves a cached response body. A miss returns (nil, nil) so callers
// can distinguish absence from a store failure.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}
	return data, nil
}

// Set stores a response body under key for the given TTL.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Key builds a deterministic cache key from an operation name and its request
// parameters. Parameters are sorted by name so equivalent requests share one
// key regardless of argument order.
func Key(operation string, params map[string]string) string {
	if len(params) == 0 {
		return keyPrefix + operation
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(keyPrefix)
	b.WriteString(operation)
	for _, name := range names {
		b.WriteString(":")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(params[name])
	}
	return b.String()
}
