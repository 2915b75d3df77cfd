package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"commons/internal/observability"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Store wraps an optional Redis client. Every method is a no-op or a miss
// when the client is nil, so callers never branch on cache availability.
type Store struct {
	client *redis.Client
	flight singleflight.Group
}

// NewStore returns a Store backed by client, which may be nil.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Client returns the underlying Redis client, or nil.
func (s *Store) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.client
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s.Client() == nil {
		return false, nil
	}
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if s.Client() == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Version reads a namespace's version counter. Missing counters read as 0.
func (s *Store) Version(ctx context.Context, namespace string) int64 {
	if s.Client() == nil {
		return 0
	}
	v, err := s.client.Get(ctx, VersionKey(namespace)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// BumpVersion advances a namespace's version, orphaning every key built from
// the previous one.
func (s *Store) BumpVersion(ctx context.Context, namespace string) {
	if s.Client() == nil {
		return
	}
	if err := s.client.Incr(ctx, VersionKey(namespace)).Err(); err != nil {
		observability.LogAsyncOperationError(ctx, "cache_bump_version", err, map[string]interface{}{
			"namespace": namespace,
		})
	}
}

// Aside tries Redis first. On a miss it calls fetch once per key across
// concurrent callers and stores the result with ttl. Cache failures fall
// through to fetch.
func Aside[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := s.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		observability.ListingCacheResults.WithLabelValues("error").Inc()
	case found:
		observability.ListingCacheResults.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		observability.ListingCacheResults.WithLabelValues("miss").Inc()
	}

	load := func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		_ = s.SetJSON(ctx, key, v, ttl)
		return v, nil
	}

	var v any
	if s == nil {
		v, err = load()
	} else {
		v, err, _ = s.flight.Do(key, load)
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
