package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Store wraps Redis for read-mostly cached lists.
// A cache miss is always recomputable from durable storage, so every
// method degrades to the loader when Redis is unavailable.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a cache store. A nil client disables caching.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// GetOrSet returns the cached value for key, or loads, caches and returns it.
// dest must be a pointer; values are stored as JSON.
func (s *Store) GetOrSet(ctx context.Context, key string, ttl time.Duration, dest interface{}, load func() (interface{}, error)) error {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if err := json.Unmarshal(raw, dest); err == nil {
				return nil
			}
			// Corrupt entry, fall through to reload
		}
	}

	value, err := load()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache set failed")
		}
	}

	return json.Unmarshal(data, dest)
}

// Invalidate removes cached entries.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if s.rdb == nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidate failed")
	}
}
