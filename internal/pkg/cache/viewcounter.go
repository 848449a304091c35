package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const viewCounterTTL = 5 * time.Minute

// FlushFunc persists the accumulated count for a key to durable storage.
type FlushFunc func(ctx context.Context, key string, count int64) error

// ViewCounter accumulates view increments in Redis and flushes them to
// durable storage every flushEvery-th increment. This trades exact
// real-time accuracy for write reduction on a hot counter.
//
// Increment and Flush are separate operations on purpose: the flush
// policy is part of the contract, not an implicit side effect. The
// counter holds only the delta since the last flush; each flush hands
// that delta to the FlushFunc and resets the counter, so durable
// storage accumulates while the cache never re-sends old views.
type ViewCounter struct {
	rdb        *redis.Client
	flushEvery int64
	flush      FlushFunc

	mu    sync.Mutex
	local map[string]int64    // fallback when Redis is unavailable
	keys  map[string]struct{} // keys touched since startup, for FlushAll
}

// NewViewCounter creates a view counter. flushEvery <= 0 flushes on every increment.
func NewViewCounter(rdb *redis.Client, flushEvery int, flush FlushFunc) *ViewCounter {
	if flushEvery <= 0 {
		flushEvery = 1
	}
	return &ViewCounter{
		rdb:        rdb,
		flushEvery: int64(flushEvery),
		flush:      flush,
		local:      make(map[string]int64),
		keys:       make(map[string]struct{}),
	}
}

// Increment bumps the counter for key and returns the pending count
// since the last flush. Every flushEvery-th increment the pending
// count is flushed to durable storage and the counter resets. No
// ordering guarantee relative to concurrent durable reads.
func (c *ViewCounter) Increment(ctx context.Context, key string) (int64, error) {
	count, err := c.bump(ctx, key)
	if err != nil {
		return 0, err
	}

	if count%c.flushEvery == 0 {
		if err := c.flushAndReset(ctx, key, count); err != nil {
			return count, err
		}
	}

	return count, nil
}

// Flush forces the pending count for key to durable storage.
func (c *ViewCounter) Flush(ctx context.Context, key string) error {
	count, err := c.current(ctx, key)
	if err != nil {
		return err
	}
	if count <= 0 {
		return nil
	}
	return c.flushAndReset(ctx, key, count)
}

// FlushAll drains every pending counter to durable storage. Called on
// shutdown so buffered views survive a restart.
func (c *ViewCounter) FlushAll(ctx context.Context) error {
	c.mu.Lock()
	keys := make([]string, 0, len(c.keys))
	for k := range c.keys {
		keys = append(keys, k)
	}
	c.mu.Unlock()

	var firstErr error
	for _, key := range keys {
		if err := c.Flush(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// flushAndReset hands count to durable storage and subtracts it from
// the counter. Increments racing in between survive the subtraction.
func (c *ViewCounter) flushAndReset(ctx context.Context, key string, count int64) error {
	if err := c.flush(ctx, key, count); err != nil {
		return err
	}

	if c.rdb == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.local[key] -= count
		if c.local[key] <= 0 {
			delete(c.local, key)
		}
		return nil
	}
	return c.rdb.DecrBy(ctx, key, count).Err()
}

func (c *ViewCounter) bump(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	c.keys[key] = struct{}{}
	if c.rdb == nil {
		c.local[key]++
		count := c.local[key]
		c.mu.Unlock()
		return count, nil
	}
	c.mu.Unlock()

	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	c.rdb.Expire(ctx, key, viewCounterTTL)
	return count, nil
}

func (c *ViewCounter) current(ctx context.Context, key string) (int64, error) {
	if c.rdb == nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.local[key], nil
	}

	count, err := c.rdb.Get(ctx, key).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
