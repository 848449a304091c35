package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/pkg/response"
)

// RateLimiter throttles write requests with a sliding window kept in a
// Redis sorted set. Each request adds a timestamped member; members
// older than the window are trimmed before counting.
type RateLimiter struct {
	rdb      *redis.Client
	requests int
	window   time.Duration
}

// NewRateLimiter creates a rate limiter allowing requests per window
func NewRateLimiter(rdb *redis.Client, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		rdb:      rdb,
		requests: requests,
		window:   window,
	}
}

// Limit returns middleware that enforces the rate limit. Requests are
// keyed by client IP plus user ID, so authenticated users on a shared
// IP don't exhaust each other's quota. Without Redis the limiter is a
// no-op rather than blocking all traffic.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		identity := "anonymous"
		if userID := GetUserID(r.Context()); userID != uuid.Nil {
			identity = userID.String()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", ClientIP(r), identity)

		ctx := r.Context()
		now := time.Now()
		windowStart := now.Add(-rl.window)

		pipe := rl.rdb.Pipeline()
		pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
		countCmd := pipe.ZCard(ctx, key)
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: fmt.Sprintf("%d", now.UnixNano()),
		})
		pipe.Expire(ctx, key, rl.window)

		if _, err := pipe.Exec(ctx); err != nil {
			// Fail open on Redis errors
			log.Warn().Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if countCmd.Val() >= int64(rl.requests) {
			response.TooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
