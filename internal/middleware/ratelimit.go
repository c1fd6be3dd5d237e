package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trinitynoble/BudgetBuddyProject/internal/logger"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter enforces a per-client sliding window over a Redis sorted
// set of request timestamps. When Redis is unreachable it fails open.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	log    *logger.Logger
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		log:    logger.New("rate-limiter"),
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rateLimitKeyPrefix + getClientIP(r)

		allowed, remaining, resetAt := rl.reserve(r.Context(), key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())))
			writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// reserve records the request in the caller's window and reports
// whether it fit, how many slots remain, and when the window resets.
func (rl *RateLimiter) reserve(ctx context.Context, key string) (bool, int, time.Time) {
	now := time.Now()
	stamp := strconv.FormatInt(now.UnixNano(), 10)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(now.Add(-rl.window).UnixNano(), 10))
	inWindow := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: stamp})
	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		rl.log.Debug("redis unavailable, allowing request: %v", err)
		return true, rl.limit, now.Add(rl.window)
	}

	count := int(inWindow.Val())
	if count >= rl.limit {
		return false, 0, rl.windowReset(ctx, key, now)
	}

	remaining := rl.limit - count - 1
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, now.Add(rl.window)
}

// windowReset is the instant the oldest recorded request ages out.
func (rl *RateLimiter) windowReset(ctx context.Context, key string, now time.Time) time.Time {
	oldest, err := rl.redis.ZRange(ctx, key, 0, 0).Result()
	if err != nil || len(oldest) == 0 {
		return now.Add(rl.window)
	}

	stamp, err := strconv.ParseInt(oldest[0], 10, 64)
	if err != nil {
		return now.Add(rl.window)
	}
	return time.Unix(0, stamp).Add(rl.window)
}

func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
