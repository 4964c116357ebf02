package reaction

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/redis/go-redis/v9"
)

const (
	// sweepEvery is how many attempts pass between sweeps of idle keys
	sweepEvery = 256

	rateLimitKeyPrefix = "lectern:ratelimit:reaction:"
)

// rateLimiter admits or rejects one attempt for a key
type rateLimiter interface {
	allow(ctx context.Context, key string) (bool, error)
}

// slidingWindowScript drops attempts at or before the cutoff, then records
// this one if the window has room. Scores are microseconds and arrive as
// strings so Lua never reformats them.
// Returns 1 when admitted and 0 when the window is full.
var slidingWindowScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[2])
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[3]) then
	return 0
end
redis.call('ZADD', KEYS[1], ARGV[1], ARGV[1] .. '-' .. count)
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return 1
`)

// redisLimiter keeps the sliding window in Redis so every replica shares it
type redisLimiter struct {
	client   *redis.Client
	limit    int
	interval time.Duration
	clock    clock.Clock
}

func newRedisLimiter(client *redis.Client, limit int, interval time.Duration, clk clock.Clock) *redisLimiter {
	return &redisLimiter{
		client:   client,
		limit:    limit,
		interval: interval,
		clock:    clk,
	}
}

func (l *redisLimiter) allow(ctx context.Context, key string) (bool, error) {
	now := l.clock.Now().UnixMicro()
	cutoff := now - l.interval.Microseconds()
	ttl := l.interval.Milliseconds() + 1

	admitted, err := slidingWindowScript.Run(ctx, l.client,
		[]string{rateLimitKeyPrefix + key},
		strconv.FormatInt(now, 10), strconv.FormatInt(cutoff, 10), l.limit, ttl,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return admitted == 1, nil
}

// limiter is an in-process sliding window counter per key
type limiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
	clock    clock.Clock
	attempts int
}

func newLimiter(limit int, interval time.Duration, clk clock.Clock) *limiter {
	return &limiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		clock:    clk,
	}
}

// allow records an attempt for key unless the window is already full
func (l *limiter) allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	windowStart := now.Add(-l.interval)

	l.attempts++
	if l.attempts%sweepEvery == 0 {
		l.sweep(windowStart)
	}

	attempts := l.history[key]
	fresh := make([]time.Time, 0, len(attempts)+1)
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.history[key] = fresh
		return false, nil
	}

	l.history[key] = append(fresh, now)
	return true, nil
}

// sweep drops keys with no attempts inside the window. Callers hold mu.
func (l *limiter) sweep(windowStart time.Time) {
	for key, attempts := range l.history {
		if len(attempts) == 0 || !attempts[len(attempts)-1].After(windowStart) {
			delete(l.history, key)
		}
	}
}
