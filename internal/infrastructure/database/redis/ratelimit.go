package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

// Decision is the outcome of one rate limit check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the wait until the window resets, rounded up to a second.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait <= 0 {
		return 0
	}
	if rem := wait % time.Second; rem != 0 {
		wait += time.Second - rem
	}
	return wait
}

// RateLimiter counts hits per (bucket, id) in fixed windows. With a redis
// client the counters are shared across processes; without one, or while
// redis is failing, counters are kept in process memory.
type RateLimiter struct {
	client *Client
	logger logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	local map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter returns a limiter. client may be nil.
func NewRateLimiter(client *Client, log logging.Logger) *RateLimiter {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RateLimiter{
		client: client,
		logger: log,
		now:    time.Now,
		local:  make(map[string]*window),
	}
}

// Allow records one hit for id in bucket and reports whether it fits within
// limit hits per window.
func (l *RateLimiter) Allow(ctx context.Context, bucket, id string, limit int, per time.Duration) Decision {
	now := l.now()
	start := now.Truncate(per)
	resetAt := start.Add(per)

	if l.client != nil {
		count, err := l.incrRemote(ctx, bucket, id, start, per)
		if err == nil {
			return decide(count, limit, resetAt)
		}
		l.logger.Warn("rate limit counter unavailable, using local window",
			logging.String("bucket", bucket), logging.Err(err))
	}
	return decide(l.incrLocal(bucket+":"+id, now, resetAt), limit, resetAt)
}

func (l *RateLimiter) incrRemote(ctx context.Context, bucket, id string, start time.Time, per time.Duration) (int, error) {
	key := l.client.Key("rl", bucket, id, strconv.FormatInt(start.Unix(), 10))
	pipe := l.client.Underlying().TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.PExpire(ctx, key, per)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (l *RateLimiter) incrLocal(key string, now, resetAt time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.local[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: resetAt}
		l.local[key] = w
		l.sweep(now)
	}
	w.count++
	return w.count
}

// sweep drops expired windows. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	if len(l.local) < 1024 {
		return
	}
	for k, w := range l.local {
		if !now.Before(w.resetAt) {
			delete(l.local, k)
		}
	}
}

func decide(count, limit int, resetAt time.Time) Decision {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
