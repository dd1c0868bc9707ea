package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestRateLimiter_RedisFixedWindow(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 25, 10, 0, 30, 0, time.UTC)

	l := NewRateLimiter(client, nil)
	l.now = fixedNow(now)

	for i := 1; i <= 3; i++ {
		d := l.Allow(ctx, "check", "u1", 3, time.Minute)
		assert.True(t, d.Allowed, "hit %d", i)
		assert.Equal(t, 3-i, d.Remaining)
	}

	d := l.Allow(ctx, "check", "u1", 3, time.Minute)
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.Equal(t, 3, d.Limit)
	assert.Equal(t, time.Date(2026, 5, 25, 10, 1, 0, 0, time.UTC), d.ResetAt)
	assert.Equal(t, 30*time.Second, d.RetryAfter(now))

	key := client.Key("rl", "check", "u1", "1779703200")
	assert.True(t, mr.Exists(key))

	other := l.Allow(ctx, "check", "u2", 3, time.Minute)
	assert.True(t, other.Allowed)

	l.now = fixedNow(now.Add(time.Minute))
	assert.True(t, l.Allow(ctx, "check", "u1", 3, time.Minute).Allowed)
}

func TestRateLimiter_LocalWithoutRedis(t *testing.T) {
	now := time.Date(2026, 5, 25, 10, 0, 0, 0, time.UTC)
	l := NewRateLimiter(nil, nil)
	l.now = fixedNow(now)

	assert.True(t, l.Allow(context.Background(), "auth", "1.2.3.4", 2, 15*time.Minute).Allowed)
	assert.True(t, l.Allow(context.Background(), "auth", "1.2.3.4", 2, 15*time.Minute).Allowed)
	assert.False(t, l.Allow(context.Background(), "auth", "1.2.3.4", 2, 15*time.Minute).Allowed)

	l.now = fixedNow(now.Add(15 * time.Minute))
	assert.True(t, l.Allow(context.Background(), "auth", "1.2.3.4", 2, 15*time.Minute).Allowed)
}

func TestRateLimiter_FallsBackWhenRedisFails(t *testing.T) {
	mr, client := newTestClient(t)
	l := NewRateLimiter(client, nil)
	mr.Close()

	d := l.Allow(context.Background(), "api", "u1", 1, time.Minute)
	assert.True(t, d.Allowed)
	d = l.Allow(context.Background(), "api", "u1", 1, time.Minute)
	assert.False(t, d.Allowed)
}

func TestDecision_RetryAfterElapsed(t *testing.T) {
	now := time.Now()
	d := Decision{ResetAt: now.Add(-time.Second)}
	assert.Zero(t, d.RetryAfter(now))
}
