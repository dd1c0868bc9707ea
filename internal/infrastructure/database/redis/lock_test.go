package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/warrify/pkg/errors"
)

func TestMutex_TryLockUnlock(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	m := NewMutex(client, "reminders", time.Minute, nil)
	assert.Equal(t, "test:lock:reminders", m.Key())

	ok, err := m.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("test:lock:reminders"))
	assert.Equal(t, time.Minute, mr.TTL("test:lock:reminders"))

	require.NoError(t, m.Unlock(ctx))
	assert.False(t, mr.Exists("test:lock:reminders"))
}

func TestMutex_Contention(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	first := NewMutex(client, "reminders", time.Minute, nil)
	second := NewMutex(client, "reminders", time.Minute, nil)

	ok, err := first.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	err = second.Unlock(ctx)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))

	require.NoError(t, first.Unlock(ctx))

	ok, err = second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMutex_ExpiresAfterTTL(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	first := NewMutex(client, "reminders", time.Second, nil)
	second := NewMutex(client, "reminders", time.Second, nil)

	ok, _ := first.TryLock(ctx)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err := second.TryLock(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, first.Unlock(ctx), ErrLockNotHeld, "expired holder must not release the new owner's lock")
	assert.True(t, mr.Exists(second.Key()))
}

func TestMutex_DefaultTTL(t *testing.T) {
	_, client := newTestClient(t)
	m := NewMutex(client, "x", 0, nil)
	assert.Equal(t, 30*time.Second, m.ttl)
}
