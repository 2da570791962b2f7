package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLock(t *testing.T, expiry time.Duration) (*RedisRunLock, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewRedisRunLock(client, "mazegen:active_run", expiry)
	require.NoError(t, err)
	return l, mr
}

func TestRedisRunLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Only one holder at a time", func(t *testing.T) {
		l, mr := setupLock(t, time.Minute)

		lease, err := l.Acquire(ctx)
		require.NoError(t, err)
		assert.True(t, mr.Exists("mazegen:active_run"))

		_, err = l.Acquire(ctx)
		assert.Error(t, err)

		require.NoError(t, lease.Release(ctx))
		assert.False(t, mr.Exists("mazegen:active_run"))

		again, err := l.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, again.Release(ctx))
	})

	t.Run("Refresh extends the lease", func(t *testing.T) {
		l, mr := setupLock(t, 10*time.Second)

		lease, err := l.Acquire(ctx)
		require.NoError(t, err)

		mr.FastForward(6 * time.Second)
		require.NoError(t, lease.Refresh(ctx))
		mr.FastForward(6 * time.Second)

		assert.True(t, mr.Exists("mazegen:active_run"))
		require.NoError(t, lease.Release(ctx))
	})

	t.Run("Expired lease is lost", func(t *testing.T) {
		l, mr := setupLock(t, 2*time.Second)

		lease, err := l.Acquire(ctx)
		require.NoError(t, err)

		mr.FastForward(3 * time.Second)
		assert.Error(t, lease.Refresh(ctx))

		other, err := l.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, other.Release(ctx))
	})

	t.Run("Key is required", func(t *testing.T) {
		_, err := NewRedisRunLock(redis.NewClient(&redis.Options{}), "", time.Second)
		assert.ErrorIs(t, err, ErrEmptyKey)
	})
}
