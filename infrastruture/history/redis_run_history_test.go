package history

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "mazegen:history"

func setupHistory(t *testing.T, ttl time.Duration, maxLen int64) (*RedisRunHistory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h, err := NewRedisRunHistory(client, testKey, ttl, maxLen)
	require.NoError(t, err)
	return h, mr
}

func summaryAt(minute int, status dmn.RunStatus) dmn.RunSummary {
	return dmn.RunSummary{
		ID:         uuid.New(),
		Status:     status,
		Width:      4,
		Height:     3,
		Carved:     23,
		FinishedAt: time.Date(2025, 2, 8, 10, minute, 0, 0, time.UTC),
	}
}

func TestRedisRunHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("Recent returns newest first", func(t *testing.T) {
		h, _ := setupHistory(t, time.Hour, 10)
		first := summaryAt(1, dmn.StatusCompleted)
		second := summaryAt(2, dmn.StatusCancelled)
		third := summaryAt(3, dmn.StatusCompleted)

		for _, s := range []dmn.RunSummary{second, first, third} {
			require.NoError(t, h.Record(ctx, s))
		}
		assert.Equal(t, int64(3), h.Count(ctx))

		recent, err := h.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, third.ID, recent[0].ID)
		assert.Equal(t, second.ID, recent[1].ID)
		assert.Equal(t, dmn.StatusCancelled, recent[1].Status)
		assert.True(t, second.FinishedAt.Equal(recent[1].FinishedAt))
	})

	t.Run("Oldest entries are trimmed", func(t *testing.T) {
		h, _ := setupHistory(t, time.Hour, 2)
		for minute := 1; minute <= 4; minute++ {
			require.NoError(t, h.Record(ctx, summaryAt(minute, dmn.StatusCompleted)))
		}

		recent, err := h.Recent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, 4, recent[0].FinishedAt.Minute())
		assert.Equal(t, 3, recent[1].FinishedAt.Minute())
	})

	t.Run("History expires after the last record", func(t *testing.T) {
		h, mr := setupHistory(t, time.Minute, 0)
		require.NoError(t, h.Record(ctx, summaryAt(1, dmn.StatusCompleted)))
		assert.Equal(t, time.Minute, mr.TTL(testKey))

		mr.FastForward(2 * time.Minute)
		assert.False(t, mr.Exists(testKey))

		recent, err := h.Recent(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("Non-positive limit", func(t *testing.T) {
		h, _ := setupHistory(t, 0, 0)
		require.NoError(t, h.Record(ctx, summaryAt(1, dmn.StatusCompleted)))

		recent, err := h.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("Empty key is rejected", func(t *testing.T) {
		_, err := NewRedisRunHistory(redis.NewClient(&redis.Options{}), "", 0, 0)
		assert.ErrorIs(t, err, ErrEmptyKey)
	})
}
