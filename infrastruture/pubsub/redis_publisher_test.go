package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisPublisher(t *testing.T) {
	t.Run("Events arrive as JSON in publish order", func(t *testing.T) {
		ctx := context.Background()
		client := setupRedis(t)

		publisher, err := NewRedisPublisher(client, "mazegen:events")
		require.NoError(t, err)
		assert.Equal(t, "mazegen:events", publisher.Channel())

		sub := client.Subscribe(ctx, publisher.Channel())
		defer sub.Close()
		_, err = sub.Receive(ctx)
		require.NoError(t, err)
		messages := sub.Channel()

		runID := uuid.New()
		sent := []dmn.RunEvent{
			{RunID: runID, Kind: dmn.EventStarted, Seq: 0, TotalWidth: 5, TotalHeight: 5},
			{RunID: runID, Kind: dmn.EventCarved, Seq: 1, Row: 1, Col: 3},
			{RunID: runID, Kind: dmn.EventCompleted, Seq: 2},
		}
		for _, e := range sent {
			require.NoError(t, publisher.Publish(ctx, e))
		}

		for _, want := range sent {
			select {
			case msg := <-messages:
				var got dmn.RunEvent
				require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
				assert.Equal(t, want, got)
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for a published event")
			}
		}
	})

	t.Run("Channel name is required", func(t *testing.T) {
		_, err := NewRedisPublisher(setupRedis(t), "")
		assert.ErrorIs(t, err, ErrEmptyChannel)
	})

	t.Run("Closed client fails to publish", func(t *testing.T) {
		client := setupRedis(t)
		publisher, err := NewRedisPublisher(client, "mazegen:events")
		require.NoError(t, err)
		require.NoError(t, client.Close())

		err = publisher.Publish(context.Background(), dmn.RunEvent{Kind: dmn.EventStarted})
		assert.Error(t, err)
	})
}
