// Package pubsub publishes maze run events on a Redis channel.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/redis/go-redis/v9"
)

var ErrEmptyChannel = errors.New("redis channel name is empty")

var _ i.EventPublisher = &RedisPublisher{}

// RedisPublisher publishes every run event as a JSON message on a Redis channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher creates a RedisPublisher for the given channel.
func NewRedisPublisher(client *redis.Client, channel string) (*RedisPublisher, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
	}, nil
}

// Publish implements i.EventPublisher.
func (p *RedisPublisher) Publish(ctx context.Context, e dmn.RunEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}
