// Package history stores finished maze runs in a Redis sorted set.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL    = 24 * time.Hour
	defaultMaxLen = 100
)

var ErrEmptyKey = errors.New("history key is empty")

var _ i.RunHistory = &RedisRunHistory{}

// RedisRunHistory keeps run summaries in a sorted set scored by finish time.
// The set expires ttl after the last recorded run and holds at most maxLen entries.
type RedisRunHistory struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	maxLen int64
}

// NewRedisRunHistory initializes a RedisRunHistory. Zero ttl or maxLen select defaults.
func NewRedisRunHistory(client *redis.Client, key string, ttl time.Duration, maxLen int64) (*RedisRunHistory, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &RedisRunHistory{
		client: client,
		key:    key,
		ttl:    ttl,
		maxLen: maxLen,
	}, nil
}

// Record implements i.RunHistory.
func (h *RedisRunHistory) Record(ctx context.Context, s dmn.RunSummary) error {
	member, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, h.key, redis.Z{Score: float64(s.FinishedAt.UnixMilli()), Member: string(member)})
		pipe.ZRemRangeByRank(ctx, h.key, 0, -h.maxLen-1)
		pipe.Expire(ctx, h.key, h.ttl)
		return nil
	})
	return err
}

// Recent implements i.RunHistory.
func (h *RedisRunHistory) Recent(ctx context.Context, limit int64) ([]dmn.RunSummary, error) {
	if limit <= 0 {
		return []dmn.RunSummary{}, nil
	}

	members, err := h.client.ZRevRange(ctx, h.key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	summaries := make([]dmn.RunSummary, 0, len(members))
	for _, m := range members {
		var s dmn.RunSummary
		if err := json.Unmarshal([]byte(m), &s); err != nil {
			return nil, fmt.Errorf("decoding run summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Count returns the number of stored summaries.
func (h *RedisRunHistory) Count(ctx context.Context) int64 {
	return h.client.ZCard(ctx, h.key).Val()
}
