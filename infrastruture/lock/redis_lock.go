// Package lock keeps a single maze generation active across instances.
package lock

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultExpiry = 8 * time.Second

var (
	ErrEmptyKey  = errors.New("lock key is empty")
	ErrLeaseLost = errors.New("run lock lease was lost")
)

var _ i.RunLocker = &RedisRunLock{}

// RedisRunLock is a redsync mutex on a single key. Acquire does not retry.
type RedisRunLock struct {
	locker *redsync.Redsync
	key    string
	expiry time.Duration
}

// NewRedisRunLock creates a RedisRunLock. A lease that is not refreshed expires
// after expiry; zero selects a default.
func NewRedisRunLock(client *redis.Client, key string, expiry time.Duration) (*RedisRunLock, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if expiry <= 0 {
		expiry = defaultExpiry
	}

	pool := goredis.NewPool(client)
	return &RedisRunLock{
		locker: redsync.New(pool),
		key:    key,
		expiry: expiry,
	}, nil
}

// Acquire implements i.RunLocker.
func (l *RedisRunLock) Acquire(ctx context.Context) (i.Lease, error) {
	mutex := l.locker.NewMutex(l.key, redsync.WithExpiry(l.expiry), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return &redisLease{mutex: mutex}, nil
}

type redisLease struct {
	mutex *redsync.Mutex
}

// Refresh implements i.Lease.
func (l *redisLease) Refresh(ctx context.Context) error {
	ok, err := l.mutex.ExtendContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLeaseLost
	}
	return nil
}

// Release implements i.Lease.
func (l *redisLease) Release(ctx context.Context) error {
	ok, err := l.mutex.UnlockContext(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLeaseLost
	}
	return nil
}
