package stores

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the key has no value in the store.
var ErrNotFound = errors.New("kv: not found")

// KeyValue is a flat get/put store. It backs both the static content
// lookups and the write-only shadow mirror of conversation history.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type redisKV struct {
	rc RedisClient
}

// NewRedisKV wraps a redis client as a KeyValue store.
func NewRedisKV(rc RedisClient) KeyValue {
	return &redisKV{rc: rc}
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rc.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *redisKV) Put(ctx context.Context, key string, value []byte) error {
	// no expiry: backup snapshots live as long as the history itself
	return s.rc.Set(ctx, key, value, 0).Err()
}
