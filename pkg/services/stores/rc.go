package stores

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisClient = redis.UniversalClient

// NewRedisClient connects and pings a redis instance by URI.
func NewRedisClient(ctx context.Context, uri string) (RedisClient, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		logger().Infow("prase redisURI fail", "uri", uri, "err", err)
		return nil, err
	}
	rc := redis.NewClient(opt)
	if err = rc.Ping(ctx).Err(); err != nil {
		logger().Infow("ping redis fail", "err", err)
		return nil, err
	}
	return rc, nil
}
