package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the go-redis client used for the alert queue and the
// límites read cache. Connectivity is verified at startup so a bad REDIS_URL
// fails fast instead of on the first enqueue.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
