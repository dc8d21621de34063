package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage holds the shared redis connection backing the dictionary
// answer cache.
type RedisStorage struct {
	Connection *redis.Client
}

func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{Addr: addr})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can't connect to redis at %s: %w", addr, err)
	}

	return &RedisStorage{Connection: conn}, nil
}
