package dictionary

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "dictionary:"

// RedisCache memoizes dictionary answers in redis so repeated lookups
// across processes and restarts skip the word set. Cache failures read
// as misses; the word list stays authoritative.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *RedisCache) Get(word string) (bool, bool) {
	value, err := that.client.Get(context.Background(), cacheKeyPrefix+word).Result()
	if err != nil {
		return false, false
	}

	return value == "1", true
}

func (that *RedisCache) Set(word string, valid bool) {
	value := "0"
	if valid {
		value = "1"
	}

	that.client.Set(context.Background(), cacheKeyPrefix+word, value, that.ttl)
}
