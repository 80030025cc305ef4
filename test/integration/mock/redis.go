package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis starts a shared in-memory Redis and returns a client connected to it.
func NewRedis() *redis.Client {
	if redisConn == nil {
		redisConnOnce.Do(
			func() {
				redisConn = openRedisConn()
			},
		)
	}

	return redisConn
}

// RedisURL returns the connection URL of the shared server, in the form REDIS_URL expects.
func RedisURL() string {
	NewRedis()
	return "redis://" + redisServer.Addr() + "/0"
}

func openRedisConn() *redis.Client {
	miniRedis, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	redisServer = miniRedis

	conn := redis.NewClient(
		&redis.Options{
			Addr: miniRedis.Addr(),
		},
	)

	return conn
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}

// Keys lists the keys matching pattern.
func Keys(redis *redis.Client, pattern string) ([]string, error) {
	return redis.Keys(context.TODO(), pattern).Result()
}
