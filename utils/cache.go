// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"ciba/config"

	"github.com/go-redis/redis/v8"
)

// NewCacheClient builds and pings a Redis client for the availability cache.
// The client is constructed here and passed to whoever needs it; there is no
// package-global connection.
func NewCacheClient() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return client, nil
}
