package cache

import (
	redis "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the redis server at addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		Protocol: 2, // Connection protocol
	})
}
