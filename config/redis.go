package config

import "github.com/redis/go-redis/v9"

// NewRedisClient opens a client against addr without pinging — callers
// that need cross-process frontier dedupe pass the result straight to
// crawl.NewRedisDedupe, and a dead Redis
// surfaces as an ordinary per-call error rather than a boot failure.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
