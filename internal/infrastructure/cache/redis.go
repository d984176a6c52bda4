package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL constructs a Redis client from a redis:// URL, falling
// back to treating the value as a plain host:port address. Connectivity is
// probed but a failed ping is not fatal: the fallback store keeps the
// service alive and the client reconnects on its own.
func NewRedisFromURL(ctx context.Context, rawURL string) *redis.Client {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		opts = &redis.Options{Addr: rawURL}
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] redis ping failed, continuing with fallback: %v", err)
	}
	return client
}

// Close closes the Redis client, ignoring errors on shutdown.
func Close(client *redis.Client) {
	_ = client.Close()
}
