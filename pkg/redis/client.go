package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyspace prefixes every key this service writes, so sessions and
// idempotency records can be inspected or swept on a shared Redis.
const keyspace = "saldoku"

const pingTimeout = 5 * time.Second

var client *redis.Client

// Connect dials Redis from a URL and verifies the connection
func Connect(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	client = c
	return nil
}

// Close releases the connection pool
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// SetClient swaps the client (used for testing)
func SetClient(c *redis.Client) {
	client = c
}

// Key builds a key under the application keyspace
func Key(parts ...string) string {
	return keyspace + ":" + strings.Join(parts, ":")
}

// Set stores a key-value pair with expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX sets a key only if it does not exist
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
