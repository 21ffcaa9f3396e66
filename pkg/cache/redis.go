package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration
type Config struct {
	Address  string // Redis server address (host:port)
	Password string // Redis password (empty if no password)
	DB       int    // Redis database number (0-15)
}

var client *redis.Client

// Init initializes the shared Redis client with the provided configuration
func Init(cfg Config) error {
	if cfg.Address == "" {
		return fmt.Errorf("redis address cannot be empty")
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	client = c
	return nil
}

// Client returns the Redis client instance.
// Returns nil if Init() hasn't been called successfully.
func Client() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client == nil {
		return fmt.Errorf("redis client is not initialized")
	}

	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis connection: %w", err)
	}

	client = nil
	return nil
}

// IsInitialized checks if the Redis client has been initialized
func IsInitialized() bool {
	return client != nil
}
