package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pageza/harvestplan/backend/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to cfg.RedisURL. It returns a nil client and no
// error when Redis is not configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		log.Printf("REDIS_URL not set, running without Redis")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", opts.Addr)
	return client, nil
}
