package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barriolink/community-events-backend/config"
)

var RedisClient *redis.Client

// InitRedis connects the shared Redis client used by the rate limiter store.
// Returns an error when REDIS_ADDR is unreachable; callers may continue with
// the in-memory store instead.
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️  REDIS_ADDR not set, rate limiter uses in-memory store")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	RedisClient = client
	log.Printf("✅ Redis connected at %s", cfg.RedisAddr)
	return nil
}

// GetRedisClient returns the shared client, nil when Redis is not configured.
func GetRedisClient() *redis.Client {
	return RedisClient
}
