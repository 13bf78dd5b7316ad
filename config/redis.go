package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisManager owns the Redis client backing the session store.
type RedisManager struct {
	client *redis.Client
	config *Config
}

// NewRedisManager creates a new redis manager
func NewRedisManager(cfg *Config) *RedisManager {
	return &RedisManager{
		config: cfg,
	}
}

// Initialize connects to Redis and verifies the connection
func (rm *RedisManager) Initialize() error {
	log.Println("Initializing Redis connection...")

	rm.client = redis.NewClient(&redis.Options{
		Addr:         rm.config.RedisAddr,
		Password:     rm.config.RedisPassword,
		DB:           rm.config.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rm.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping Redis: %v", err)
	}

	log.Printf("Successfully connected to Redis at %s", rm.config.RedisAddr)
	return nil
}

// HealthCheck pings Redis
func (rm *RedisManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return rm.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (rm *RedisManager) Close() error {
	if rm.client != nil {
		if err := rm.client.Close(); err != nil {
			return fmt.Errorf("failed to close Redis connection: %v", err)
		}
		log.Println("Disconnected from Redis")
	}
	return nil
}

// GetClient returns the Redis client
func (rm *RedisManager) GetClient() *redis.Client {
	return rm.client
}
