package services

import (
	"filehive/storage"

	"github.com/redis/go-redis/v9"
)

// Process-wide collaborators injected at startup, mirroring the database
// package's global-connection pattern.
var (
	storageProvider storage.Provider
	redisClient     *redis.Client
)

// SetStorageProvider sets the active object-storage provider (called from main)
func SetStorageProvider(p storage.Provider) {
	storageProvider = p
}

// GetStorageProvider returns the active object-storage provider
func GetStorageProvider() storage.Provider {
	return storageProvider
}

// SetRedisClient sets the Redis client backing the session store (called from main)
func SetRedisClient(c *redis.Client) {
	redisClient = c
}

// GetRedisClient returns the Redis client backing the session store
func GetRedisClient() *redis.Client {
	return redisClient
}
