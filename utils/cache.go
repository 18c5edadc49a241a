// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"fintrack/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient is the dedicated client for session token storage.
	SessionCacheClient *redis.Client
	// SettingsCacheClient is the dedicated client for notification preferences.
	SettingsCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for session token storage.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Session): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session token storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitSettingsCache initializes the Redis client for notification preferences.
func InitSettingsCache() {
	SettingsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSettingsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SettingsCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Settings): %v", err)
	}
}

// GetSettingsCacheClient returns the Redis client for notification preferences.
func GetSettingsCacheClient() *redis.Client {
	if SettingsCacheClient == nil {
		InitSettingsCache()
	}
	return SettingsCacheClient
}
