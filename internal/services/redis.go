package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const (
	homePageCacheKey = "homepage:payload"
	homePageCacheTTL = 5 * time.Minute
	searchCacheTTL   = time.Minute
	scheduleCacheKey = "schedule:weekly"
	scheduleCacheTTL = 10 * time.Minute
)

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// CacheHomePage stores the assembled home page payload
func CacheHomePage(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, homePageCacheKey, data, homePageCacheTTL).Err()
}

// GetCachedHomePage retrieves the cached home page payload
func GetCachedHomePage(ctx context.Context) (json.RawMessage, error) {
	data, err := RedisClient.Get(ctx, homePageCacheKey).Result()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// CacheSearchResults stores search results for a query
func CacheSearchResults(ctx context.Context, query string, results interface{}) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("search:%s", query)
	return RedisClient.Set(ctx, key, data, searchCacheTTL).Err()
}

// GetCachedSearchResults retrieves cached search results for a query
func GetCachedSearchResults(ctx context.Context, query string) (json.RawMessage, error) {
	key := fmt.Sprintf("search:%s", query)
	data, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// CacheSchedule stores the weekly schedule grouped by day
func CacheSchedule(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return RedisClient.Set(ctx, scheduleCacheKey, data, scheduleCacheTTL).Err()
}

// GetCachedSchedule retrieves the cached weekly schedule
func GetCachedSchedule(ctx context.Context) (json.RawMessage, error) {
	data, err := RedisClient.Get(ctx, scheduleCacheKey).Result()
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
