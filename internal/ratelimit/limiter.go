package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window request counter kept in Redis
//
// HOW IT WORKS:
// 1. Each client gets a counter key that expires after one window
// 2. Each request increments the counter
// 3. Once the counter reaches maxRequests, requests are refused until the key expires
//
// Redis makes the limit shared across every instance of the service.
type RateLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	prefix      string
}

// The script runs atomically in Redis, so concurrent requests cannot both
// observe the same count.
var allowScript = redis.NewScript(`
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local current_time = tonumber(ARGV[3])

	local current = redis.call('GET', key)

	if current == false then
		redis.call('SET', key, 1, 'EX', window)
		return {1, max_requests - 1, current_time + window}
	end

	current = tonumber(current)
	if current < max_requests then
		redis.call('INCR', key)
		local ttl = redis.call('TTL', key)
		return {1, max_requests - current - 1, current_time + ttl}
	end

	local ttl = redis.call('TTL', key)
	return {0, 0, current_time + ttl}
`)

// NewFixedWindowLimiter creates a new rate limiter
// Example: NewFixedWindowLimiter(client, 100, time.Minute)
// Allows 100 requests per client per minute
func NewFixedWindowLimiter(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		prefix:      "shortlink:ratelimit:",
	}
}

// Allow checks if a request should be allowed
// Returns (allowed bool, remaining int, resetTime time.Time, error)
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowSeconds := int(rl.window.Seconds())
	if windowSeconds < 1 {
		windowSeconds = 1
	}

	result, err := allowScript.Run(
		ctx,
		rl.client,
		[]string{rl.prefix + key},
		rl.maxRequests,
		windowSeconds,
		now.Unix(),
	).Int64Slice()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	if len(result) != 3 {
		return false, 0, time.Time{}, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	allowed := result[0] == 1
	remaining := int(result[1])
	resetTime := time.Unix(result[2], 0)

	return allowed, remaining, resetTime, nil
}

// MaxRequests returns the maximum number of requests allowed
func (rl *RateLimiter) MaxRequests() int {
	return rl.maxRequests
}

// NewRedisClient creates a Redis client and checks the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
