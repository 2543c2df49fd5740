package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed windows stored in Redis.
// A limiter without a Redis client, or with a zero limit, allows everything.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

// NewPlanRateLimiter limits week plan generation to limit requests per minute.
func NewPlanRateLimiter(redisClient *redis.Client, limit int) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     limit,
		KeyPrefix: "rate_limit:week_plan",
	})
}

func (rl *RateLimiter) enabled() bool {
	return rl != nil && rl.redis != nil && rl.config.Limit > 0
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled() {
			c.Next()
			return
		}

		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			// Fail open when Redis is unavailable
			log.Printf("[RateLimiter] check failed for %s: %v", userID, err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) windowKey(userID string) (string, time.Time) {
	windowStart := rl.now().Truncate(rl.config.Window)
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix()), windowStart.Add(rl.config.Window)
}

// IsAllowed counts a request from the given user and reports whether it fits
// in the current window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	key, resetTime := rl.windowKey(userID)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := max(rl.config.Limit-count, 0)
	return count <= rl.config.Limit, remaining, resetTime, nil
}

// GetRemainingRequests returns the number of remaining requests for a user
// without counting one.
func (rl *RateLimiter) GetRemainingRequests(ctx context.Context, userID string) (int, time.Time, error) {
	key, resetTime := rl.windowKey(userID)

	count, err := rl.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	return max(rl.config.Limit-count, 0), resetTime, nil
}

// Enabled reports whether the limiter enforces anything.
func (rl *RateLimiter) Enabled() bool { return rl.enabled() }

// Config returns the window and limit the limiter was built with.
func (rl *RateLimiter) Config() RateLimitConfig { return rl.config }
