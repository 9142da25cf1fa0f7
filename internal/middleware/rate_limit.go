package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter provides rate limiting functionality using Redis
type RateLimiter struct {
	redis *redis.Client
}

// NewRateLimiter creates a rate limiter on an existing Redis client. The
// counters share the instance the engine persists into, under their own
// key prefix.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redis: client}
}

// RateLimitByIP creates a middleware that limits requests by IP address
// maxRequests: maximum number of requests allowed
// window: time window in seconds (e.g., 3600 for 1 hour)
func (rl *RateLimiter) RateLimitByIP(maxRequests int, window int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("rate_limit:ip:%s:%s", c.FullPath(), ip)

		ctx := context.Background()

		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			// If Redis fails, allow the request but log the error
			_ = c.Error(fmt.Errorf("rate limiter error: %w", err))
			c.Next()
			return
		}

		if count == 1 {
			rl.redis.Expire(ctx, key, time.Duration(window)*time.Second)
		}

		if count > int64(maxRequests) {
			ttl, _ := rl.redis.TTL(ctx, key).Result()

			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "RATE_LIMIT_EXCEEDED",
					"message": "Too many requests. Please try again later.",
				},
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", maxRequests-int(count)))

		c.Next()
	}
}
