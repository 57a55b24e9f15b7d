package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
)

// RateLimit implements a fixed one-minute window per client IP in Redis.
// Requests are let through while Redis is unavailable.
func RateLimit(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	limit := cfg.Security.RateLimitPerMinute

	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("rate_limit:%s:%d", c.ClientIP(), window)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		current := int(incr.Val())
		remaining := limit - current
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt((window+1)*60, 10))

		if current > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": (window+1)*60 - time.Now().Unix(),
			})
			return
		}

		c.Next()
	}
}
