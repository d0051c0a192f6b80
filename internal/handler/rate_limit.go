package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/course-platform/internal/dto"
	"github.com/prperemyshlev/course-platform/internal/service"
	"go.uber.org/zap"
)

// Limiter decides whether one more request for key fits in the window
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*service.RateLimitResult, error)
}

// RateLimitMiddleware creates a rate limiting middleware. Limiter errors let
// the request through.
func RateLimitMiddleware(limiter Limiter, limit int, window time.Duration, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + keyFunc(c)

		result, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := strconv.Itoa(int(math.Ceil(result.RetryAfter.Seconds())))
			c.Header("Retry-After", retryAfter)
			c.Header("X-RateLimit-Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "rate limit exceeded, try again in " + result.RetryAfter.Round(time.Second).String(),
			})
			return
		}

		c.Next()
	}
}

// IPBasedKey extracts rate limit key from client IP
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
