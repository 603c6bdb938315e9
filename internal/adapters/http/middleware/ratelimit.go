package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newmandigital/catalog/internal/adapters/http/handlers"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/newmandigital/catalog/internal/core/serviceerrors"
)

type RateLimiter interface {
	// Allow counts one hit on key. When the limit is exceeded it reports how
	// long the caller should wait.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimit throttles per route and client IP. Limiter failures let the
// request through.
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + ":" + c.FullPath() + ":" + c.ClientIP()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable", map[string]any{
				"error":      err.Error(),
				"http.route": c.FullPath(),
			})
			c.Next()
			return
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			handlers.HandleError(c, serviceerrors.NewTooManyRequestsError("rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
