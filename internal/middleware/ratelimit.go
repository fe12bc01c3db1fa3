package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// RateCounter backs per-IP request counting, typically Redis.
type RateCounter interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit caps requests per client IP inside a sliding window. A counter
// failure lets the request through; the limit protects against abuse, not
// against Redis downtime.
func RateLimit(counter RateCounter, name string, limit int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())
		count, err := counter.IncrementWindow(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate-limit counter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if count > limit {
			response.Error(c, appErrors.ErrRateLimited)
			c.Abort()
			return
		}
		c.Next()
	}
}
