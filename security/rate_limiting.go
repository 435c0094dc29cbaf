package security

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles the purchase endpoint per client, the main
// target of scalper scripts. Counters live in Redis so limits hold
// across replicas.
type RateLimiter struct {
	redis  *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: redisClient, limit: limit, window: window}
}

// PurchaseRateLimit allows limit requests per window, keyed by client
// IP. A nil limiter (no Redis) passes everything through.
func (r *RateLimiter) PurchaseRateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r == nil || r.redis == nil {
				return next(c)
			}

			key := fmt.Sprintf("ratelimit:purchase:%s", c.RealIP())
			ctx := c.Request().Context()

			count, err := r.redis.Incr(ctx, key).Result()
			if err != nil {
				// Redis trouble must not block purchases.
				return next(c)
			}
			if count == 1 {
				r.redis.Expire(ctx, key, r.window)
			}
			if count > r.limit {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many purchase attempts. Please try again later.",
					"code":  "rate_limited",
				})
			}
			return next(c)
		}
	}
}
