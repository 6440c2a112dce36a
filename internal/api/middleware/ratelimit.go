package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-management-api/internal/api/metrics"
)

// RateLimit rejects a client IP with 429 after limit requests within one
// fixed window. Counters live in redis so the limit holds across replicas.
// Key format: ratelimit:<ip>:<window_start_unix>
//
// Redis being down must not take authentication down with it, so limiter
// errors fail open.
func RateLimit(client *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			windowStart := time.Now().Unix() / int64(window.Seconds()) * int64(window.Seconds())
			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), windowStart)

			ctx := c.Request().Context()
			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if count == 1 {
				client.Expire(ctx, key, window)
			}

			if count > int64(limit) {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

// Scoped applies mw only to requests whose path starts with prefix. It lets
// the rate limiter sit in the global chain, ahead of the guard, while still
// covering just the authentication routes.
func Scoped(prefix string, mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, prefix) {
				return wrapped(c)
			}
			return next(c)
		}
	}
}
