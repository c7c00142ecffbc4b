package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/siteflow/quoting-api/internal/api/metrics"
)

// Limiter is the rate-accounting backend (Redis fixed-window counter).
type Limiter interface {
	Allow(ctx context.Context, scope, caller string, limit int64, window time.Duration) (bool, error)
}

// RateLimit caps per-IP traffic for a scope. When the backend is unreachable
// the request is let through: throttling is protection, not a dependency the
// whole API should fail on.
func RateLimit(limiter Limiter, scope string, limit int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RequestsThrottledTotal.WithLabelValues(scope).Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests, please try again later"})
			}
			return next(c)
		}
	}
}
