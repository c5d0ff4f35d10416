package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// KeyFunc derives the rate limit key for a request.
type KeyFunc func(c *gin.Context) string

// ClientIPKey limits per client address.
func ClientIPKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// UserKey limits per authenticated user, falling back to the client address
// for anonymous requests.
func UserKey(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return "user:" + claims.Subject
	}

	return ClientIPKey(c)
}

// RateLimit returns middleware that answers 429 once a key exceeds its
// budget. A nil limiter disables limiting.
func RateLimit(limiter Limiter, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		k := key(c)

		ok, wait := limiter.Allow(k)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))

			logging.FromContext(c.Request.Context()).WarnContext(c.Request.Context(), "rate limited",
				slog.String("key", k),
				slog.Duration("retry_after", wait),
			)

			dto.AbortWithCode(c, dto.ErrorCodeRateLimited, "rate limit exceeded")

			return
		}

		c.Next()
	}
}

// retryAfterSeconds rounds up; a limiter that can never admit the request
// still advertises one second.
func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}

	return secs
}
