package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
)

// Deadline bounds the request context by timeout. Handlers observe it through
// ctx.Done(); when one gives up without writing a response the client gets a
// 504 TIMEOUT envelope. A non-positive timeout disables the deadline.
func Deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		dto.AbortWithCode(c, dto.ErrorCodeTimeout, "request did not complete in time")
	}
}
