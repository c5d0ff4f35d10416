package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// Recovery turns a panic anywhere below it into a 500 INTERNAL_ERROR
// envelope and an ERROR log line with the stack. It must be the first
// middleware in the chain. When the handler already started writing, the
// connection is only aborted.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			reqLogger := logging.FromContextOr(c.Request.Context(), logger)

			reqLogger.Error("handler panicked",
				slog.String("panic", fmt.Sprint(r)),
				slog.String("method", c.Request.Method),
				slog.String("route", routeOf(c)),
				slog.String("trace_id", dto.GetTraceID(c)),
				slog.String("stack", string(debug.Stack())),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.AbortWithCode(c, dto.ErrorCodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}
