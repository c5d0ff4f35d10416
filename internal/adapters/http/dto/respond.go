package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/bookmark-service/internal/domain"
	"github.com/jsamuelsen/bookmark-service/internal/platform/logging"
)

// TraceIDKey is the gin context key a trace id may be stored under.
const TraceIDKey = "trace_id"

// GetTraceID returns the id used to correlate an error response with logs:
// an explicitly stored trace id, the active span's trace id, or the request id.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(TraceIDKey); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}

	if c.Request != nil {
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			return sc.TraceID().String()
		}

		return c.GetHeader("X-Request-ID")
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		resp := NewErrorResponse(ErrorCodeConflict, err.Error())

		var conflict *domain.ConflictError
		if errors.As(err, &conflict) && conflict.Details != "" {
			resp.Error.Details = map[string]string{"existing": conflict.Details}
		}

		return http.StatusConflict, resp

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		resp := NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

		var unavailable *domain.UnavailableError
		if errors.As(err, &unavailable) {
			resp.Error.Message = unavailable.Service + " is temporarily unavailable"
			if unavailable.Reason != "" {
				resp.Error.Details = map[string]string{"reason": unavailable.Reason}
			}
		}

		return http.StatusServiceUnavailable, resp

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes the response for err. Server errors are logged with
// the cause, which the response body never carries.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	c.JSON(status, resp)
}

// AbortWithError is HandleError for middleware: it stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// AbortWithCode stops the handler chain with an explicit error code.
func AbortWithCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code),
		NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// HandleBindError responds to a failed BindAndValidate or
// BindQueryAndValidate call.
func HandleBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case IsValidationError(err):
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrorCodeValidation, "request validation failed").
			WithDetails(FieldErrors(err)).
			WithTraceID(GetTraceID(c)))
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrorCodePayloadTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)).
			WithTraceID(GetTraceID(c)))
	default:
		c.JSON(http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, "malformed request").
			WithTraceID(GetTraceID(c)))
	}
}
