// Package dto holds the request and response shapes of the HTTP API and the
// helpers that turn errors into the shared error envelope.
package dto

import "net/http"

// ErrorResponse is the body of every non-2xx API response.
//
//	{"error": {"code": "NOT_FOUND", "message": "bookmark ... not found"}, "traceId": "..."}
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the machine code plus a message safe to show users.
// Details carries per-field messages for validation failures.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeConflict        = "CONFLICT"
	ErrorCodeValidation      = "VALIDATION_ERROR"
	ErrorCodeBadRequest      = "BAD_REQUEST"
	ErrorCodeUnauthorized    = "UNAUTHORIZED"
	ErrorCodeForbidden       = "FORBIDDEN"
	ErrorCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrorCodeRateLimited     = "RATE_LIMITED"
	ErrorCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout         = "TIMEOUT"
	ErrorCodeInternal        = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeBadRequest:      http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodePayloadTooLarge: http.StatusRequestEntityTooLarge,
	ErrorCodeRateLimited:     http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTimeout:         http.StatusGatewayTimeout,
}

// NewErrorResponse builds an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// WithDetails attaches per-field messages. An empty map is dropped.
func (e *ErrorResponse) WithDetails(details map[string]string) *ErrorResponse {
	if len(details) > 0 {
		e.Error.Details = details
	}

	return e
}

// WithTraceID sets the id clients quote when reporting a failure.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode returns the status for code; unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}
