package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/adapters/clients"
	"github.com/jsamuelsen/bookmark-service/internal/domain"
)

// maxErrorBody caps how much of a provider error body is read.
const maxErrorBody = 64 << 10

// ProviderError is the useful part of a provider error body.
type ProviderError struct {
	Message string

	// Reason is the provider's machine-readable cause: an OpenAI code or type
	// such as "invalid_api_key", or a Gemini status such as
	// "RESOURCE_EXHAUSTED".
	Reason string
}

// vendorEnvelope covers both supported shapes:
//
//	OpenAI: {"error":{"message":"...","type":"invalid_request_error","code":"model_not_found"}}
//	Gemini: {"error":{"code":400,"message":"...","status":"INVALID_ARGUMENT"}}
type vendorEnvelope struct {
	Error struct {
		Message string          `json:"message"`
		Type    string          `json:"type"`
		Status  string          `json:"status"`
		Code    json.RawMessage `json:"code"`
	} `json:"error"`
}

// ParseProviderError decodes an error body. It returns nil when the body is
// empty, not JSON, or carries no message or reason.
func ParseProviderError(body io.Reader) *ProviderError {
	if body == nil {
		return nil
	}

	var env vendorEnvelope
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&env); err != nil {
		return nil
	}

	pe := &ProviderError{Message: strings.TrimSpace(env.Error.Message)}

	var code string
	_ = json.Unmarshal(env.Error.Code, &code) // Gemini's numeric code is ignored

	for _, reason := range []string{env.Error.Status, code, env.Error.Type} {
		if reason != "" {
			pe.Reason = reason
			break
		}
	}

	if pe.Message == "" && pe.Reason == "" {
		return nil
	}

	return pe
}

// MapHTTPError turns a failed provider call into a domain error. clientErr
// is the error from [clients.Client.Do]; when it is nil, resp must carry an
// error status. operation names the call, e.g. "chat completion".
func MapHTTPError(resp *http.Response, clientErr error, provider, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, provider, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(provider, "no response received")
	}

	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var pe *ProviderError
	if resp.Body != nil {
		pe = ParseProviderError(resp.Body)
	}

	return mapStatus(resp.StatusCode, pe, provider, operation)
}

func mapClientError(err error, provider, operation string) error {
	var open *clients.CircuitOpenError

	switch {
	case errors.As(err, &open):
		return domain.NewUnavailableError(provider,
			fmt.Sprintf("temporarily disabled after repeated failures, retry in %s", open.RetryIn.Round(time.Second)))

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.NewUnavailableError(provider, operation+" did not finish in time")

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(provider, operation+" kept failing after retries")

	default:
		return domain.NewUnavailableError(provider, fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatus(status int, pe *ProviderError, provider, operation string) error {
	message := http.StatusText(status)
	if pe != nil && pe.Message != "" {
		message = pe.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewForbiddenError(operation, "provider rejected the API key: "+message)

	case http.StatusNotFound:
		// Almost always an unknown model name.
		return domain.NewNotFoundError(provider+" model", "")

	case http.StatusTooManyRequests:
		if pe != nil && pe.Reason == "insufficient_quota" {
			return domain.NewForbiddenError(operation, "provider quota exhausted: "+message)
		}

		return domain.NewUnavailableError(provider, "rate limited: "+message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return domain.NewValidationError(operation, message)

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(provider, message)
		}

		return domain.NewValidationError(operation, fmt.Sprintf("unexpected status %d: %s", status, message))
	}
}
