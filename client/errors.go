package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured error response from the reellog API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("reellog: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}

	return fmt.Sprintf("reellog: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }

// IsImportRunning reports whether err is a 409 from a concurrent import run.
func IsImportRunning(err error) bool { return statusIs(err, http.StatusConflict) }

// IsRateLimited reports whether err is a 429 rate limit response.
func IsRateLimited(err error) bool { return statusIs(err, http.StatusTooManyRequests) }

// IsUpstream reports whether err is a 502 caused by the source site
// (blocked, or transient failures that exhausted retries).
func IsUpstream(err error) bool { return statusIs(err, http.StatusBadGateway) }

// parseAPIError decodes a JSON error body, falling back to the raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}

	return apiErr
}
