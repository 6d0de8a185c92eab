package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoCredentials is returned by a TokenSource that has no usable token.
// No request is sent in that case.
var ErrNoCredentials = errors.New("no valid credentials")

// Error is a non-2xx response from the server.
type Error struct {
	Code       string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("server error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// IsRejected reports whether the server refused the request on business,
// validation or permission grounds. Rejected requests are never retried.
func IsRejected(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusRequestTimeout || apiErr.StatusCode == http.StatusTooManyRequests {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

// IsTransient reports whether retrying the request later may succeed:
// transport failures, timeouts, 408, 429 and 5xx responses.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrNoCredentials) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return !IsRejected(err) && apiErr.StatusCode >= 400
	}
	return true
}

// IsUnauthorized reports a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports a 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuthRequired reports a 401 response or a missing token: the user has to
// sign in again before the request can succeed.
func IsAuthRequired(err error) bool {
	return IsUnauthorized(err) || errors.Is(err, ErrNoCredentials)
}
