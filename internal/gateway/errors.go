package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is returned for any failed backend call: transport failure,
// non-2xx status or an unreadable body.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to call %s with cause %d %s", e.Op, e.StatusCode, statusCause(e.StatusCode))
	}
	return fmt.Sprintf("failed to call %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func statusCause(code int) string {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "unauthorized"
	case http.StatusNotFound:
		return "not found"
	case http.StatusTooManyRequests:
		return "rate limit exceeded"
	}
	return "non retryable"
}

// IsNotFound reports whether the backend answered 404.
func IsNotFound(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.StatusCode == http.StatusNotFound
}

// IsNetworkError reports whether err came from a backend call.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
