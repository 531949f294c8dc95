package overtimesdk

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("overtime api error (status %d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return isStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 response.
func IsForbidden(err error) bool {
	return isStatus(err, http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsRateLimited reports whether err is a 429 response.
func IsRateLimited(err error) bool {
	return isStatus(err, http.StatusTooManyRequests)
}

func isStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
