package adapter

import "errors"

// Sentinel errors mapped from drive API status codes. Callers match them
// with errors.Is; Retryable groups the transient subset.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("resource not found")
	ErrCursorExpired       = errors.New("change feed cursor expired")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrThrottled           = errors.New("request throttled")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrTransport wraps request-level failures (network unreachable,
	// timeout) that never produced an HTTP status.
	ErrTransport = errors.New("transport error")
)

// Retryable reports whether err is transient: transport failures,
// throttling, and 5xx responses. Cursor expiry and precondition conflicts
// have their own recovery paths and are not retryable as-is.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTransport),
		errors.Is(err, ErrThrottled),
		errors.Is(err, ErrInternalServerError),
		errors.Is(err, ErrBadGateway),
		errors.Is(err, ErrServiceUnavailable):
		return true
	default:
		return false
	}
}
