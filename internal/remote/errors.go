package remote

import (
	"errors"
	"fmt"
	"time"
)

// Code is the closed set of failure categories a Conn implementation may
// report. The retry classifier branches on these and nothing else.
type Code int

const (
	// CodeUnknown is an error from the store's domain that fits no other
	// category. Never retried.
	CodeUnknown Code = iota

	// CodeUnknownItem means the target record does not exist. For fetches
	// this is a valid absence signal, not a failure.
	CodeUnknownItem

	// Retryable after a delay.
	CodeRateLimited
	CodeServiceUnavailable
	CodeZoneBusy

	// Retryable immediately.
	CodeNetworkFailure
	CodeNetworkUnavailable
	CodeResponseLost

	// Account/permission states. Never retried.
	CodeNotAuthenticated
	CodePermissionFailure
)

func (c Code) String() string {
	switch c {
	case CodeUnknownItem:
		return "unknownItem"
	case CodeRateLimited:
		return "rateLimited"
	case CodeServiceUnavailable:
		return "serviceUnavailable"
	case CodeZoneBusy:
		return "zoneBusy"
	case CodeNetworkFailure:
		return "networkFailure"
	case CodeNetworkUnavailable:
		return "networkUnavailable"
	case CodeResponseLost:
		return "responseLost"
	case CodeNotAuthenticated:
		return "notAuthenticated"
	case CodePermissionFailure:
		return "permissionFailure"
	default:
		return "unknown"
	}
}

// Error is a failure reported by the remote store, carrying the service's
// own category and, for rate limiting, its suggested retry delay.
type Error struct {
	Code Code
	// RetryAfter is the service-supplied delay hint; zero when the service
	// provided none.
	RetryAfter time.Duration
	Op         string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the store failure category from err. The second return is
// false when err does not originate from the store's error domain.
func CodeOf(err error) (Code, bool) {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Code, true
	}
	return CodeUnknown, false
}

// IsUnknownItem reports whether err signals a missing record.
func IsUnknownItem(err error) bool {
	code, ok := CodeOf(err)
	return ok && code == CodeUnknownItem
}

// RetryAfterOf returns the service-supplied delay hint carried by err, or
// zero when there is none.
func RetryAfterOf(err error) time.Duration {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.RetryAfter
	}
	return 0
}
