package adapter

import (
	"errors"
	"fmt"
)

// Remote error codes carried in the error body of the remote service.
const (
	CodeRateLimitReached = "RATE_LIMIT_REACHED"
	CodeAuthExpired      = "AUTH_EXPIRED"
	CodeDataConflict     = "DATA_CONFLICT"
	CodeUnknown          = "UNKNOWN"
)

var (
	ErrRateLimitReached = errors.New("rate limit reached")
	ErrAuthExpired      = errors.New("authentication expired")
	ErrDataConflict     = errors.New("data conflict")

	ErrNotFound               = errors.New("not found")
	ErrBadRequest             = errors.New("bad request")
	ErrServiceUnavailable     = errors.New("service unavailable")
	ErrUnknownLinkedNotebook  = errors.New("unknown linked notebook")
	ErrUnsupportedEntityKind  = errors.New("unsupported entity kind")
	ErrMissingRemoteAuthToken = errors.New("remote returned no auth token")
)

// RemoteError is a failure reported by the remote service.
type RemoteError struct {
	Code             string `json:"code"`
	RateLimitSeconds int    `json:"rate_limit_seconds,omitempty"`
	Message          string `json:"message,omitempty"`
	StatusCode       int    `json:"-"`
}

func (e *RemoteError) Error() string {
	if e.Code == CodeRateLimitReached {
		return fmt.Sprintf("remote error %s (retry in %ds): %s", e.Code, e.RateLimitSeconds, e.Message)
	}
	return fmt.Sprintf("remote error %s: %s", e.Code, e.Message)
}

// Is matches e against the package sentinels by code.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRateLimitReached:
		return e.Code == CodeRateLimitReached
	case ErrAuthExpired:
		return e.Code == CodeAuthExpired
	case ErrDataConflict:
		return e.Code == CodeDataConflict
	}
	return false
}

// RateLimitSeconds extracts the wait duration of a rate-limit failure.
func RateLimitSeconds(err error) (int, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Code == CodeRateLimitReached {
		return remote.RateLimitSeconds, true
	}
	return 0, false
}
