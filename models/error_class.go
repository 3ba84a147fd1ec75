package models

// ErrorClass is the coarse classification of a sync failure.
type ErrorClass int

const (
	ErrorUnclassified ErrorClass = iota
	ErrorRateLimited
	ErrorAuthExpired
	ErrorDataConflict
	ErrorTransientIO
	ErrorInvariantViolation
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorRateLimited:
		return "rate_limited"
	case ErrorAuthExpired:
		return "auth_expired"
	case ErrorDataConflict:
		return "data_conflict"
	case ErrorTransientIO:
		return "transient_io"
	case ErrorInvariantViolation:
		return "invariant_violation"
	default:
		return "unclassified"
	}
}

// Pausing reports whether a failure of this class suspends the current
// phase instead of failing the session.
func (c ErrorClass) Pausing() bool {
	return c == ErrorRateLimited || c == ErrorAuthExpired
}
