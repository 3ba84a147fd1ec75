package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntityNotFound is returned when a lookup by guid or local id
	// matches nothing.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned by Put for an entity that has neither a
	// guid nor a local id.
	ErrInvalidEntity = errors.New("entity has neither guid nor local id")

	// ErrUnknownKind is returned when a stored row carries a kind this build
	// does not know how to decode.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan entity row")
	ErrScanningRows         = errors.New("failed to scan entity rows")
	ErrDecodingPayload      = errors.New("failed to decode entity payload")
)
