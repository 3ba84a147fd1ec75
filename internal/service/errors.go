package service

import (
	"context"
	"errors"
	"net"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

var (
	ErrInvariantViolation       = errors.New("invariant violation")
	ErrUnexpectedAuthExpiration = errors.New("unexpected auth expiration: cached tokens are still valid")

	ErrTagCycle           = errors.New("tag parent cycle")
	ErrDanglingTagParent  = errors.New("tag references unknown parent")
	ErrUnresolvedNotebook = errors.New("note references unknown notebook")
	ErrUnresolvedNote     = errors.New("resource references unknown note")
	ErrMissingRemoteGUID  = errors.New("remote returned entity without guid")

	ErrNoAuthToken       = errors.New("no auth token available")
	ErrPushInProgress    = errors.New("push is already running")
	ErrSessionInProgress = errors.New("sync session is already running")
	ErrPullerNotFound    = errors.New("no pull processor for kind")
)

// Classify maps err into the sync error taxonomy.
func Classify(err error) models.ErrorClass {
	if err == nil {
		return models.ErrorUnclassified
	}

	switch {
	case errors.Is(err, ErrUnexpectedAuthExpiration):
		return models.ErrorUnclassified
	case errors.Is(err, adapter.ErrRateLimitReached):
		return models.ErrorRateLimited
	case errors.Is(err, adapter.ErrAuthExpired):
		return models.ErrorAuthExpired
	case errors.Is(err, adapter.ErrDataConflict):
		return models.ErrorDataConflict
	case errors.Is(err, ErrInvariantViolation):
		return models.ErrorInvariantViolation
	case isTransient(err):
		return models.ErrorTransientIO
	}

	return models.ErrorUnclassified
}

func isTransient(err error) bool {
	transient := []error{
		adapter.ErrServiceUnavailable,
		context.DeadlineExceeded,
		store.ErrBuildingSQLQuery,
		store.ErrExecutingQuery,
		store.ErrExecutingStatement,
		store.ErrBeginningTransaction,
		store.ErrCommitingTransaction,
		store.ErrScanningRow,
		store.ErrScanningRows,
	}
	for _, target := range transient {
		if errors.Is(err, target) {
			return true
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
