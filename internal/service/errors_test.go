package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorClass
	}{
		{name: "nil", err: nil, want: models.ErrorUnclassified},
		{name: "rate limit", err: fmt.Errorf("push: %w", rateLimitErr(10)), want: models.ErrorRateLimited},
		{name: "auth expired", err: authExpiredErr(), want: models.ErrorAuthExpired},
		{name: "data conflict", err: dataConflictErr(), want: models.ErrorDataConflict},
		{name: "invariant", err: fmt.Errorf("%w: %w", ErrInvariantViolation, ErrTagCycle), want: models.ErrorInvariantViolation},
		{name: "unexpected auth expiration wins", err: fmt.Errorf("%w: %w", ErrUnexpectedAuthExpiration, authExpiredErr()), want: models.ErrorUnclassified},
		{name: "service unavailable", err: adapter.ErrServiceUnavailable, want: models.ErrorTransientIO},
		{name: "deadline", err: context.DeadlineExceeded, want: models.ErrorTransientIO},
		{name: "store query", err: fmt.Errorf("list: %w", store.ErrExecutingQuery), want: models.ErrorTransientIO},
		{name: "network", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: models.ErrorTransientIO},
		{name: "unknown remote code", err: &adapter.RemoteError{Code: adapter.CodeUnknown}, want: models.ErrorUnclassified},
		{name: "plain", err: errors.New("boom"), want: models.ErrorUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestErrorClass_Pausing(t *testing.T) {
	assert.True(t, Classify(rateLimitErr(1)).Pausing())
	assert.True(t, Classify(authExpiredErr()).Pausing())
	assert.False(t, Classify(dataConflictErr()).Pausing())
}
