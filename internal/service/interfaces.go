// Package service holds the sync engine: the per-kind pull processors, the
// push synchronizer, the token manager and the session orchestrator that
// sequences them, plus the background job that runs sessions periodically.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-sync/models"
)

// ProgressFunc is called once per item a pull processor finishes, with the
// item's guid and usn. It may be called from several goroutines.
type ProgressFunc func(guid string, usn int64)

// PullProcessor downloads and merges one batch of remote changes of a
// single entity kind.
type PullProcessor interface {
	// Kind returns the entity kind the processor handles.
	Kind() models.EntityKind

	// ProcessBatch processes descriptors concurrently and returns a fresh
	// status. Cancelling ctx stops items that have not started yet; they
	// are reported as cancelled. The returned error is non-nil only when
	// the batch is rejected as a whole or ctx was cancelled.
	ProcessBatch(ctx context.Context, descriptors []models.EntityDescriptor, progress ProgressFunc) (*models.AggregateStatus, error)
}

// Pusher uploads dirty entities of every scope.
type Pusher interface {
	// Run blocks until the push pass is done. checkpoints are not modified;
	// the advanced copy is returned in the result.
	Run(ctx context.Context, checkpoints models.Checkpoints) (PushResult, error)
}

// AuthTokens manages auth tokens of the own account and linked notebooks.
type AuthTokens interface {
	// Token returns the current token of scope, refreshing it first when it
	// is about to expire.
	Token(ctx context.Context, scope models.Scope) (string, error)

	// OwnToken returns the own-account token from cache, credential store or
	// configured developer token, refreshing it within the lookahead window.
	OwnToken(ctx context.Context) (models.AuthToken, error)

	// RefreshOwnToken unconditionally exchanges the own-account token.
	RefreshOwnToken(ctx context.Context) (models.AuthToken, error)

	// LinkedNotebookToken returns the token of one linked notebook.
	LinkedNotebookToken(ctx context.Context, guid string) (models.AuthToken, error)

	// RefreshLinkedNotebookTokens re-authenticates every linked notebook in
	// one request when any token is missing or within the lookahead window,
	// or always when force is set. It reports whether a request was made.
	RefreshLinkedNotebookTokens(ctx context.Context, force bool) (bool, error)

	// SetLinkedNotebooks replaces the known linked notebooks.
	SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData)
}

// SessionRunner runs one sync session.
type SessionRunner interface {
	Run(ctx context.Context) (SessionResult, error)
}

// SyncJob runs sync sessions periodically in the background.
type SyncJob interface {
	// Start stops any running job and launches a new one syncing every
	// interval, defaulting to 5 minutes when interval is not positive.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the job and blocks until it has exited.
	Stop()
}

// afterFunc returns a channel that fires once after d. It is time.After in
// production and replaced in tests.
type afterFunc func(d time.Duration) <-chan time.Time
