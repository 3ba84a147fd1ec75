// Package store holds the local replica of the user's account: syncable
// entities and per-scope checkpoints. Two implementations are provided, an
// SQLite one for real runs and an in-memory one with an optional JSON
// snapshot file.
package store

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalStore is the CRUD facade over the local replica. Implementations are
// safe for concurrent use. Not-found lookups return [ErrEntityNotFound].
type LocalStore interface {
	// ListDirty returns every entity of kind in scope with the dirty flag set.
	ListDirty(ctx context.Context, kind models.EntityKind, scope models.Scope) ([]models.Entity, error)
	FindByGUID(ctx context.Context, kind models.EntityKind, guid string) (models.Entity, error)
	FindByLocalID(ctx context.Context, kind models.EntityKind, localID string) (models.Entity, error)
	// Put inserts or replaces the entity addressed by its local id. An entity
	// without a local id but with a guid takes the local id of the stored
	// entity with that guid, or the guid itself when none exists.
	Put(ctx context.Context, entity models.Entity) error
	// PutAll stores entities in one transaction: either all of them are
	// stored or none is.
	PutAll(ctx context.Context, entities ...models.Entity) error
	// FindOwningNote returns the note that owns the resource with guid.
	FindOwningNote(ctx context.Context, resourceGUID string) (*models.Note, error)
	// Expunge removes the entity with guid. Expunging a note also removes
	// its resources. Expunging a missing guid is not an error.
	Expunge(ctx context.Context, kind models.EntityKind, guid string) error
	ListLinkedNotebooks(ctx context.Context) ([]*models.LinkedNotebook, error)
}

// CheckpointStore persists per-scope checkpoints between sessions.
type CheckpointStore interface {
	LoadCheckpoints(ctx context.Context) (models.Checkpoints, error)
	SaveCheckpoints(ctx context.Context, checkpoints models.Checkpoints) error
}

// Store is the full local replica handed to the sync service.
type Store interface {
	LocalStore
	CheckpointStore
	Close() error
}
