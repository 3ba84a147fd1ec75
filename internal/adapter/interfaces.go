// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for talking to the remote
// note service.
//
// [NoteStore] is the per-scope data API (sync state, sync chunks, entity
// writes and payload downloads). [UserStore] covers authentication for the
// own account and, in one batch request, for every linked notebook.
// [ScopeResolver] hands out a [NoteStore] for a scope, creating linked
// notebook clients lazily and caching them by guid.
//
// Remote failures decode into [*RemoteError]; callers match them with
// [errors.Is] against [ErrRateLimitReached], [ErrAuthExpired] and
// [ErrDataConflict].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// NoteStore is the remote data API of one scope.
type NoteStore interface {
	// GetSyncState returns the scope's current update count and the time
	// before which a full sync is required.
	GetSyncState(ctx context.Context) (models.SyncState, error)

	// GetSyncChunk returns up to maxEntries changes with usn > afterUSN.
	GetSyncChunk(ctx context.Context, afterUSN int64, maxEntries int, fullSync bool) (*models.SyncChunk, error)

	// Create uploads a new entity and returns the remote version, which
	// carries the assigned guid and usn.
	Create(ctx context.Context, entity models.Entity) (models.Entity, error)

	// Update uploads a modified entity and returns the remote version.
	Update(ctx context.Context, entity models.Entity) (models.Entity, error)

	// DownloadFullPayload returns the entity with its content body.
	DownloadFullPayload(ctx context.Context, kind models.EntityKind, guid string) (models.Entity, error)
}

// UserStore authenticates the own account and linked notebooks.
type UserStore interface {
	// RefreshAuthentication exchanges token for a fresh own-account token.
	RefreshAuthentication(ctx context.Context, token string) (models.AuthToken, error)

	// AuthenticateToSharedNotebooks obtains tokens for every notebook in one
	// request, keyed by linked notebook guid.
	AuthenticateToSharedNotebooks(ctx context.Context, ownToken string, notebooks []models.LinkedNotebookAuthData) (map[string]models.AuthToken, error)
}

// TokenSource supplies the current auth token of a scope.
type TokenSource interface {
	Token(ctx context.Context, scope models.Scope) (string, error)
}

// ScopeResolver returns the remote client of a scope.
type ScopeResolver interface {
	ClientFor(ctx context.Context, scope models.Scope) (NoteStore, error)
	// SetLinkedNotebooks replaces the auth data used to build linked
	// notebook clients. Cached clients whose endpoint is unchanged survive.
	SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData)
}
