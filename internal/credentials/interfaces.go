// Package credentials persists auth tokens for the own account and for each
// linked notebook. Tokens are sealed at rest with a key derived from the
// configured storage passphrase.
package credentials

import (
	"context"

	"github.com/MKhiriev/go-note-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/token_store_mock.go -package=mock

// TokenStore reads and writes auth tokens keyed by scope key: "account" for
// the own account, the linked notebook guid otherwise.
type TokenStore interface {
	// ReadToken returns the stored token for key or [ErrTokenNotFound].
	ReadToken(ctx context.Context, key string) (models.AuthToken, error)
	// WriteToken stores token under key, replacing any previous value.
	WriteToken(ctx context.Context, key string, token models.AuthToken) error
	// DeleteToken removes the token under key. Deleting a missing key
	// returns [ErrTokenNotFound].
	DeleteToken(ctx context.Context, key string) error
	// Close releases the underlying file.
	Close() error
}
