package models

import "time"

// LinkedNotebookAuthData is what the sync engine needs to authenticate
// against a linked notebook scope. It is resolved once per session.
type LinkedNotebookAuthData struct {
	GUID                string `json:"guid"`
	ShardID             string `json:"shard_id"`
	SharedResourceID    string `json:"shared_resource_id"`
	URI                 string `json:"uri,omitempty"`
	RemoteStoreEndpoint string `json:"remote_store_endpoint"`
}

// AuthToken is an authentication token for one scope.
type AuthToken struct {
	Token     string    `json:"token"`
	ShardID   string    `json:"shard_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`

	// NoteStoreURL is returned with own-account tokens and points at the
	// user's shard.
	NoteStoreURL string `json:"note_store_url,omitempty"`
}

// IsZero reports whether the token is empty.
func (t AuthToken) IsZero() bool {
	return t.Token == ""
}

// ExpiresWithin reports whether t expires before now+window. A token
// without an expiry never expires.
func (t AuthToken) ExpiresWithin(now time.Time, window time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(window).Before(t.ExpiresAt)
}
