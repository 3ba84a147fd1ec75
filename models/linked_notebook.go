// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LinkedNotebook is a notebook owned by another account and shared into the
// user's view. It lives in the user's own account; the notebook content
// lives in a separate scope addressed by the linked notebook guid.
type LinkedNotebook struct {
	SyncMeta

	ShareName string `json:"share_name"`
	Username  string `json:"username"`
	ShardID   string `json:"shard_id"`

	// SharedNotebookGlobalID identifies the shared resource on the owner's
	// shard and is used to request a scoped token.
	SharedNotebookGlobalID string `json:"shared_notebook_global_id"`

	URI          string `json:"uri,omitempty"`
	NoteStoreURL string `json:"note_store_url"`
}

func (l *LinkedNotebook) Kind() EntityKind { return KindLinkedNotebook }
func (l *LinkedNotebook) Meta() *SyncMeta  { return &l.SyncMeta }

func (l *LinkedNotebook) Clone() Entity {
	c := *l
	return &c
}

// AuthData extracts the fields needed to authenticate against the linked
// notebook's scope.
func (l *LinkedNotebook) AuthData() LinkedNotebookAuthData {
	return LinkedNotebookAuthData{
		GUID:                l.GUID,
		ShardID:             l.ShardID,
		SharedResourceID:    l.SharedNotebookGlobalID,
		URI:                 l.URI,
		RemoteStoreEndpoint: l.NoteStoreURL,
	}
}
