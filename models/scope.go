// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OwnAccountKey is the key used for the user's own account wherever scopes
// are keyed by string (credential store, checkpoint table).
const OwnAccountKey = "account"

// Scope is either the user's own account (zero value) or one linked
// notebook. Scope is comparable and used as a map key.
type Scope struct {
	LinkedNotebookGUID string
}

// OwnAccount returns the scope of the user's own account.
func OwnAccount() Scope {
	return Scope{}
}

// LinkedNotebookScope returns the scope of the linked notebook guid. An
// empty guid yields the own-account scope.
func LinkedNotebookScope(guid string) Scope {
	return Scope{LinkedNotebookGUID: guid}
}

// ScopeFromKey is the inverse of [Scope.Key].
func ScopeFromKey(key string) Scope {
	if key == OwnAccountKey || key == "" {
		return OwnAccount()
	}
	return LinkedNotebookScope(key)
}

// IsOwnAccount reports whether s is the user's own account.
func (s Scope) IsOwnAccount() bool {
	return s.LinkedNotebookGUID == ""
}

// Key returns a stable string key for s.
func (s Scope) Key() string {
	if s.IsOwnAccount() {
		return OwnAccountKey
	}
	return s.LinkedNotebookGUID
}

// String implements [fmt.Stringer].
func (s Scope) String() string {
	if s.IsOwnAccount() {
		return "own account"
	}
	return "linked notebook " + s.LinkedNotebookGUID
}

// Checkpoint is the per-scope sync progress persisted across sessions.
type Checkpoint struct {
	LastUpdateCount       int64      `json:"last_update_count"`
	LastFullSyncTimestamp *time.Time `json:"last_full_sync_timestamp,omitempty"`
}

// Checkpoints maps each scope to its checkpoint.
type Checkpoints map[Scope]Checkpoint

// Clone returns an independent copy of c.
func (c Checkpoints) Clone() Checkpoints {
	out := make(Checkpoints, len(c))
	for k, v := range c {
		if v.LastFullSyncTimestamp != nil {
			ts := *v.LastFullSyncTimestamp
			v.LastFullSyncTimestamp = &ts
		}
		out[k] = v
	}
	return out
}

// Advance raises the update count of scope to usn. Lower values are
// ignored so a checkpoint never moves backwards.
func (c Checkpoints) Advance(scope Scope, usn int64) {
	cp := c[scope]
	if usn > cp.LastUpdateCount {
		cp.LastUpdateCount = usn
		c[scope] = cp
	}
}
