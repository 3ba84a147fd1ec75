// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityKind names one of the syncable entity types.
type EntityKind string

const (
	KindTag            EntityKind = "tag"
	KindSavedSearch    EntityKind = "saved_search"
	KindNotebook       EntityKind = "notebook"
	KindNote           EntityKind = "note"
	KindResource       EntityKind = "resource"
	KindLinkedNotebook EntityKind = "linked_notebook"
)

// String implements [fmt.Stringer].
func (k EntityKind) String() string {
	return string(k)
}

// Entity is implemented by every syncable type: [Tag], [SavedSearch],
// [Notebook], [Note], [Resource] and [LinkedNotebook].
//
// Implementations are pointer types; Meta returns a pointer into the entity
// so the sync engine can rewrite guid, usn and the dirty flag in place.
type Entity interface {
	Kind() EntityKind
	Meta() *SyncMeta
	// Clone returns a deep copy that shares no mutable state with the
	// receiver.
	Clone() Entity
}

// SyncMeta holds the fields shared by all syncable entities.
type SyncMeta struct {
	// LocalID is assigned once on local creation and never reused.
	LocalID string `json:"local_id"`

	// GUID is set once the remote service has accepted the entity.
	GUID string `json:"guid,omitempty"`

	// USN is the update sequence number assigned by the remote service.
	// Zero means the entity has never been round-tripped.
	USN int64 `json:"usn,omitempty"`

	// Dirty is true when the entity changed locally since the last
	// successful upload.
	Dirty bool `json:"dirty"`

	// LinkedNotebookGUID marks the entity as belonging to a linked notebook
	// scope instead of the user's own account.
	LinkedNotebookGUID string `json:"linked_notebook_guid,omitempty"`
}

// Valid reports whether the entity can be addressed at all.
func (m SyncMeta) Valid() bool {
	return m.LocalID != "" || m.GUID != ""
}

// HasUSN reports whether the remote service has assigned a usn.
func (m SyncMeta) HasUSN() bool {
	return m.USN > 0
}

// OwnerScope returns the scope the entity belongs to.
func (m SyncMeta) OwnerScope() Scope {
	return LinkedNotebookScope(m.LinkedNotebookGUID)
}

// detach strips the remote identity so the entity becomes a local-only
// copy that will be pushed as new.
func (m *SyncMeta) detach(localID string) {
	m.LocalID = localID
	m.GUID = ""
	m.USN = 0
	m.Dirty = true
}

// Detach returns a local-only copy of e under localID with guid and usn
// stripped and the dirty flag raised.
func Detach(e Entity, localID string) Entity {
	c := e.Clone()
	c.Meta().detach(localID)
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// NewEntity returns an empty entity of the given kind, ready to be decoded
// into. It returns nil for an unknown kind.
func NewEntity(kind EntityKind) Entity {
	switch kind {
	case KindTag:
		return &Tag{}
	case KindSavedSearch:
		return &SavedSearch{}
	case KindNotebook:
		return &Notebook{}
	case KindNote:
		return &Note{}
	case KindResource:
		return &Resource{}
	case KindLinkedNotebook:
		return &LinkedNotebook{}
	}
	return nil
}

// Kinds lists every syncable kind in pull order.
var Kinds = []EntityKind{
	KindTag, KindSavedSearch, KindLinkedNotebook, KindNotebook, KindNote, KindResource,
}
