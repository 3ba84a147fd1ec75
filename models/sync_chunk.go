package models

import "time"

// SyncState is the remote service's view of a scope.
type SyncState struct {
	UpdateCount    int64     `json:"update_count"`
	FullSyncBefore time.Time `json:"full_sync_before"`
	CurrentTime    time.Time `json:"current_time"`
}

// SyncChunk is one page of remote changes covering a usn range.
type SyncChunk struct {
	ChunkHighUSN int64 `json:"chunk_high_usn"`
	UpdateCount  int64 `json:"update_count"`

	Tags            []*Tag            `json:"tags,omitempty"`
	SavedSearches   []*SavedSearch    `json:"saved_searches,omitempty"`
	Notebooks       []*Notebook       `json:"notebooks,omitempty"`
	Notes           []*Note           `json:"notes,omitempty"`
	Resources       []*Resource       `json:"resources,omitempty"`
	LinkedNotebooks []*LinkedNotebook `json:"linked_notebooks,omitempty"`

	ExpungedTags            []string `json:"expunged_tags,omitempty"`
	ExpungedSavedSearches   []string `json:"expunged_saved_searches,omitempty"`
	ExpungedNotebooks       []string `json:"expunged_notebooks,omitempty"`
	ExpungedNotes           []string `json:"expunged_notes,omitempty"`
	ExpungedLinkedNotebooks []string `json:"expunged_linked_notebooks,omitempty"`
}

// Descriptors returns the chunk's changes of one kind as pull descriptors
// for scope. Null entries of a decoded chunk are skipped.
func (c *SyncChunk) Descriptors(kind EntityKind, scope Scope) []EntityDescriptor {
	var out []EntityDescriptor
	add := func(e Entity) {
		m := e.Meta()
		out = append(out, EntityDescriptor{
			Kind:        kind,
			GUID:        m.GUID,
			ExpectedUSN: m.USN,
			Scope:       scope,
			Entity:      e,
		})
	}
	switch kind {
	case KindTag:
		for _, e := range c.Tags {
			if e != nil {
				add(e)
			}
		}
	case KindSavedSearch:
		for _, e := range c.SavedSearches {
			if e != nil {
				add(e)
			}
		}
	case KindNotebook:
		for _, e := range c.Notebooks {
			if e != nil {
				add(e)
			}
		}
	case KindNote:
		for _, e := range c.Notes {
			if e != nil {
				add(e)
			}
		}
	case KindResource:
		for _, e := range c.Resources {
			if e != nil {
				add(e)
			}
		}
	case KindLinkedNotebook:
		for _, e := range c.LinkedNotebooks {
			if e != nil {
				add(e)
			}
		}
	}
	return out
}

// Expunged returns the guids of kind expunged in this chunk.
func (c *SyncChunk) Expunged(kind EntityKind) []string {
	switch kind {
	case KindTag:
		return c.ExpungedTags
	case KindSavedSearch:
		return c.ExpungedSavedSearches
	case KindNotebook:
		return c.ExpungedNotebooks
	case KindNote:
		return c.ExpungedNotes
	case KindLinkedNotebook:
		return c.ExpungedLinkedNotebooks
	}
	return nil
}
