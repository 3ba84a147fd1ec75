// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Title quality values carried in [NoteAttributes.NoteTitleQuality].
const (
	NoteTitleQualityUntitled int32 = 0
	NoteTitleQualityLow      int32 = 1
	NoteTitleQualityMedium   int32 = 2
	NoteTitleQualityHigh     int32 = 3
)

// Note is a single note. Content is ENML markup and is treated as opaque
// by the sync engine except for title synthesis.
type Note struct {
	SyncMeta

	Title   string `json:"title"`
	Content string `json:"content,omitempty"`

	// NotebookGUID and NotebookLocalID reference the owning notebook. Before
	// the notebook is pushed only the local id is known.
	NotebookGUID    string `json:"notebook_guid,omitempty"`
	NotebookLocalID string `json:"notebook_local_id,omitempty"`

	TagGUIDs    []string `json:"tag_guids,omitempty"`
	TagLocalIDs []string `json:"tag_local_ids,omitempty"`

	Active  bool       `json:"active"`
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
	Deleted *time.Time `json:"deleted,omitempty"`

	Attributes NoteAttributes `json:"attributes"`
}

// NoteAttributes holds optional note attributes relevant to sync.
type NoteAttributes struct {
	// NoteTitleQuality is nil when the title was assigned manually.
	NoteTitleQuality *int32 `json:"note_title_quality,omitempty"`
	SourceURL        string `json:"source_url,omitempty"`
}

func (n *Note) Kind() EntityKind { return KindNote }
func (n *Note) Meta() *SyncMeta  { return &n.SyncMeta }

func (n *Note) Clone() Entity {
	c := *n
	c.TagGUIDs = cloneStrings(n.TagGUIDs)
	c.TagLocalIDs = cloneStrings(n.TagLocalIDs)
	c.Created = cloneTime(n.Created)
	c.Updated = cloneTime(n.Updated)
	c.Deleted = cloneTime(n.Deleted)
	if n.Attributes.NoteTitleQuality != nil {
		q := *n.Attributes.NoteTitleQuality
		c.Attributes.NoteTitleQuality = &q
	}
	return &c
}

// HasTagGUID reports whether guid is already listed in TagGUIDs.
func (n *Note) HasTagGUID(guid string) bool {
	for _, g := range n.TagGUIDs {
		if g == guid {
			return true
		}
	}
	return false
}

// HasTagLocalID reports whether localID is listed in TagLocalIDs.
func (n *Note) HasTagLocalID(localID string) bool {
	for _, id := range n.TagLocalIDs {
		if id == localID {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
