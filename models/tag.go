package models

// Tag is a label that can be attached to notes. Tags form a forest through
// the parent reference.
type Tag struct {
	SyncMeta

	Name string `json:"name"`

	// ParentGUID is the remote identity of the parent tag, if any.
	ParentGUID string `json:"parent_guid,omitempty"`

	// ParentLocalID references the parent before it has been pushed.
	ParentLocalID string `json:"parent_local_id,omitempty"`
}

func (t *Tag) Kind() EntityKind { return KindTag }
func (t *Tag) Meta() *SyncMeta  { return &t.SyncMeta }

func (t *Tag) Clone() Entity {
	c := *t
	return &c
}

// HasParent reports whether the tag references a parent by guid or local id.
func (t *Tag) HasParent() bool {
	return t.ParentGUID != "" || t.ParentLocalID != ""
}
