package models

// Resource is a binary attachment of a note.
type Resource struct {
	SyncMeta

	NoteGUID    string `json:"note_guid,omitempty"`
	NoteLocalID string `json:"note_local_id,omitempty"`

	Mime     string `json:"mime"`
	Data     []byte `json:"data,omitempty"`
	DataHash string `json:"data_hash,omitempty"`
	DataSize int64  `json:"data_size,omitempty"`
}

func (r *Resource) Kind() EntityKind { return KindResource }
func (r *Resource) Meta() *SyncMeta  { return &r.SyncMeta }

func (r *Resource) Clone() Entity {
	c := *r
	if r.Data != nil {
		c.Data = make([]byte, len(r.Data))
		copy(c.Data, r.Data)
	}
	return &c
}
