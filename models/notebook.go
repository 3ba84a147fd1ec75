package models

// Notebook groups notes.
type Notebook struct {
	SyncMeta

	Name      string `json:"name"`
	Stack     string `json:"stack,omitempty"`
	IsDefault bool   `json:"is_default"`
}

func (n *Notebook) Kind() EntityKind { return KindNotebook }
func (n *Notebook) Meta() *SyncMeta  { return &n.SyncMeta }

func (n *Notebook) Clone() Entity {
	c := *n
	return &c
}
