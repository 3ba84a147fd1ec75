package models

// SavedSearch is a stored search query. Saved searches exist only in the
// user's own account.
type SavedSearch struct {
	SyncMeta

	Name  string `json:"name"`
	Query string `json:"query"`
}

func (s *SavedSearch) Kind() EntityKind { return KindSavedSearch }
func (s *SavedSearch) Meta() *SyncMeta  { return &s.SyncMeta }

func (s *SavedSearch) Clone() Entity {
	c := *s
	return &c
}
