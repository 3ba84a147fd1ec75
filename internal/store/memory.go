package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MKhiriev/go-note-sync/models"
)

type entityKey struct {
	kind    models.EntityKind
	localID string
}

type memoryEntry struct {
	seq    int64
	entity models.Entity
}

// memoryStore is an in-process [Store]. When path is set the whole state
// is written to a JSON snapshot after every mutation and read back on open.
type memoryStore struct {
	path string

	mu          sync.RWMutex
	nextSeq     int64
	entities    map[entityKey]*memoryEntry
	byGUID      map[models.EntityKind]map[string]string
	checkpoints models.Checkpoints
}

type persistedEntity struct {
	Kind    models.EntityKind `json:"kind"`
	Seq     int64             `json:"seq"`
	Payload json.RawMessage   `json:"payload"`
}

type memoryPersistedState struct {
	NextSeq     int64                        `json:"next_seq"`
	Entities    []persistedEntity            `json:"entities"`
	Checkpoints map[string]models.Checkpoint `json:"checkpoints"`
}

// NewMemoryStore returns an empty store, loading path when it names an
// existing snapshot. An empty path, ":memory:" or "memory" keeps the store
// purely in memory.
func NewMemoryStore(path string) (Store, error) {
	if path == ":memory:" || path == "memory" {
		path = ""
	}

	s := &memoryStore{
		path:        path,
		nextSeq:     1,
		entities:    make(map[entityKey]*memoryEntry),
		byGUID:      make(map[models.EntityKind]map[string]string),
		checkpoints: make(models.Checkpoints),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *memoryStore) ListDirty(_ context.Context, kind models.EntityKind, scope models.Scope) ([]models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryEntry, 0)
	for key, entry := range s.entities {
		m := entry.entity.Meta()
		if key.kind == kind && m.Dirty && m.LinkedNotebookGUID == scope.LinkedNotebookGUID {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]models.Entity, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.entity.Clone())
	}
	return out, nil
}

func (s *memoryStore) FindByGUID(_ context.Context, kind models.EntityKind, guid string) (models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.findByGUIDLocked(kind, guid)
	if !ok {
		return nil, ErrEntityNotFound
	}
	return e.Clone(), nil
}

func (s *memoryStore) FindByLocalID(_ context.Context, kind models.EntityKind, localID string) (models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entities[entityKey{kind: kind, localID: localID}]
	if !ok {
		return nil, ErrEntityNotFound
	}
	return entry.entity.Clone(), nil
}

func (s *memoryStore) Put(_ context.Context, entity models.Entity) error {
	if entity == nil || !entity.Meta().Valid() {
		return ErrInvalidEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity = entity.Clone()
	s.putLocked(entity)

	return s.persist()
}

func (s *memoryStore) PutAll(_ context.Context, entities ...models.Entity) error {
	for _, e := range entities {
		if e == nil || !e.Meta().Valid() {
			return ErrInvalidEntity
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entities {
		s.putLocked(e.Clone())
	}

	return s.persist()
}

func (s *memoryStore) putLocked(entity models.Entity) {
	kind := entity.Kind()
	m := entity.Meta()
	if m.LocalID == "" {
		m.LocalID = m.GUID
		if localID, ok := s.byGUID[kind][m.GUID]; ok {
			m.LocalID = localID
		}
	}

	key := entityKey{kind: kind, localID: m.LocalID}
	entry, ok := s.entities[key]
	if ok {
		if old := entry.entity.Meta().GUID; old != "" && old != m.GUID {
			delete(s.byGUID[kind], old)
		}
		entry.entity = entity
	} else {
		entry = &memoryEntry{seq: s.nextSeq, entity: entity}
		s.nextSeq++
		s.entities[key] = entry
	}

	if m.GUID != "" {
		if s.byGUID[kind] == nil {
			s.byGUID[kind] = make(map[string]string)
		}
		s.byGUID[kind][m.GUID] = m.LocalID
	}
}

func (s *memoryStore) FindOwningNote(_ context.Context, resourceGUID string) (*models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.findByGUIDLocked(models.KindResource, resourceGUID)
	if !ok {
		return nil, ErrEntityNotFound
	}
	res := e.(*models.Resource)

	if res.NoteGUID != "" {
		if note, ok := s.findByGUIDLocked(models.KindNote, res.NoteGUID); ok {
			return note.Clone().(*models.Note), nil
		}
	}
	if res.NoteLocalID != "" {
		if entry, ok := s.entities[entityKey{kind: models.KindNote, localID: res.NoteLocalID}]; ok {
			return entry.entity.Clone().(*models.Note), nil
		}
	}

	return nil, ErrEntityNotFound
}

func (s *memoryStore) Expunge(_ context.Context, kind models.EntityKind, guid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expungeLocked(kind, guid)
	if kind == models.KindNote {
		for key, entry := range s.entities {
			if key.kind != models.KindResource {
				continue
			}
			if res := entry.entity.(*models.Resource); res.NoteGUID == guid {
				s.expungeLocked(models.KindResource, res.GUID)
				delete(s.entities, key)
			}
		}
	}

	return s.persist()
}

func (s *memoryStore) expungeLocked(kind models.EntityKind, guid string) {
	localID, ok := s.byGUID[kind][guid]
	if !ok {
		return
	}
	delete(s.byGUID[kind], guid)
	delete(s.entities, entityKey{kind: kind, localID: localID})
}

func (s *memoryStore) ListLinkedNotebooks(_ context.Context) ([]*models.LinkedNotebook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryEntry, 0)
	for key, entry := range s.entities {
		if key.kind == models.KindLinkedNotebook {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]*models.LinkedNotebook, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.entity.Clone().(*models.LinkedNotebook))
	}
	return out, nil
}

func (s *memoryStore) LoadCheckpoints(_ context.Context) (models.Checkpoints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.checkpoints.Clone(), nil
}

func (s *memoryStore) SaveCheckpoints(_ context.Context, checkpoints models.Checkpoints) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for scope, cp := range checkpoints.Clone() {
		s.checkpoints[scope] = cp
	}
	return s.persist()
}

func (s *memoryStore) Close() error {
	return nil
}

func (s *memoryStore) findByGUIDLocked(kind models.EntityKind, guid string) (models.Entity, bool) {
	if guid == "" {
		return nil, false
	}
	localID, ok := s.byGUID[kind][guid]
	if !ok {
		return nil, false
	}
	entry, ok := s.entities[entityKey{kind: kind, localID: localID}]
	if !ok {
		return nil, false
	}
	return entry.entity, true
}

func (s *memoryStore) load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st memoryPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}

	sort.Slice(st.Entities, func(i, j int) bool { return st.Entities[i].Seq < st.Entities[j].Seq })
	for _, pe := range st.Entities {
		e := models.NewEntity(pe.Kind)
		if e == nil {
			return fmt.Errorf("%w: %q", ErrUnknownKind, pe.Kind)
		}
		if err = json.Unmarshal(pe.Payload, e); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodingPayload, err)
		}
		s.putLocked(e)
	}
	if st.NextSeq > s.nextSeq {
		s.nextSeq = st.NextSeq
	}
	for key, cp := range st.Checkpoints {
		s.checkpoints[models.ScopeFromKey(key)] = cp
	}

	return nil
}

func (s *memoryStore) persist() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	state := memoryPersistedState{
		NextSeq:     s.nextSeq,
		Entities:    make([]persistedEntity, 0, len(s.entities)),
		Checkpoints: make(map[string]models.Checkpoint, len(s.checkpoints)),
	}
	for key, entry := range s.entities {
		payload, err := json.Marshal(entry.entity)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", key.kind, err)
		}
		state.Entities = append(state.Entities, persistedEntity{Kind: key.kind, Seq: entry.seq, Payload: payload})
	}
	for scope, cp := range s.checkpoints {
		state.Checkpoints[scope.Key()] = cp
	}

	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}

	return nil
}
