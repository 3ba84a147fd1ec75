package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// ── Remote errors ────────────────────────────────────────────────────────────

func rateLimitErr(seconds int) error {
	return &adapter.RemoteError{Code: adapter.CodeRateLimitReached, RateLimitSeconds: seconds, StatusCode: 429}
}

func authExpiredErr() error {
	return &adapter.RemoteError{Code: adapter.CodeAuthExpired, StatusCode: 401}
}

func dataConflictErr() error {
	return &adapter.RemoteError{Code: adapter.CodeDataConflict, StatusCode: 409}
}

// ── fakeRemote ───────────────────────────────────────────────────────────────

// fakeRemote — потокобезопасная in-memory реализация adapter.NoteStore.
// Ошибки ставятся в очередь и отдаются по одной на вызов.
type fakeRemote struct {
	mu sync.Mutex

	state      models.SyncState
	stateErr   []error
	sessionIDs []string
	chunks     []*models.SyncChunk
	chunkErr   []error

	entities     map[models.EntityKind]map[string]models.Entity
	downloadErrs map[string][]error
	downloads    []string

	sendErrs  []error
	nextUSN   int64
	nextGUID  int
	blankGUID bool
	sent      []models.Entity
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		entities:     make(map[models.EntityKind]map[string]models.Entity),
		downloadErrs: make(map[string][]error),
	}
}

// serve registers entities as downloadable payloads.
func (r *fakeRemote) serve(entities ...models.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entities {
		if r.entities[e.Kind()] == nil {
			r.entities[e.Kind()] = make(map[string]models.Entity)
		}
		r.entities[e.Kind()][e.Meta().GUID] = e.Clone()
	}
}

func (r *fakeRemote) failDownload(guid string, errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.downloadErrs[guid] = append(r.downloadErrs[guid], errs...)
}

func (r *fakeRemote) failSend(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sendErrs = append(r.sendErrs, errs...)
}

func (r *fakeRemote) downloaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.downloads...)
}

func (r *fakeRemote) sentEntities() []models.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]models.Entity(nil), r.sent...)
}

func (r *fakeRemote) GetSyncState(ctx context.Context) (models.SyncState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := utils.GetSessionIDFromContext(ctx); ok {
		r.sessionIDs = append(r.sessionIDs, id)
	}

	if len(r.stateErr) > 0 {
		err := r.stateErr[0]
		r.stateErr = r.stateErr[1:]
		return models.SyncState{}, err
	}
	return r.state, nil
}

func (r *fakeRemote) GetSyncChunk(_ context.Context, afterUSN int64, _ int, _ bool) (*models.SyncChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.chunkErr) > 0 {
		err := r.chunkErr[0]
		r.chunkErr = r.chunkErr[1:]
		return nil, err
	}
	for _, c := range r.chunks {
		if c.ChunkHighUSN > afterUSN {
			return c, nil
		}
	}
	return &models.SyncChunk{UpdateCount: r.state.UpdateCount}, nil
}

func (r *fakeRemote) Create(ctx context.Context, entity models.Entity) (models.Entity, error) {
	return r.send(ctx, entity, true)
}

func (r *fakeRemote) Update(ctx context.Context, entity models.Entity) (models.Entity, error) {
	return r.send(ctx, entity, false)
}

func (r *fakeRemote) send(_ context.Context, entity models.Entity, create bool) (models.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sendErrs) > 0 {
		err := r.sendErrs[0]
		r.sendErrs = r.sendErrs[1:]
		return nil, err
	}

	out := entity.Clone()
	m := out.Meta()
	if create {
		r.nextGUID++
		m.GUID = fmt.Sprintf("remote-%s-%d", entity.Kind(), r.nextGUID)
	}
	if r.blankGUID {
		m.GUID = ""
	}
	r.nextUSN++
	m.USN = r.nextUSN
	m.Dirty = false

	r.sent = append(r.sent, out.Clone())
	return out, nil
}

func (r *fakeRemote) DownloadFullPayload(_ context.Context, kind models.EntityKind, guid string) (models.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.downloads = append(r.downloads, guid)
	if errs := r.downloadErrs[guid]; len(errs) > 0 {
		r.downloadErrs[guid] = errs[1:]
		return nil, errs[0]
	}
	e, ok := r.entities[kind][guid]
	if !ok {
		return nil, adapter.ErrNotFound
	}
	return e.Clone(), nil
}

// ── fakeResolver ─────────────────────────────────────────────────────────────

type fakeResolver struct {
	mu      sync.Mutex
	clients map[models.Scope]adapter.NoteStore
	linked  map[string]models.LinkedNotebookAuthData
}

func newFakeResolver(own adapter.NoteStore) *fakeResolver {
	return &fakeResolver{clients: map[models.Scope]adapter.NoteStore{models.OwnAccount(): own}}
}

func (r *fakeResolver) with(guid string, client adapter.NoteStore) *fakeResolver {
	r.clients[models.LinkedNotebookScope(guid)] = client
	return r
}

func (r *fakeResolver) ClientFor(_ context.Context, scope models.Scope) (adapter.NoteStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %s", adapter.ErrUnknownLinkedNotebook, scope.LinkedNotebookGUID)
	}
	return c, nil
}

func (r *fakeResolver) SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.linked = notebooks
}

// ── fakeTokens ───────────────────────────────────────────────────────────────

type fakeTokens struct {
	mu sync.Mutex

	ownErr          error
	linkedRefreshed bool
	linkedErr       error

	ownCalls        int
	ownRefreshes    int
	linkedRefreshes []bool
	linked          map[string]models.LinkedNotebookAuthData
}

func (t *fakeTokens) Token(context.Context, models.Scope) (string, error) {
	return "token", nil
}

func (t *fakeTokens) OwnToken(context.Context) (models.AuthToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ownCalls++
	return models.AuthToken{Token: "token"}, t.ownErr
}

func (t *fakeTokens) RefreshOwnToken(context.Context) (models.AuthToken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.ownRefreshes++
	return models.AuthToken{Token: "fresh"}, nil
}

func (t *fakeTokens) LinkedNotebookToken(context.Context, string) (models.AuthToken, error) {
	return models.AuthToken{Token: "linked"}, nil
}

func (t *fakeTokens) RefreshLinkedNotebookTokens(_ context.Context, force bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.linkedRefreshes = append(t.linkedRefreshes, force)
	return t.linkedRefreshed, t.linkedErr
}

func (t *fakeTokens) SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.linked = notebooks
}

// ── recordingNotifier ────────────────────────────────────────────────────────

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.Event
}

func (n *recordingNotifier) Notify(event models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []models.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]models.EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

func (n *recordingNotifier) count(t models.EventType) int {
	c := 0
	for _, got := range n.types() {
		if got == t {
			c++
		}
	}
	return c
}

// ── helpers ──────────────────────────────────────────────────────────────────

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewMemoryStore("")
	require.NoError(t, err)
	return s
}

func put(t *testing.T, s store.LocalStore, entities ...models.Entity) {
	t.Helper()
	for _, e := range entities {
		require.NoError(t, s.Put(context.Background(), e))
	}
}

func dirty(t *testing.T, s store.LocalStore, kind models.EntityKind, scope models.Scope) []models.Entity {
	t.Helper()
	out, err := s.ListDirty(context.Background(), kind, scope)
	require.NoError(t, err)
	return out
}

// readyAfter returns an afterFunc that fires immediately and records every
// requested duration.
func readyAfter(waits *[]time.Duration, mu *sync.Mutex) afterFunc {
	return func(d time.Duration) <-chan time.Time {
		mu.Lock()
		*waits = append(*waits, d)
		mu.Unlock()
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

func descriptor(kind models.EntityKind, guid string, usn int64) models.EntityDescriptor {
	return models.EntityDescriptor{Kind: kind, GUID: guid, ExpectedUSN: usn, Scope: models.OwnAccount()}
}
