package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

type linkedClient struct {
	endpoint string
	client   NoteStore
}

type scopeResolver struct {
	ownURL  string
	tokens  TokenSource
	opts    Options
	logger  *logger.Logger
	factory func(baseURL string, scope models.Scope) (NoteStore, error)

	mu        sync.Mutex
	own       NoteStore
	notebooks map[string]models.LinkedNotebookAuthData
	linked    map[string]linkedClient
}

// NewScopeResolver returns a [ScopeResolver] whose own-account client talks
// to ownURL. Linked notebook clients are created on first use from the
// notebook's remote store endpoint, falling back to ownURL.
func NewScopeResolver(ownURL string, tokens TokenSource, opts Options, log *logger.Logger) (ScopeResolver, error) {
	r := &scopeResolver{
		ownURL:    ownURL,
		tokens:    tokens,
		opts:      opts,
		logger:    log,
		notebooks: make(map[string]models.LinkedNotebookAuthData),
		linked:    make(map[string]linkedClient),
	}
	r.factory = func(baseURL string, scope models.Scope) (NoteStore, error) {
		return NewHTTPNoteStore(baseURL, scope, r.tokens, r.opts, r.logger.WithScope(scope))
	}

	own, err := r.factory(ownURL, models.OwnAccount())
	if err != nil {
		return nil, err
	}
	r.own = own

	return r, nil
}

// ClientFor implements [ScopeResolver].
func (r *scopeResolver) ClientFor(_ context.Context, scope models.Scope) (NoteStore, error) {
	if scope.IsOwnAccount() {
		return r.own, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	guid := scope.LinkedNotebookGUID
	auth, ok := r.notebooks[guid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLinkedNotebook, guid)
	}

	endpoint := auth.RemoteStoreEndpoint
	if endpoint == "" {
		endpoint = r.ownURL
	}

	if cached, ok := r.linked[guid]; ok && cached.endpoint == endpoint {
		return cached.client, nil
	}

	client, err := r.factory(endpoint, scope)
	if err != nil {
		return nil, fmt.Errorf("client for %s: %w", scope, err)
	}
	r.linked[guid] = linkedClient{endpoint: endpoint, client: client}

	return client, nil
}

// SetLinkedNotebooks implements [ScopeResolver].
func (r *scopeResolver) SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notebooks = make(map[string]models.LinkedNotebookAuthData, len(notebooks))
	for guid, auth := range notebooks {
		r.notebooks[guid] = auth
	}

	for guid := range r.linked {
		if _, ok := r.notebooks[guid]; !ok {
			delete(r.linked, guid)
		}
	}
}
