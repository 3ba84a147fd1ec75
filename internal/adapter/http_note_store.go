package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// SessionIDHeader carries the id of the sync session that issued a request.
const SessionIDHeader = "X-Sync-Session-ID"

var kindPaths = map[models.EntityKind]string{
	models.KindTag:            "/tags",
	models.KindSavedSearch:    "/saved_searches",
	models.KindNotebook:       "/notebooks",
	models.KindNote:           "/notes",
	models.KindResource:       "/resources",
	models.KindLinkedNotebook: "/linked_notebooks",
}

type httpNoteStore struct {
	client *utils.HTTPClient
	scope  models.Scope
	tokens TokenSource
	retry  retryPolicy
	logger *logger.Logger
}

// NewHTTPNoteStore returns the JSON-over-HTTP [NoteStore] of scope rooted at
// baseURL. The auth token is looked up through tokens on every request so a
// refreshed token is picked up without rebuilding the client.
func NewHTTPNoteStore(baseURL string, scope models.Scope, tokens TokenSource, opts Options, log *logger.Logger) (NoteStore, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid note store url: %w", err)
	}

	return &httpNoteStore{
		client: utils.NewHTTPClient(normalized, opts.RequestTimeout),
		scope:  scope,
		tokens: tokens,
		retry:  retryPolicy{maxRetries: opts.MaxRetries, baseDelay: opts.RetryBaseDelay},
		logger: log,
	}, nil
}

// GetSyncState implements [NoteStore]. GET /sync/state.
func (h *httpNoteStore) GetSyncState(ctx context.Context) (models.SyncState, error) {
	var state models.SyncState

	resp, err := h.send(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.Get("/sync/state")
	})
	if err != nil {
		return models.SyncState{}, fmt.Errorf("get sync state: %w", err)
	}
	if err = json.Unmarshal(resp.Body(), &state); err != nil {
		return models.SyncState{}, fmt.Errorf("decode sync state: %w", err)
	}

	return state, nil
}

// GetSyncChunk implements [NoteStore].
// GET /sync/chunk?after_usn=&max_entries=&full_sync=.
func (h *httpNoteStore) GetSyncChunk(ctx context.Context, afterUSN int64, maxEntries int, fullSync bool) (*models.SyncChunk, error) {
	resp, err := h.send(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetQueryParam("after_usn", strconv.FormatInt(afterUSN, 10)).
			SetQueryParam("max_entries", strconv.Itoa(maxEntries)).
			SetQueryParam("full_sync", strconv.FormatBool(fullSync)).
			Get("/sync/chunk")
	})
	if err != nil {
		return nil, fmt.Errorf("get sync chunk after usn %d: %w", afterUSN, err)
	}

	chunk := &models.SyncChunk{}
	if err = json.Unmarshal(resp.Body(), chunk); err != nil {
		return nil, fmt.Errorf("decode sync chunk: %w", err)
	}
	h.stampScope(chunk)

	return chunk, nil
}

// Create implements [NoteStore]. POST /{kind}s.
func (h *httpNoteStore) Create(ctx context.Context, entity models.Entity) (models.Entity, error) {
	path, ok := kindPaths[entity.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityKind, entity.Kind())
	}

	resp, err := h.send(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.SetHeader("Content-Type", "application/json").SetBody(entity).Post(path)
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", entity.Kind(), err)
	}

	return h.decodeEntity(entity.Kind(), resp.Body())
}

// Update implements [NoteStore]. PUT /{kind}s/{guid}.
func (h *httpNoteStore) Update(ctx context.Context, entity models.Entity) (models.Entity, error) {
	path, ok := kindPaths[entity.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityKind, entity.Kind())
	}
	guid := entity.Meta().GUID

	resp, err := h.send(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetPathParam("guid", guid).
			SetBody(entity).
			Put(path + "/{guid}")
	})
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", entity.Kind(), guid, err)
	}

	return h.decodeEntity(entity.Kind(), resp.Body())
}

// DownloadFullPayload implements [NoteStore]. GET /{kind}s/{guid}?with_content=true.
func (h *httpNoteStore) DownloadFullPayload(ctx context.Context, kind models.EntityKind, guid string) (models.Entity, error) {
	path, ok := kindPaths[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityKind, kind)
	}

	resp, err := h.send(ctx, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetPathParam("guid", guid).
			SetQueryParam("with_content", "true").
			Get(path + "/{guid}")
	})
	if err != nil {
		return nil, fmt.Errorf("download %s %s: %w", kind, guid, err)
	}

	return h.decodeEntity(kind, resp.Body())
}

func (h *httpNoteStore) send(ctx context.Context, do func(req *resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	token, err := h.tokens.Token(ctx, h.scope)
	if err != nil {
		return nil, fmt.Errorf("auth token for %s: %w", h.scope, err)
	}

	resp, err := h.retry.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		req := h.client.R().SetContext(ctx)
		if token != "" {
			req.SetAuthToken(token)
		}
		if sessionID, ok := utils.GetSessionIDFromContext(ctx); ok {
			req.SetHeader(SessionIDHeader, sessionID)
		}
		return do(req)
	})
	if err != nil {
		h.logger.Debug().Err(err).
			Str("func", "httpNoteStore.send").
			Str("scope", h.scope.Key()).
			Msg("note store request failed")
		return nil, err
	}

	return resp, nil
}

func (h *httpNoteStore) decodeEntity(kind models.EntityKind, body []byte) (models.Entity, error) {
	e := models.NewEntity(kind)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEntityKind, kind)
	}
	if err := json.Unmarshal(body, e); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	e.Meta().LinkedNotebookGUID = h.scope.LinkedNotebookGUID
	return e, nil
}

// stampScope marks every entity of a linked notebook chunk with its owner.
func (h *httpNoteStore) stampScope(chunk *models.SyncChunk) {
	if h.scope.IsOwnAccount() {
		return
	}
	for _, kind := range models.Kinds {
		for _, d := range chunk.Descriptors(kind, h.scope) {
			d.Entity.Meta().LinkedNotebookGUID = h.scope.LinkedNotebookGUID
		}
	}
}
