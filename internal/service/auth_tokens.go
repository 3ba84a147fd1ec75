package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/credentials"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// TokenManager caches auth tokens per scope for the lifetime of the process.
// Tokens inside the lookahead window are refreshed before use; linked
// notebook tokens are always refreshed together in one request.
//
// TokenManager implements [adapter.TokenSource] and [AuthTokens].
type TokenManager struct {
	userStore      adapter.UserStore
	tokenStore     credentials.TokenStore
	developerToken string
	lookahead      time.Duration
	now            func() time.Time
	logger         *logger.Logger

	mu        sync.Mutex
	cache     map[string]models.AuthToken
	notebooks map[string]models.LinkedNotebookAuthData
}

// NewTokenManager returns a TokenManager. developerToken is used when the
// credential store holds no own-account token yet.
func NewTokenManager(userStore adapter.UserStore, tokenStore credentials.TokenStore, developerToken string, lookahead time.Duration, log *logger.Logger) *TokenManager {
	return &TokenManager{
		userStore:      userStore,
		tokenStore:     tokenStore,
		developerToken: developerToken,
		lookahead:      lookahead,
		now:            time.Now,
		logger:         log,
		cache:          make(map[string]models.AuthToken),
		notebooks:      make(map[string]models.LinkedNotebookAuthData),
	}
}

// Token implements [adapter.TokenSource].
func (m *TokenManager) Token(ctx context.Context, scope models.Scope) (string, error) {
	var (
		token models.AuthToken
		err   error
	)
	if scope.IsOwnAccount() {
		token, err = m.OwnToken(ctx)
	} else {
		token, err = m.LinkedNotebookToken(ctx, scope.LinkedNotebookGUID)
	}
	if err != nil {
		return "", err
	}
	return token.Token, nil
}

// OwnToken implements [AuthTokens].
func (m *TokenManager) OwnToken(ctx context.Context) (models.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ownTokenLocked(ctx)
}

// RefreshOwnToken implements [AuthTokens].
func (m *TokenManager) RefreshOwnToken(ctx context.Context) (models.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.loadOwnTokenLocked(ctx)
	if err != nil {
		return models.AuthToken{}, err
	}
	return m.refreshOwnLocked(ctx, current)
}

// LinkedNotebookToken implements [AuthTokens].
func (m *TokenManager) LinkedNotebookToken(ctx context.Context, guid string) (models.AuthToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.notebooks[guid]; !ok {
		return models.AuthToken{}, fmt.Errorf("%w: %s", adapter.ErrUnknownLinkedNotebook, guid)
	}

	if token, ok := m.cache[guid]; ok && !token.ExpiresWithin(m.now(), m.lookahead) {
		return token, nil
	}

	if _, err := m.refreshLinkedLocked(ctx, false); err != nil {
		return models.AuthToken{}, err
	}

	token, ok := m.cache[guid]
	if !ok {
		return models.AuthToken{}, fmt.Errorf("%w: linked notebook %s", ErrNoAuthToken, guid)
	}
	return token, nil
}

// RefreshLinkedNotebookTokens implements [AuthTokens].
func (m *TokenManager) RefreshLinkedNotebookTokens(ctx context.Context, force bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.refreshLinkedLocked(ctx, force)
}

// SetLinkedNotebooks implements [AuthTokens]. Cached tokens of notebooks
// that are no longer linked are dropped.
func (m *TokenManager) SetLinkedNotebooks(notebooks map[string]models.LinkedNotebookAuthData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notebooks = make(map[string]models.LinkedNotebookAuthData, len(notebooks))
	for guid, auth := range notebooks {
		m.notebooks[guid] = auth
	}

	for key := range m.cache {
		if key == models.OwnAccountKey {
			continue
		}
		if _, ok := m.notebooks[key]; !ok {
			delete(m.cache, key)
		}
	}
}

func (m *TokenManager) ownTokenLocked(ctx context.Context) (models.AuthToken, error) {
	token, err := m.loadOwnTokenLocked(ctx)
	if err != nil {
		return models.AuthToken{}, err
	}

	if !token.ExpiresWithin(m.now(), m.lookahead) {
		return token, nil
	}

	refreshed, err := m.refreshOwnLocked(ctx, token)
	if err != nil {
		if !token.ExpiresAt.IsZero() && m.now().Before(token.ExpiresAt) {
			m.logger.Warn().Err(err).
				Str("func", "TokenManager.ownTokenLocked").
				Time("expires_at", token.ExpiresAt).
				Msg("token refresh failed, using current token until it expires")
			return token, nil
		}
		return models.AuthToken{}, err
	}

	return refreshed, nil
}

// loadOwnTokenLocked returns the cached own token, filling the cache from the
// credential store or the developer token.
func (m *TokenManager) loadOwnTokenLocked(ctx context.Context) (models.AuthToken, error) {
	if token, ok := m.cache[models.OwnAccountKey]; ok {
		return token, nil
	}

	token, err := m.tokenStore.ReadToken(ctx, models.OwnAccountKey)
	switch {
	case err == nil:
	case errors.Is(err, credentials.ErrTokenNotFound):
		if m.developerToken == "" {
			return models.AuthToken{}, fmt.Errorf("%w: own account", ErrNoAuthToken)
		}
		token = models.AuthToken{Token: m.developerToken}
		if exp, err := utils.TokenExpiry(m.developerToken); err == nil {
			token.ExpiresAt = exp
		}
	default:
		return models.AuthToken{}, fmt.Errorf("read own token: %w", err)
	}

	m.cache[models.OwnAccountKey] = token
	return token, nil
}

func (m *TokenManager) refreshOwnLocked(ctx context.Context, current models.AuthToken) (models.AuthToken, error) {
	refreshed, err := m.userStore.RefreshAuthentication(ctx, current.Token)
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("refresh own token: %w", err)
	}
	if refreshed.NoteStoreURL == "" {
		refreshed.NoteStoreURL = current.NoteStoreURL
	}

	if err = m.storeLocked(ctx, models.OwnAccountKey, refreshed); err != nil {
		return models.AuthToken{}, err
	}

	m.logger.Debug().
		Str("func", "TokenManager.refreshOwnLocked").
		Time("expires_at", refreshed.ExpiresAt).
		Msg("own token refreshed")

	return refreshed, nil
}

// refreshLinkedLocked loads linked tokens from the credential store and then
// re-authenticates all linked notebooks at once when any of them needs it.
func (m *TokenManager) refreshLinkedLocked(ctx context.Context, force bool) (bool, error) {
	if len(m.notebooks) == 0 {
		return false, nil
	}

	now := m.now()
	needed := force
	for guid := range m.notebooks {
		token, ok := m.cache[guid]
		if !ok {
			stored, err := m.tokenStore.ReadToken(ctx, guid)
			switch {
			case err == nil:
				token, ok = stored, true
				m.cache[guid] = stored
			case errors.Is(err, credentials.ErrTokenNotFound):
			default:
				return false, fmt.Errorf("read linked notebook token %s: %w", guid, err)
			}
		}
		if !ok || token.ExpiresWithin(now, m.lookahead) {
			needed = true
		}
	}
	if !needed {
		return false, nil
	}

	own, err := m.ownTokenLocked(ctx)
	if err != nil {
		return false, err
	}

	guids := make([]string, 0, len(m.notebooks))
	for guid := range m.notebooks {
		guids = append(guids, guid)
	}
	sort.Strings(guids)

	request := make([]models.LinkedNotebookAuthData, 0, len(guids))
	for _, guid := range guids {
		request = append(request, m.notebooks[guid])
	}

	tokens, err := m.userStore.AuthenticateToSharedNotebooks(ctx, own.Token, request)
	if err != nil {
		return false, fmt.Errorf("authenticate to linked notebooks: %w", err)
	}

	for guid, token := range tokens {
		if _, ok := m.notebooks[guid]; !ok {
			continue
		}
		if err = m.storeLocked(ctx, guid, token); err != nil {
			return false, err
		}
	}

	m.logger.Debug().
		Str("func", "TokenManager.refreshLinkedLocked").
		Int("notebooks", len(request)).
		Int("tokens", len(tokens)).
		Msg("linked notebook tokens refreshed")

	return true, nil
}

func (m *TokenManager) storeLocked(ctx context.Context, key string, token models.AuthToken) error {
	if err := m.tokenStore.WriteToken(ctx, key, token); err != nil {
		return fmt.Errorf("write token %s: %w", key, err)
	}
	m.cache[key] = token
	return nil
}
