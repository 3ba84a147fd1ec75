package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// Options tunes the HTTP adapters.
type Options struct {
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type httpUserStore struct {
	client *utils.HTTPClient
	retry  retryPolicy
	logger *logger.Logger
}

type authTokenResponse struct {
	Token        string     `json:"token"`
	ShardID      string     `json:"shard_id,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	NoteStoreURL string     `json:"note_store_url,omitempty"`
}

type sharedNotebooksRequest struct {
	Notebooks []models.LinkedNotebookAuthData `json:"notebooks"`
}

type sharedNotebooksResponse struct {
	Tokens map[string]authTokenResponse `json:"tokens"`
}

// NewHTTPUserStore returns the JSON-over-HTTP [UserStore] rooted at baseURL.
func NewHTTPUserStore(baseURL string, opts Options, log *logger.Logger) (UserStore, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid user store url: %w", err)
	}

	return &httpUserStore{
		client: utils.NewHTTPClient(normalized, opts.RequestTimeout),
		retry:  retryPolicy{maxRetries: opts.MaxRetries, baseDelay: opts.RetryBaseDelay},
		logger: log,
	}, nil
}

// RefreshAuthentication implements [UserStore]. POST /auth/refresh.
func (h *httpUserStore) RefreshAuthentication(ctx context.Context, token string) (models.AuthToken, error) {
	resp, err := h.retry.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{"token": token}).
			Post("/auth/refresh")
	})
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("refresh authentication: %w", err)
	}

	var out authTokenResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.AuthToken{}, fmt.Errorf("decode refresh response: %w", err)
	}

	return h.toAuthToken(out)
}

// AuthenticateToSharedNotebooks implements [UserStore].
// POST /auth/shared-notebooks with every notebook in one body.
func (h *httpUserStore) AuthenticateToSharedNotebooks(ctx context.Context, ownToken string, notebooks []models.LinkedNotebookAuthData) (map[string]models.AuthToken, error) {
	if len(notebooks) == 0 {
		return map[string]models.AuthToken{}, nil
	}

	resp, err := h.retry.do(ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetAuthToken(ownToken).
			SetHeader("Content-Type", "application/json").
			SetBody(sharedNotebooksRequest{Notebooks: notebooks}).
			Post("/auth/shared-notebooks")
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate to shared notebooks: %w", err)
	}

	var out sharedNotebooksResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode shared notebooks response: %w", err)
	}

	tokens := make(map[string]models.AuthToken, len(out.Tokens))
	for guid, raw := range out.Tokens {
		token, err := h.toAuthToken(raw)
		if err != nil {
			return nil, fmt.Errorf("linked notebook %s: %w", guid, err)
		}
		tokens[guid] = token
	}

	return tokens, nil
}

// toAuthToken fills a missing expiry from the JWT exp claim. Opaque tokens
// without an expiry are treated as non-expiring.
func (h *httpUserStore) toAuthToken(raw authTokenResponse) (models.AuthToken, error) {
	if raw.Token == "" {
		return models.AuthToken{}, ErrMissingRemoteAuthToken
	}

	token := models.AuthToken{Token: raw.Token, ShardID: raw.ShardID, NoteStoreURL: raw.NoteStoreURL}
	if raw.ExpiresAt != nil {
		token.ExpiresAt = *raw.ExpiresAt
		return token, nil
	}

	exp, err := utils.TokenExpiry(raw.Token)
	switch {
	case err == nil:
		token.ExpiresAt = exp
	case errors.Is(err, utils.ErrNoExpiry):
	default:
		h.logger.Debug().Err(err).
			Str("func", "httpUserStore.toAuthToken").
			Msg("token is not a JWT; expiry unknown")
	}

	return token, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
