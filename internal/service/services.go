package service

import (
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/credentials"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// SyncServices bundles the sync engine built from one client config.
type SyncServices struct {
	Tokens   *TokenManager
	Resolver adapter.ScopeResolver
	Pullers  map[models.EntityKind]PullProcessor
	Pusher   *PushSynchronizer
	Session  *Session
	SyncJob  SyncJob
}

// NewSyncServices wires the token manager, scope resolver, pull processors,
// push synchronizer, session and background job.
func NewSyncServices(cfg *config.ClientConfig, localStore store.Store, userStore adapter.UserStore, tokenStore credentials.TokenStore, notifier Notifier, log *logger.Logger) (*SyncServices, error) {
	tokens := NewTokenManager(userStore, tokenStore, cfg.App.DeveloperToken, cfg.Sync.TokenLookahead, log.GetChildLogger())

	resolver, err := adapter.NewScopeResolver(cfg.Adapter.NoteStoreURL, tokens, adapter.OptionsFromConfig(cfg.Adapter), log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("scope resolver: %w", err)
	}

	pullers := NewPullProcessors(localStore, resolver, cfg.Workers.PullConcurrency, log.GetChildLogger())
	pusher := NewPushSynchronizer(localStore, resolver, tokens, notifier, log.GetChildLogger())

	session := NewSession(SessionParams{
		LocalStore:      localStore,
		CheckpointStore: localStore,
		Resolver:        resolver,
		Tokens:          tokens,
		Pullers:         pullers,
		Pusher:          pusher,
		Notifier:        notifier,
		ChunkSize:       cfg.Sync.ChunkSize,
		MaxRounds:       cfg.Sync.MaxRounds,
	}, log.GetChildLogger())

	return &SyncServices{
		Tokens:   tokens,
		Resolver: resolver,
		Pullers:  pullers,
		Pusher:   pusher,
		Session:  session,
		SyncJob:  NewSyncJob(session, log.GetChildLogger()),
	}, nil
}
