package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/credentials"
	"github.com/MKhiriev/go-note-sync/internal/crypto"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/workers"
)

type App struct {
	cfg        *config.ClientConfig
	store      store.Store
	tokenStore credentials.TokenStore
	services   *service.SyncServices
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewApp opens the local replica and the credential store and builds the
// sync engine. On error every resource opened so far is closed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	localStore, err := store.NewStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	tokenStore, err := credentials.NewBoltTokenStore(cfg.Storage.Credentials.Path, cfg.App.StoragePassphrase, crypto.NewKeyChainService(), log)
	if err != nil {
		_ = localStore.Close()
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	userStore, err := adapter.NewHTTPUserStore(cfg.Adapter.UserStoreURL, adapter.OptionsFromConfig(cfg.Adapter), log)
	if err != nil {
		_ = errors.Join(localStore.Close(), tokenStore.Close())
		return nil, fmt.Errorf("create user store: %w", err)
	}

	notifier := service.NewLogNotifier(log)
	services, err := service.NewSyncServices(cfg, localStore, userStore, tokenStore, notifier, log)
	if err != nil {
		_ = errors.Join(localStore.Close(), tokenStore.Close())
		return nil, fmt.Errorf("create sync services: %w", err)
	}

	return &App{
		cfg:        cfg,
		store:      localStore,
		tokenStore: tokenStore,
		services:   services,
		workers:    workers.NewWorkers(workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval)),
		logger:     log,
	}, nil
}

// Run implements [Client]. It syncs once right away, then keeps syncing in
// the background until ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	res, err := a.services.Session.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		a.logger.Warn().Err(err).Str("func", "App.Run").Msg("initial sync failed")
	} else {
		a.logger.Info().
			Str("func", "App.Run").
			Bool("downloaded", res.SomethingDownloaded).
			Bool("uploaded", res.SomethingUploaded).
			Int("rounds", res.Rounds).
			Msg("initial sync finished")
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()

	<-ctx.Done()
	return nil
}

func (a *App) close() {
	if err := errors.Join(a.store.Close(), a.tokenStore.Close()); err != nil {
		a.logger.Error().Err(err).Str("func", "App.close").Msg("error closing storages")
	}
}
