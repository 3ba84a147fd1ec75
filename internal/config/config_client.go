package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBaseDelay  = 200 * time.Millisecond
	DefaultSyncInterval    = 5 * time.Minute
	DefaultPullConcurrency = 8
	DefaultChunkSize       = 100
	DefaultMaxRounds       = 3
	DefaultTokenLookahead  = 30 * time.Minute
	DefaultCredentialsPath = "credentials.db"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	DeveloperToken    string
	StoragePassphrase string
	Version           string
}

// ClientAdapter holds network settings used by the remote adapters.
type ClientAdapter struct {
	NoteStoreURL   string
	UserStoreURL   string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite file path or DSN of the local replica.
	DSN string
}

// ClientCredentials contains credential store settings.
type ClientCredentials struct {
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB          ClientDB
	Credentials ClientCredentials
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	SyncInterval    time.Duration
	PullConcurrency int
}

// ClientSync contains sync protocol tuning.
type ClientSync struct {
	ChunkSize      int
	MaxRounds      int
	TokenLookahead time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration, applying defaults to unset tuning fields.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			DeveloperToken:    cfg.App.DeveloperToken,
			StoragePassphrase: cfg.App.StoragePassphrase,
			Version:           cfg.App.Version,
		},
		Adapter: ClientAdapter{
			NoteStoreURL:   cfg.Adapter.NoteStoreURL,
			UserStoreURL:   cfg.Adapter.UserStoreURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			MaxRetries:     cfg.Adapter.MaxRetries,
			RetryBaseDelay: cfg.Adapter.RetryBaseDelay,
		},
		Storage: ClientStorage{
			DB:          ClientDB{DSN: cfg.Storage.DB.DSN},
			Credentials: ClientCredentials{Path: cfg.Storage.Credentials.Path},
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			PullConcurrency: cfg.Workers.PullConcurrency,
		},
		Sync: ClientSync{
			ChunkSize:      cfg.Sync.ChunkSize,
			MaxRounds:      cfg.Sync.MaxRounds,
			TokenLookahead: cfg.Sync.TokenLookahead,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.MaxRetries <= 0 {
		cfg.Adapter.MaxRetries = DefaultMaxRetries
	}
	if cfg.Adapter.RetryBaseDelay <= 0 {
		cfg.Adapter.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.Storage.Credentials.Path == "" {
		cfg.Storage.Credentials.Path = DefaultCredentialsPath
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if cfg.Workers.PullConcurrency <= 0 {
		cfg.Workers.PullConcurrency = DefaultPullConcurrency
	}
	if cfg.Sync.ChunkSize <= 0 {
		cfg.Sync.ChunkSize = DefaultChunkSize
	}
	if cfg.Sync.MaxRounds <= 0 {
		cfg.Sync.MaxRounds = DefaultMaxRounds
	}
	if cfg.Sync.TokenLookahead <= 0 {
		cfg.Sync.TokenLookahead = DefaultTokenLookahead
	}
}
