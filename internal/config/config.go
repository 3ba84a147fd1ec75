// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the developer token and
	// the passphrase protecting the credential store.
	App App `envPrefix:"APP_"`

	// Adapter holds remote service endpoints and transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local replica and credential store locations.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds sync protocol tuning.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DeveloperToken authenticates the own account when the credential
	// store holds no token yet.
	// Env: APP_DEVELOPER_TOKEN
	DeveloperToken string `env:"DEVELOPER_TOKEN"`

	// StoragePassphrase derives the key that seals tokens at rest.
	// Env: APP_STORAGE_PASSPHRASE
	StoragePassphrase string `env:"STORAGE_PASSPHRASE"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds remote service settings.
type Adapter struct {
	// NoteStoreURL is the own-account note store endpoint.
	// Env: ADAPTER_NOTE_STORE_URL
	NoteStoreURL string `env:"NOTE_STORE_URL"`

	// UserStoreURL is the authentication endpoint.
	// Env: ADAPTER_USER_STORE_URL
	UserStoreURL string `env:"USER_STORE_URL"`

	// RequestTimeout bounds a single outbound request (e.g. "30s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxRetries is the number of retries for transient transport failures.
	// Env: ADAPTER_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// RetryBaseDelay is the first backoff delay between retries.
	// Env: ADAPTER_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Storage groups local storage settings.
type Storage struct {
	// DB holds the SQLite replica settings.
	DB DB `envPrefix:"DB_"`

	// Credentials holds the token store settings.
	Credentials Credentials `envPrefix:"CREDENTIALS_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path or DSN.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Credentials holds the bbolt credential store settings.
type Credentials struct {
	// Path is the bbolt file holding sealed auth tokens.
	// Env: STORAGE_CREDENTIALS_PATH
	Path string `env:"PATH"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// PullConcurrency bounds concurrent item pipelines in a pull run.
	// Env: WORKERS_PULL_CONCURRENCY
	PullConcurrency int `env:"PULL_CONCURRENCY"`
}

// Sync holds sync protocol tuning.
type Sync struct {
	// ChunkSize is the maximum number of entries requested per sync chunk.
	// Env: SYNC_CHUNK_SIZE
	ChunkSize int `env:"CHUNK_SIZE"`

	// MaxRounds bounds pull/push rounds within one session.
	// Env: SYNC_MAX_ROUNDS
	MaxRounds int `env:"MAX_ROUNDS"`

	// TokenLookahead is how long before expiry a token is refreshed.
	// Env: SYNC_TOKEN_LOOKAHEAD
	TokenLookahead time.Duration `env:"TOKEN_LOOKAHEAD"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (a non-zero field of an earlier
// source is never overridden by a later one):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
