// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the client config can start a sync session.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Adapter.NoteStoreURL == "" || cfg.Adapter.UserStoreURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.App.StoragePassphrase == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.PullConcurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
