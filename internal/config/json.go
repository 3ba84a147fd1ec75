package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		DeveloperToken    string `json:"developer_token"`
		StoragePassphrase string `json:"storage_passphrase"`
		Version           string `json:"version"`
	} `json:"app,omitempty"`

	Adapter struct {
		NoteStoreURL   string   `json:"note_store_url"`
		UserStoreURL   string   `json:"user_store_url"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxRetries     int      `json:"max_retries"`
		RetryBaseDelay Duration `json:"retry_base_delay"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Credentials struct {
			Path string `json:"path"`
		} `json:"credentials,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		SyncInterval    Duration `json:"sync_interval"`
		PullConcurrency int      `json:"pull_concurrency"`
	} `json:"workers,omitempty"`

	Sync struct {
		ChunkSize      int      `json:"chunk_size"`
		MaxRounds      int      `json:"max_rounds"`
		TokenLookahead Duration `json:"token_lookahead"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DeveloperToken:    jsonCfg.App.DeveloperToken,
			StoragePassphrase: jsonCfg.App.StoragePassphrase,
			Version:           jsonCfg.App.Version,
		},
		Adapter: Adapter{
			NoteStoreURL:   jsonCfg.Adapter.NoteStoreURL,
			UserStoreURL:   jsonCfg.Adapter.UserStoreURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			MaxRetries:     jsonCfg.Adapter.MaxRetries,
			RetryBaseDelay: time.Duration(jsonCfg.Adapter.RetryBaseDelay),
		},
		Storage: Storage{
			DB:          DB{DSN: jsonCfg.Storage.DB.DSN},
			Credentials: Credentials{Path: jsonCfg.Storage.Credentials.Path},
		},
		Workers: Workers{
			SyncInterval:    time.Duration(jsonCfg.Workers.SyncInterval),
			PullConcurrency: jsonCfg.Workers.PullConcurrency,
		},
		Sync: Sync{
			ChunkSize:      jsonCfg.Sync.ChunkSize,
			MaxRounds:      jsonCfg.Sync.MaxRounds,
			TokenLookahead: time.Duration(jsonCfg.Sync.TokenLookahead),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
