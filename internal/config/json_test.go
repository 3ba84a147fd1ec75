package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	content := `{
		"app": {"developer_token": "dev", "storage_passphrase": "pw", "version": "0.1.0"},
		"adapter": {
			"note_store_url": "http://notes",
			"user_store_url": "http://users",
			"request_timeout": "45s",
			"max_retries": 2,
			"retry_base_delay": "50ms"
		},
		"storage": {"db": {"dsn": "replica.db"}, "credentials": {"path": "tokens.db"}},
		"workers": {"sync_interval": "10m", "pull_concurrency": 4},
		"sync": {"chunk_size": 250, "max_rounds": 2, "token_lookahead": "15m"}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.DeveloperToken)
	assert.Equal(t, "pw", cfg.App.StoragePassphrase)
	assert.Equal(t, "0.1.0", cfg.App.Version)
	assert.Equal(t, "http://notes", cfg.Adapter.NoteStoreURL)
	assert.Equal(t, "http://users", cfg.Adapter.UserStoreURL)
	assert.Equal(t, 45*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2, cfg.Adapter.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Adapter.RetryBaseDelay)
	assert.Equal(t, "replica.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "tokens.db", cfg.Storage.Credentials.Path)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 4, cfg.Workers.PullConcurrency)
	assert.Equal(t, 250, cfg.Sync.ChunkSize)
	assert.Equal(t, 2, cfg.Sync.MaxRounds)
	assert.Equal(t, 15*time.Minute, cfg.Sync.TokenLookahead)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"adapter":`), 0o600))

	cfg, err := parseJSON(path)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-duration.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers": {"sync_interval": "whenever"}}`), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// ── Duration ──────────────────────────────────────────────────────────────────

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string", input: `"1m30s"`, expected: 90 * time.Second},
		{name: "nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "bool", input: `true`, wantErr: true},
		{name: "bad string", input: `"later"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(5 * time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"5m0s"`, string(b))
}
