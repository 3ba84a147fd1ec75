package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *StructuredConfig
	}{
		{
			name:     "no flags",
			args:     []string{"notesync"},
			expected: &StructuredConfig{},
		},
		{
			name: "endpoints and storage",
			args: []string{"notesync", "-n", "http://notes", "-u", "http://users", "-d", "replica.db", "-k", "tokens.db"},
			expected: &StructuredConfig{
				Adapter: Adapter{NoteStoreURL: "http://notes", UserStoreURL: "http://users"},
				Storage: Storage{DB: DB{DSN: "replica.db"}, Credentials: Credentials{Path: "tokens.db"}},
			},
		},
		{
			name: "developer token and config alias",
			args: []string{"notesync", "-t", "dev", "-config", "/tmp/c.json"},
			expected: &StructuredConfig{
				App:          App{DeveloperToken: "dev"},
				JSONFilePath: "/tmp/c.json",
			},
		},
		{
			name: "durations and concurrency",
			args: []string{"notesync", "-request-timeout", "10s", "-sync-interval", "2m", "-pull-concurrency", "3"},
			expected: &StructuredConfig{
				Adapter: Adapter{RequestTimeout: 10 * time.Second},
				Workers: Workers{SyncInterval: 2 * time.Minute, PullConcurrency: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			oldCommandLine := flag.CommandLine
			t.Cleanup(func() {
				os.Args = oldArgs
				flag.CommandLine = oldCommandLine
			})

			flag.CommandLine = flag.NewFlagSet(tt.args[0], flag.ContinueOnError)
			os.Args = tt.args

			assert.Equal(t, tt.expected, ParseFlags())
		})
	}
}
