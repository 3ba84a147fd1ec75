package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-n note store URL
//	-u user store URL
//	-d SQLite DSN of the local replica
//	-k credential store file path
//	-t developer token
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval background sync period (e.g., "5m")
//	-pull-concurrency concurrent pull pipelines
func ParseFlags() *StructuredConfig {
	var (
		noteStoreURL    string
		userStoreURL    string
		databaseDSN     string
		credentialsPath string
		developerToken  string
		jsonConfigPath  string
		requestTimeout  time.Duration
		syncInterval    time.Duration
		pullConcurrency int
	)

	flag.StringVar(&noteStoreURL, "n", "", "Note store URL")
	flag.StringVar(&userStoreURL, "u", "", "User store URL")
	flag.StringVar(&databaseDSN, "d", "", "SQLite DSN of the local replica")
	flag.StringVar(&credentialsPath, "k", "", "Credential store file path")
	flag.StringVar(&developerToken, "t", "", "Developer token")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.IntVar(&pullConcurrency, "pull-concurrency", 0, "Concurrent pull pipelines")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DeveloperToken: developerToken,
		},
		Adapter: Adapter{
			NoteStoreURL:   noteStoreURL,
			UserStoreURL:   userStoreURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB:          DB{DSN: databaseDSN},
			Credentials: Credentials{Path: credentialsPath},
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			PullConcurrency: pullConcurrency,
		},
		JSONFilePath: jsonConfigPath,
	}
}
