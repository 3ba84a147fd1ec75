package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// NewStore initialises the local replica described by cfg.DB.DSN:
//   - "memory" or a path ending in ".json" selects the in-memory store with
//     an optional JSON snapshot;
//   - anything else is opened as an SQLite database and migrated.
func NewStore(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (Store, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("opening local store...")

	if cfg.DB.DSN == "memory" || strings.HasSuffix(cfg.DB.DSN, ".json") {
		return NewMemoryStore(cfg.DB.DSN)
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLiteStore(db, logger), nil
}
