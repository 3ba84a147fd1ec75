// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// sqliteStore is the SQLite-backed implementation of [Store].
//
// Database failures are logged with the entity kind and identifiers
// involved, through the logger attached to the context when there is one
// and the store's own logger otherwise.
type sqliteStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteStore wraps an open, migrated connection.
func NewSQLiteStore(db *DB, logger *logger.Logger) Store {
	return &sqliteStore{DB: db, logger: logger}
}

func (s *sqliteStore) log(ctx context.Context) *logger.Logger {
	return logger.FromContextOr(ctx, s.logger)
}

func (s *sqliteStore) ListDirty(ctx context.Context, kind models.EntityKind, scope models.Scope) ([]models.Entity, error) {
	query, args, err := buildListDirtyQuery(kind, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entities, err := s.queryEntities(ctx, query, args...)
	if err != nil {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.ListDirty").
			Str("kind", kind.String()).
			Str("scope", scope.Key()).
			Msg("failed to list dirty entities")
		return nil, err
	}

	return entities, nil
}

func (s *sqliteStore) FindByGUID(ctx context.Context, kind models.EntityKind, guid string) (models.Entity, error) {
	query, args, err := buildFindByGUIDQuery(kind, guid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	e, err := s.queryEntity(ctx, query, args...)
	if err != nil && !errors.Is(err, ErrEntityNotFound) {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.FindByGUID").
			Str("kind", kind.String()).
			Str("guid", guid).
			Msg("failed to find entity by guid")
	}
	return e, err
}

func (s *sqliteStore) FindByLocalID(ctx context.Context, kind models.EntityKind, localID string) (models.Entity, error) {
	query, args, err := buildFindByLocalIDQuery(kind, localID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	e, err := s.queryEntity(ctx, query, args...)
	if err != nil && !errors.Is(err, ErrEntityNotFound) {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.FindByLocalID").
			Str("kind", kind.String()).
			Str("local_id", localID).
			Msg("failed to find entity by local id")
	}
	return e, err
}

func (s *sqliteStore) Put(ctx context.Context, entity models.Entity) error {
	return s.put(ctx, s.DB, entity)
}

func (s *sqliteStore) PutAll(ctx context.Context, entities ...models.Entity) error {
	for _, e := range entities {
		if e == nil || !e.Meta().Valid() {
			return ErrInvalidEntity
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, e := range entities {
		if err = s.put(ctx, tx, e); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) put(ctx context.Context, q querier, entity models.Entity) error {
	if entity == nil || !entity.Meta().Valid() {
		return ErrInvalidEntity
	}

	entity = entity.Clone()
	m := entity.Meta()
	if m.LocalID == "" {
		m.LocalID = m.GUID
		query, args, err := buildFindByGUIDQuery(entity.Kind(), m.GUID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		existing, err := queryEntity(ctx, q, query, args...)
		switch {
		case err == nil:
			m.LocalID = existing.Meta().LocalID
		case !errors.Is(err, ErrEntityNotFound):
			return err
		}
	}

	row, err := toRow(entity)
	if err != nil {
		return err
	}

	query, args, err := buildUpsertEntityQuery(row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.Put").
			Str("kind", row.Kind).
			Str("local_id", row.LocalID).
			Str("guid", row.GUID.String).
			Msg("failed to upsert entity")
		return fmt.Errorf("%w: put %s %s: %w", ErrExecutingStatement, row.Kind, row.LocalID, err)
	}

	return nil
}

func (s *sqliteStore) FindOwningNote(ctx context.Context, resourceGUID string) (*models.Note, error) {
	query, args, err := buildFindOwningNoteQuery(resourceGUID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	e, err := s.queryEntity(ctx, query, args...)
	if err != nil {
		if !errors.Is(err, ErrEntityNotFound) {
			s.log(ctx).Err(err).
				Str("func", "sqliteStore.FindOwningNote").
				Str("resource_guid", resourceGUID).
				Msg("failed to find owning note")
		}
		return nil, err
	}

	return e.(*models.Note), nil
}

func (s *sqliteStore) Expunge(ctx context.Context, kind models.EntityKind, guid string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildExpungeQuery(kind, guid)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.Expunge").
			Str("kind", kind.String()).
			Str("guid", guid).
			Msg("failed to expunge entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if kind == models.KindNote {
		query, args, err = buildExpungeResourcesOfNoteQuery(guid)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) ListLinkedNotebooks(ctx context.Context) ([]*models.LinkedNotebook, error) {
	query, args, err := buildListByKindQuery(models.KindLinkedNotebook)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entities, err := s.queryEntities(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	out := make([]*models.LinkedNotebook, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.(*models.LinkedNotebook))
	}
	return out, nil
}

func (s *sqliteStore) LoadCheckpoints(ctx context.Context) (models.Checkpoints, error) {
	query, args, err := buildLoadCheckpointsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		s.log(ctx).Err(err).
			Str("func", "sqliteStore.LoadCheckpoints").
			Msg("failed to query checkpoints")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	checkpoints := make(models.Checkpoints)
	for rows.Next() {
		var (
			scopeKey        string
			lastUpdateCount int64
			fullSyncAt      sql.NullInt64
		)
		if err = rows.Scan(&scopeKey, &lastUpdateCount, &fullSyncAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		checkpoints[models.ScopeFromKey(scopeKey)] = checkpointFromColumns(lastUpdateCount, fullSyncAt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return checkpoints, nil
}

func (s *sqliteStore) SaveCheckpoints(ctx context.Context, checkpoints models.Checkpoints) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for scope, cp := range checkpoints {
		query, args, err := buildSaveCheckpointQuery(scope, cp)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			s.log(ctx).Err(err).
				Str("func", "sqliteStore.SaveCheckpoints").
				Str("scope", scope.Key()).
				Msg("failed to save checkpoint")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.DB.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *sqliteStore) queryEntity(ctx context.Context, query string, args ...any) (models.Entity, error) {
	return queryEntity(ctx, s.DB, query, args...)
}

func queryEntity(ctx context.Context, q querier, query string, args ...any) (models.Entity, error) {
	var row entityRow
	if err := q.QueryRowContext(ctx, query, args...).Scan(row.scanArgs()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntityNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row.toEntity()
}

func (s *sqliteStore) queryEntities(ctx context.Context, query string, args ...any) ([]models.Entity, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		var row entityRow
		if err = rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		e, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entities, nil
}
