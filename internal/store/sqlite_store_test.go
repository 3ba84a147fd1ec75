// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteStore(&DB{DB: db, logger: logger.Nop()}, logger.Nop()), mock
}

func tagRow(t *testing.T, tag *models.Tag) []driver.Value {
	t.Helper()
	payload, err := json.Marshal(tag)
	require.NoError(t, err)
	return []driver.Value{
		"tag", tag.LocalID, tag.GUID, tag.USN, tag.Dirty,
		tag.LinkedNotebookGUID, "", "", payload,
	}
}

// ── error paths ───────────────────────────────────────────────────────────────

func TestSQLiteStore_FindByGUID_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM entities").
		WithArgs("g-1", "tag").
		WillReturnError(sql.ErrConnDone)

	_, err := s.FindByGUID(context.Background(), models.KindTag, "g-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_FindByGUID_NoRows(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM entities").
		WillReturnRows(sqlmock.NewRows(entityColumns))

	_, err := s.FindByGUID(context.Background(), models.KindTag, "g-1")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestSQLiteStore_FindByLocalID_DecodesRow(t *testing.T) {
	s, mock := newMockStore(t)
	tag := &models.Tag{SyncMeta: models.SyncMeta{LocalID: "l-1", GUID: "g-1", USN: 4, Dirty: true}, Name: "x"}
	mock.ExpectQuery("SELECT .* FROM entities").
		WithArgs("tag", "l-1").
		WillReturnRows(sqlmock.NewRows(entityColumns).AddRow(tagRow(t, tag)...))

	got, err := s.FindByLocalID(context.Background(), models.KindTag, "l-1")
	require.NoError(t, err)
	assert.Equal(t, tag, got)
}

func TestSQLiteStore_FindByLocalID_UnknownKind(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM entities").
		WillReturnRows(sqlmock.NewRows(entityColumns).
			AddRow("gadget", "l-1", nil, 0, false, "", "", "", []byte(`{}`)))

	_, err := s.FindByLocalID(context.Background(), models.KindTag, "l-1")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSQLiteStore_FindByLocalID_BadPayload(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM entities").
		WillReturnRows(sqlmock.NewRows(entityColumns).
			AddRow("tag", "l-1", nil, 0, false, "", "", "", []byte(`{not json`)))

	_, err := s.FindByLocalID(context.Background(), models.KindTag, "l-1")
	assert.ErrorIs(t, err, ErrDecodingPayload)
}

func TestSQLiteStore_Put_ExecError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO entities").WillReturnError(sql.ErrTxDone)

	err := s.Put(context.Background(), &models.Tag{SyncMeta: models.SyncMeta{LocalID: "l-1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_PutAll_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO entities").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO entities").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := s.PutAll(context.Background(),
		&models.Tag{SyncMeta: models.SyncMeta{LocalID: "copy"}},
		&models.Tag{SyncMeta: models.SyncMeta{LocalID: "l-1", GUID: "g-1"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_Put_ExecErrorIsLogged(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	s := NewSQLiteStore(&DB{DB: db, logger: log}, log)
	mock.ExpectExec("INSERT INTO entities").WillReturnError(sql.ErrTxDone)

	// в контексте логгера нет: пишет логгер самого хранилища
	err = s.Put(context.Background(), &models.Tag{SyncMeta: models.SyncMeta{LocalID: "l-1"}})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "failed to upsert entity")
	assert.Contains(t, buf.String(), `"local_id":"l-1"`)
}

func TestSQLiteStore_PrefersContextLogger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var own, scoped bytes.Buffer
	ownLog := &logger.Logger{Logger: zerolog.New(&own)}
	ctxLog := &logger.Logger{Logger: zerolog.New(&scoped).With().Str("session_id", "s-1").Logger()}
	s := NewSQLiteStore(&DB{DB: db, logger: ownLog}, ownLog)
	mock.ExpectQuery("SELECT .* FROM entities").WillReturnError(sql.ErrConnDone)

	_, err = s.ListDirty(ctxLog.WithContext(context.Background()), models.KindTag, models.OwnAccount())
	require.Error(t, err)
	assert.Empty(t, own.String())
	assert.Contains(t, scoped.String(), `"session_id":"s-1"`)
}

func TestSQLiteStore_ListDirty_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT .* FROM entities").
		WithArgs(true, "tag", "").
		WillReturnError(sql.ErrConnDone)

	_, err := s.ListDirty(context.Background(), models.KindTag, models.OwnAccount())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSQLiteStore_Expunge_RollsBackOnError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM entities").
		WithArgs("note-1", "note").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM entities").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := s.Expunge(context.Background(), models.KindNote, "note-1")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_SaveCheckpoints_BeginError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := s.SaveCheckpoints(context.Background(), models.Checkpoints{models.OwnAccount(): {LastUpdateCount: 1}})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestSQLiteStore_SaveCheckpoints_CommitError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO sync_checkpoints").
		WithArgs("account", int64(12), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	err := s.SaveCheckpoints(context.Background(), models.Checkpoints{models.OwnAccount(): {LastUpdateCount: 12}})
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_LoadCheckpoints_ScanError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT scope_key, last_update_count, last_full_sync_at FROM sync_checkpoints").
		WillReturnRows(sqlmock.NewRows([]string{"scope_key", "last_update_count", "last_full_sync_at"}).
			AddRow("account", "not-a-number", nil))

	_, err := s.LoadCheckpoints(context.Background())
	assert.ErrorIs(t, err, ErrScanningRows)
}

// ── query builders ────────────────────────────────────────────────────────────

func TestBuildListDirtyQuery(t *testing.T) {
	query, args, err := buildListDirtyQuery(models.KindNote, models.LinkedNotebookScope("ln-1"))
	require.NoError(t, err)

	assert.Contains(t, query, "FROM entities")
	assert.Contains(t, query, "ORDER BY rowid")
	assert.NotContains(t, query, "$1")
	assert.Equal(t, []any{true, "note", "ln-1"}, args)
}

func TestBuildFindOwningNoteQuery(t *testing.T) {
	query, args, err := buildFindOwningNoteQuery("res-1")
	require.NoError(t, err)

	assert.Contains(t, query, "JOIN entities n ON n.kind = ?")
	assert.Contains(t, query, "n.payload")
	assert.Equal(t, []any{"note", "res-1", "resource"}, args)
}

func TestBuildUpsertEntityQuery(t *testing.T) {
	row, err := toRow(&models.Resource{
		SyncMeta: models.SyncMeta{LocalID: "r1", GUID: "g"},
		NoteGUID: "note-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "note-1", row.OwnerGUID)

	query, args, err := buildUpsertEntityQuery(row)
	require.NoError(t, err)
	assert.Contains(t, query, "ON CONFLICT (kind, local_id) DO UPDATE")
	assert.Len(t, args, len(entityColumns))
}
