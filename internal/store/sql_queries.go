package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-sync/models"
)

const (
	entitiesTable    = "entities"
	checkpointsTable = "sync_checkpoints"
)

var entityColumns = []string{
	"kind", "local_id", "guid", "usn", "dirty",
	"linked_notebook_guid", "owner_guid", "owner_local_id", "payload",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// entityRow is the flat storage shape of an entity.
type entityRow struct {
	Kind               string
	LocalID            string
	GUID               sql.NullString
	USN                int64
	Dirty              bool
	LinkedNotebookGUID string
	OwnerGUID          string
	OwnerLocalID       string
	Payload            []byte
}

func (r *entityRow) scanArgs() []any {
	return []any{
		&r.Kind, &r.LocalID, &r.GUID, &r.USN, &r.Dirty,
		&r.LinkedNotebookGUID, &r.OwnerGUID, &r.OwnerLocalID, &r.Payload,
	}
}

// toRow flattens e. Entity metadata is both a column set and part of the
// payload; on read the columns win.
func toRow(e models.Entity) (entityRow, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return entityRow{}, fmt.Errorf("failed to encode %s payload: %w", e.Kind(), err)
	}

	m := e.Meta()
	row := entityRow{
		Kind:               e.Kind().String(),
		LocalID:            m.LocalID,
		GUID:               sql.NullString{String: m.GUID, Valid: m.GUID != ""},
		USN:                m.USN,
		Dirty:              m.Dirty,
		LinkedNotebookGUID: m.LinkedNotebookGUID,
		Payload:            payload,
	}

	switch v := e.(type) {
	case *models.Resource:
		row.OwnerGUID, row.OwnerLocalID = v.NoteGUID, v.NoteLocalID
	case *models.Note:
		row.OwnerGUID, row.OwnerLocalID = v.NotebookGUID, v.NotebookLocalID
	}

	return row, nil
}

func (r *entityRow) toEntity() (models.Entity, error) {
	e := models.NewEntity(models.EntityKind(r.Kind))
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	if err := json.Unmarshal(r.Payload, e); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingPayload, err)
	}

	m := e.Meta()
	m.LocalID = r.LocalID
	m.GUID = r.GUID.String
	m.USN = r.USN
	m.Dirty = r.Dirty
	m.LinkedNotebookGUID = r.LinkedNotebookGUID

	return e, nil
}

func selectEntities() sq.SelectBuilder {
	return psql.Select(entityColumns...).From(entitiesTable)
}

func buildFindByGUIDQuery(kind models.EntityKind, guid string) (string, []any, error) {
	return selectEntities().
		Where(sq.Eq{"kind": kind.String(), "guid": guid}).
		Limit(1).
		ToSql()
}

func buildFindByLocalIDQuery(kind models.EntityKind, localID string) (string, []any, error) {
	return selectEntities().
		Where(sq.Eq{"kind": kind.String(), "local_id": localID}).
		Limit(1).
		ToSql()
}

func buildListDirtyQuery(kind models.EntityKind, scope models.Scope) (string, []any, error) {
	return selectEntities().
		Where(sq.Eq{
			"kind":                 kind.String(),
			"dirty":                true,
			"linked_notebook_guid": scope.LinkedNotebookGUID,
		}).
		OrderBy("rowid").
		ToSql()
}

func buildListByKindQuery(kind models.EntityKind) (string, []any, error) {
	return selectEntities().
		Where(sq.Eq{"kind": kind.String()}).
		OrderBy("rowid").
		ToSql()
}

func buildFindOwningNoteQuery(resourceGUID string) (string, []any, error) {
	cols := make([]string, len(entityColumns))
	for i, c := range entityColumns {
		cols[i] = "n." + c
	}

	return psql.Select(cols...).
		From(entitiesTable+" r").
		Join(entitiesTable+" n ON n.kind = ? AND ("+
			"(r.owner_guid <> '' AND n.guid = r.owner_guid) OR "+
			"(r.owner_local_id <> '' AND n.local_id = r.owner_local_id))",
			models.KindNote.String()).
		Where(sq.Eq{"r.kind": models.KindResource.String(), "r.guid": resourceGUID}).
		Limit(1).
		ToSql()
}

func buildUpsertEntityQuery(row entityRow) (string, []any, error) {
	return psql.Insert(entitiesTable).
		Columns(entityColumns...).
		Values(
			row.Kind, row.LocalID, row.GUID, row.USN, row.Dirty,
			row.LinkedNotebookGUID, row.OwnerGUID, row.OwnerLocalID, row.Payload,
		).
		Suffix(`ON CONFLICT (kind, local_id) DO UPDATE SET
			guid = excluded.guid,
			usn = excluded.usn,
			dirty = excluded.dirty,
			linked_notebook_guid = excluded.linked_notebook_guid,
			owner_guid = excluded.owner_guid,
			owner_local_id = excluded.owner_local_id,
			payload = excluded.payload`).
		ToSql()
}

func buildExpungeQuery(kind models.EntityKind, guid string) (string, []any, error) {
	return psql.Delete(entitiesTable).
		Where(sq.Eq{"kind": kind.String(), "guid": guid}).
		ToSql()
}

func buildExpungeResourcesOfNoteQuery(noteGUID string) (string, []any, error) {
	return psql.Delete(entitiesTable).
		Where(sq.Eq{"kind": models.KindResource.String(), "owner_guid": noteGUID}).
		ToSql()
}

func buildLoadCheckpointsQuery() (string, []any, error) {
	return psql.Select("scope_key", "last_update_count", "last_full_sync_at").
		From(checkpointsTable).
		ToSql()
}

func buildSaveCheckpointQuery(scope models.Scope, cp models.Checkpoint) (string, []any, error) {
	var fullSyncAt sql.NullInt64
	if cp.LastFullSyncTimestamp != nil {
		fullSyncAt = sql.NullInt64{Int64: cp.LastFullSyncTimestamp.UnixNano(), Valid: true}
	}

	return psql.Insert(checkpointsTable).
		Columns("scope_key", "last_update_count", "last_full_sync_at").
		Values(scope.Key(), cp.LastUpdateCount, fullSyncAt).
		Suffix(`ON CONFLICT (scope_key) DO UPDATE SET
			last_update_count = excluded.last_update_count,
			last_full_sync_at = excluded.last_full_sync_at`).
		ToSql()
}

func checkpointFromColumns(lastUpdateCount int64, fullSyncAt sql.NullInt64) models.Checkpoint {
	cp := models.Checkpoint{LastUpdateCount: lastUpdateCount}
	if fullSyncAt.Valid {
		ts := time.Unix(0, fullSyncAt.Int64).UTC()
		cp.LastFullSyncTimestamp = &ts
	}
	return cp
}
