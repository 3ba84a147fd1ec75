package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// storeFactories runs the same behaviour checks against every implementation.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "replica.db")}}
			s, err := NewStore(context.Background(), cfg, logger.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"memory": func(t *testing.T) Store {
			s, err := NewMemoryStore("")
			require.NoError(t, err)
			return s
		},
		"memory snapshot": func(t *testing.T) Store {
			cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "replica.json")}}
			s, err := NewStore(context.Background(), cfg, logger.Nop())
			require.NoError(t, err)
			return s
		},
	}
}

func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

// ── Put / Find ────────────────────────────────────────────────────────────────

func TestStore_PutAndFind(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		tag := &models.Tag{
			SyncMeta: models.SyncMeta{LocalID: "l-1", GUID: "g-1", USN: 5},
			Name:     "work",
		}
		require.NoError(t, s.Put(ctx, tag))

		byGUID, err := s.FindByGUID(ctx, models.KindTag, "g-1")
		require.NoError(t, err)
		assert.Equal(t, tag, byGUID)

		byLocal, err := s.FindByLocalID(ctx, models.KindTag, "l-1")
		require.NoError(t, err)
		assert.Equal(t, tag, byLocal)

		_, err = s.FindByGUID(ctx, models.KindNotebook, "g-1")
		assert.ErrorIs(t, err, ErrEntityNotFound)
		_, err = s.FindByLocalID(ctx, models.KindTag, "missing")
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}

func TestStore_PutReplacesByLocalID(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.Notebook{
			SyncMeta: models.SyncMeta{LocalID: "nb", Dirty: true},
			Name:     "draft",
		}))
		require.NoError(t, s.Put(ctx, &models.Notebook{
			SyncMeta: models.SyncMeta{LocalID: "nb", GUID: "g-nb", USN: 3},
			Name:     "final",
		}))

		got, err := s.FindByGUID(ctx, models.KindNotebook, "g-nb")
		require.NoError(t, err)
		nb := got.(*models.Notebook)
		assert.Equal(t, "final", nb.Name)
		assert.Equal(t, "nb", nb.LocalID)
		assert.False(t, nb.Dirty)
	})
}

func TestStore_PutWithoutLocalIDReusesExisting(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.SavedSearch{
			SyncMeta: models.SyncMeta{LocalID: "ss-local", GUID: "ss"},
			Query:    "tag:a",
		}))
		require.NoError(t, s.Put(ctx, &models.SavedSearch{
			SyncMeta: models.SyncMeta{GUID: "ss", USN: 9},
			Query:    "tag:b",
		}))

		got, err := s.FindByLocalID(ctx, models.KindSavedSearch, "ss-local")
		require.NoError(t, err)
		assert.Equal(t, "tag:b", got.(*models.SavedSearch).Query)
		assert.Equal(t, int64(9), got.Meta().USN)
	})
}

func TestStore_PutRejectsInvalidEntity(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		err := s.Put(context.Background(), &models.Tag{Name: "orphan"})
		assert.ErrorIs(t, err, ErrInvalidEntity)
	})
}

func TestStore_ReturnedEntitiesAreCopies(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		note := &models.Note{SyncMeta: models.SyncMeta{LocalID: "n"}, TagGUIDs: []string{"t1"}}
		require.NoError(t, s.Put(ctx, note))
		note.TagGUIDs[0] = "mutated"

		got, err := s.FindByLocalID(ctx, models.KindNote, "n")
		require.NoError(t, err)
		got.(*models.Note).TagGUIDs = append(got.(*models.Note).TagGUIDs, "t2")

		again, err := s.FindByLocalID(ctx, models.KindNote, "n")
		require.NoError(t, err)
		assert.Equal(t, []string{"t1"}, again.(*models.Note).TagGUIDs)
	})
}

func TestStore_PutAllStoresEveryEntity(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.Tag{SyncMeta: models.SyncMeta{LocalID: "t1", GUID: "g1", Dirty: true}, Name: "old"}))

		err := s.PutAll(ctx,
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "copy", Dirty: true}, Name: "old - conflicting"},
			&models.Tag{SyncMeta: models.SyncMeta{GUID: "g1", USN: 5}, Name: "remote"},
		)
		require.NoError(t, err)

		merged, err := s.FindByGUID(ctx, models.KindTag, "g1")
		require.NoError(t, err)
		assert.Equal(t, "t1", merged.Meta().LocalID)
		assert.Equal(t, "remote", merged.(*models.Tag).Name)

		copied, err := s.FindByLocalID(ctx, models.KindTag, "copy")
		require.NoError(t, err)
		assert.True(t, copied.Meta().Dirty)
	})
}

func TestStore_PutAllRejectsInvalidEntityAndStoresNothing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		err := s.PutAll(ctx,
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "ok"}},
			&models.Tag{},
		)
		assert.ErrorIs(t, err, ErrInvalidEntity)

		_, err = s.FindByLocalID(ctx, models.KindTag, "ok")
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}

// ── ListDirty ─────────────────────────────────────────────────────────────────

func TestStore_ListDirtyFiltersByKindAndScope(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		entities := []models.Entity{
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "t1", Dirty: true}, Name: "a"},
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "t2", Dirty: false, GUID: "g2"}, Name: "b"},
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "t3", Dirty: true, LinkedNotebookGUID: "ln"}, Name: "c"},
			&models.Tag{SyncMeta: models.SyncMeta{LocalID: "t4", Dirty: true}, Name: "d"},
			&models.Notebook{SyncMeta: models.SyncMeta{LocalID: "nb", Dirty: true}},
		}
		for _, e := range entities {
			require.NoError(t, s.Put(ctx, e))
		}

		own, err := s.ListDirty(ctx, models.KindTag, models.OwnAccount())
		require.NoError(t, err)
		require.Len(t, own, 2)
		assert.Equal(t, "t1", own[0].Meta().LocalID)
		assert.Equal(t, "t4", own[1].Meta().LocalID)

		linked, err := s.ListDirty(ctx, models.KindTag, models.LinkedNotebookScope("ln"))
		require.NoError(t, err)
		require.Len(t, linked, 1)
		assert.Equal(t, "t3", linked[0].Meta().LocalID)
	})
}

// ── FindOwningNote / Expunge ──────────────────────────────────────────────────

func TestStore_FindOwningNote(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.Note{SyncMeta: models.SyncMeta{LocalID: "n1", GUID: "note-1"}, Title: "by guid"}))
		require.NoError(t, s.Put(ctx, &models.Note{SyncMeta: models.SyncMeta{LocalID: "n2"}, Title: "by local id"}))
		require.NoError(t, s.Put(ctx, &models.Resource{SyncMeta: models.SyncMeta{LocalID: "r1", GUID: "res-1"}, NoteGUID: "note-1"}))
		require.NoError(t, s.Put(ctx, &models.Resource{SyncMeta: models.SyncMeta{LocalID: "r2", GUID: "res-2"}, NoteLocalID: "n2"}))
		require.NoError(t, s.Put(ctx, &models.Resource{SyncMeta: models.SyncMeta{LocalID: "r3", GUID: "res-3"}, NoteGUID: "gone"}))

		note, err := s.FindOwningNote(ctx, "res-1")
		require.NoError(t, err)
		assert.Equal(t, "by guid", note.Title)

		note, err = s.FindOwningNote(ctx, "res-2")
		require.NoError(t, err)
		assert.Equal(t, "by local id", note.Title)

		_, err = s.FindOwningNote(ctx, "res-3")
		assert.ErrorIs(t, err, ErrEntityNotFound)
		_, err = s.FindOwningNote(ctx, "missing")
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}

func TestStore_ExpungeNoteRemovesResources(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.Note{SyncMeta: models.SyncMeta{LocalID: "n1", GUID: "note-1"}}))
		require.NoError(t, s.Put(ctx, &models.Resource{SyncMeta: models.SyncMeta{LocalID: "r1", GUID: "res-1"}, NoteGUID: "note-1"}))

		require.NoError(t, s.Expunge(ctx, models.KindNote, "note-1"))
		require.NoError(t, s.Expunge(ctx, models.KindNote, "never-existed"))

		_, err := s.FindByGUID(ctx, models.KindNote, "note-1")
		assert.ErrorIs(t, err, ErrEntityNotFound)
		_, err = s.FindByGUID(ctx, models.KindResource, "res-1")
		assert.ErrorIs(t, err, ErrEntityNotFound)
	})
}

func TestStore_ListLinkedNotebooks(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, &models.LinkedNotebook{SyncMeta: models.SyncMeta{LocalID: "a", GUID: "ln-a"}, ShardID: "s1"}))
		require.NoError(t, s.Put(ctx, &models.LinkedNotebook{SyncMeta: models.SyncMeta{LocalID: "b", GUID: "ln-b"}, ShardID: "s2"}))

		got, err := s.ListLinkedNotebooks(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "ln-a", got[0].GUID)
		assert.Equal(t, "s2", got[1].ShardID)
	})
}

// ── Checkpoints ───────────────────────────────────────────────────────────────

func TestStore_CheckpointsRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		empty, err := s.LoadCheckpoints(ctx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		ts := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
		in := models.Checkpoints{
			models.OwnAccount():                {LastUpdateCount: 42, LastFullSyncTimestamp: &ts},
			models.LinkedNotebookScope("ln-1"): {LastUpdateCount: 7},
		}
		require.NoError(t, s.SaveCheckpoints(ctx, in))

		in[models.OwnAccount()] = models.Checkpoint{LastUpdateCount: 50, LastFullSyncTimestamp: &ts}
		require.NoError(t, s.SaveCheckpoints(ctx, models.Checkpoints{models.OwnAccount(): in[models.OwnAccount()]}))

		out, err := s.LoadCheckpoints(ctx)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, int64(50), out[models.OwnAccount()].LastUpdateCount)
		require.NotNil(t, out[models.OwnAccount()].LastFullSyncTimestamp)
		assert.True(t, ts.Equal(*out[models.OwnAccount()].LastFullSyncTimestamp))
		assert.Equal(t, int64(7), out[models.LinkedNotebookScope("ln-1")].LastUpdateCount)
		assert.Nil(t, out[models.LinkedNotebookScope("ln-1")].LastFullSyncTimestamp)
	})
}

// ── Snapshot ──────────────────────────────────────────────────────────────────

func TestMemoryStore_SnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "replica.json")

	s, err := NewMemoryStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, &models.Tag{SyncMeta: models.SyncMeta{LocalID: "t1", GUID: "g1", Dirty: true}, Name: "a"}))
	require.NoError(t, s.Put(ctx, &models.Tag{SyncMeta: models.SyncMeta{LocalID: "t2", Dirty: true}, Name: "b"}))
	require.NoError(t, s.SaveCheckpoints(ctx, models.Checkpoints{models.OwnAccount(): {LastUpdateCount: 3}}))

	reopened, err := NewMemoryStore(path)
	require.NoError(t, err)

	dirty, err := reopened.ListDirty(ctx, models.KindTag, models.OwnAccount())
	require.NoError(t, err)
	require.Len(t, dirty, 2)
	assert.Equal(t, "t1", dirty[0].Meta().LocalID)

	cps, err := reopened.LoadCheckpoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cps[models.OwnAccount()].LastUpdateCount)
}
