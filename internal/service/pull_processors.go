package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// conflictingSuffix is appended to the name of a detached conflict copy so
// it does not collide with the remote name once pushed.
const conflictingSuffix = " - conflicting"

func NewTagsPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindTag, clone: cloneTag}, localStore, resolver, concurrency, log)
}

func NewSavedSearchesPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindSavedSearch, clone: cloneSavedSearch}, localStore, resolver, concurrency, log)
}

func NewNotebooksPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindNotebook, clone: cloneNotebook}, localStore, resolver, concurrency, log)
}

func NewNotesPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindNote, clone: cloneDetached}, localStore, resolver, concurrency, log)
}

// NewResourcesPullProcessor returns the resource processor. A conflicting
// resource is preserved together with a detached copy of its owning note.
func NewResourcesPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindResource, clone: cloneResource}, localStore, resolver, concurrency, log)
}

func NewLinkedNotebooksPullProcessor(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) PullProcessor {
	return newEntityPullProcessor(pullStrategy{kind: models.KindLinkedNotebook, clone: cloneDetached}, localStore, resolver, concurrency, log)
}

// NewPullProcessors returns one processor per kind keyed by kind.
func NewPullProcessors(localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) map[models.EntityKind]PullProcessor {
	return map[models.EntityKind]PullProcessor{
		models.KindTag:            NewTagsPullProcessor(localStore, resolver, concurrency, log),
		models.KindSavedSearch:    NewSavedSearchesPullProcessor(localStore, resolver, concurrency, log),
		models.KindLinkedNotebook: NewLinkedNotebooksPullProcessor(localStore, resolver, concurrency, log),
		models.KindNotebook:       NewNotebooksPullProcessor(localStore, resolver, concurrency, log),
		models.KindNote:           NewNotesPullProcessor(localStore, resolver, concurrency, log),
		models.KindResource:       NewResourcesPullProcessor(localStore, resolver, concurrency, log),
	}
}

func cloneDetached(_ context.Context, local models.Entity, newLocalID func() string, _ store.LocalStore) ([]models.Entity, error) {
	return []models.Entity{models.Detach(local, newLocalID())}, nil
}

func cloneTag(_ context.Context, local models.Entity, newLocalID func() string, _ store.LocalStore) ([]models.Entity, error) {
	c := models.Detach(local, newLocalID()).(*models.Tag)
	c.Name += conflictingSuffix
	return []models.Entity{c}, nil
}

func cloneSavedSearch(_ context.Context, local models.Entity, newLocalID func() string, _ store.LocalStore) ([]models.Entity, error) {
	c := models.Detach(local, newLocalID()).(*models.SavedSearch)
	c.Name += conflictingSuffix
	return []models.Entity{c}, nil
}

func cloneNotebook(_ context.Context, local models.Entity, newLocalID func() string, _ store.LocalStore) ([]models.Entity, error) {
	c := models.Detach(local, newLocalID()).(*models.Notebook)
	c.Name += conflictingSuffix
	c.IsDefault = false
	return []models.Entity{c}, nil
}

// cloneResource detaches the owning note first so the resource copy can point
// at it. A missing owning note fails the item.
func cloneResource(ctx context.Context, local models.Entity, newLocalID func() string, localStore store.LocalStore) ([]models.Entity, error) {
	note, err := localStore.FindOwningNote(ctx, local.Meta().GUID)
	if err != nil {
		return nil, fmt.Errorf("find owning note: %w", err)
	}

	noteCopy := models.Detach(note, newLocalID()).(*models.Note)

	resCopy := models.Detach(local, newLocalID()).(*models.Resource)
	resCopy.NoteGUID = ""
	resCopy.NoteLocalID = noteCopy.LocalID

	return []models.Entity{noteCopy, resCopy}, nil
}
