// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// writeBackConcurrency bounds the concurrent dirty-flag write-backs of one
// push pass.
const writeBackConcurrency = 4

// errPushConflict ends a pass after the remote service reported a data
// conflict. It never leaves the package.
var errPushConflict = errors.New("push aborted by data conflict")

// PushResult is the outcome of one push pass.
type PushResult struct {
	// Checkpoints is the advanced copy of the checkpoints given to Run.
	Checkpoints models.Checkpoints

	SomethingUploaded bool

	// ConflictDetected is set when the pass was aborted by a data conflict;
	// another pull must run before pushing again.
	ConflictDetected bool

	// ShouldRepeatIncrementalSync is set when a returned usn showed that
	// another client changed the scope during the pass.
	ShouldRepeatIncrementalSync bool
}

// PushSynchronizer uploads dirty entities in dependency order: tags (parents
// first), saved searches, notebooks, notes, then resources. A pass runs on one goroutine,
// either blocking through Run or in the background through Start.
type PushSynchronizer struct {
	localStore store.LocalStore
	resolver   adapter.ScopeResolver
	tokens     AuthTokens
	notifier   Notifier
	after      afterFunc
	logger     *logger.Logger

	mu     sync.Mutex
	state  pushState
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPushSynchronizer returns an idle PushSynchronizer. A nil notifier drops
// events.
func NewPushSynchronizer(localStore store.LocalStore, resolver adapter.ScopeResolver, tokens AuthTokens, notifier Notifier, log *logger.Logger) *PushSynchronizer {
	if notifier == nil {
		notifier = NopNotifier()
	}
	return &PushSynchronizer{
		localStore: localStore,
		resolver:   resolver,
		tokens:     tokens,
		notifier:   notifier,
		after:      time.After,
		logger:     log,
	}
}

// State returns the current phase name.
func (s *PushSynchronizer) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.String()
}

// Run implements [Pusher]. It returns [ErrPushInProgress] when another pass
// is running. A data conflict is not an error: the result has
// ConflictDetected set and the synchronizer ends Stopped.
func (s *PushSynchronizer) Run(ctx context.Context, checkpoints models.Checkpoints) (PushResult, error) {
	s.mu.Lock()
	if !s.state.resting() {
		s.mu.Unlock()
		return PushResult{}, ErrPushInProgress
	}
	s.state = pushCollectingDirty
	s.mu.Unlock()

	p := &pushPass{
		s:             s,
		result:        PushResult{Checkpoints: checkpoints.Clone()},
		notebookGUIDs: make(map[string]string),
		tagGUIDs:      make(map[string]string),
		noteGUIDs:     make(map[string]string),
	}
	p.writeBacks.SetLimit(writeBackConcurrency)

	err := p.run(ctx)

	final := pushIdle
	switch {
	case errors.Is(err, errPushConflict):
		p.result.ConflictDetected = true
		s.notifier.Notify(models.Event{Type: models.EventConflictDetected})
		final, err = pushStopped, nil
	case err != nil:
		final = pushStopped
	}

	s.mu.Lock()
	s.state = final
	s.mu.Unlock()

	return p.result, err
}

// Start runs a pass in the background and reports its outcome through the
// notifier: finished with the updated checkpoints, failure, or stopped after
// a conflict or Stop. It returns false without doing anything when a pass is
// already running.
func (s *PushSynchronizer) Start(ctx context.Context, checkpoints models.Checkpoints) bool {
	s.mu.Lock()
	if s.cancel != nil || !s.state.resting() {
		s.mu.Unlock()
		return false
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.cancel = nil
			s.mu.Unlock()
			cancel()
		}()

		res, err := s.Run(runCtx, checkpoints)
		switch {
		case runCtx.Err() != nil:
			s.notifier.Notify(models.Event{Type: models.EventStopped})
		case err != nil:
			s.notifier.Notify(models.Event{Type: models.EventFailure, Err: err})
		case res.ConflictDetected:
			s.notifier.Notify(models.Event{Type: models.EventStopped})
		default:
			s.notifier.Notify(models.Event{
				Type:              models.EventFinished,
				Checkpoints:       res.Checkpoints,
				SomethingUploaded: res.SomethingUploaded,
			})
		}
	}()

	return true
}

// Stop cancels a background pass started with Start and waits for it to
// exit. Safe to call when nothing is running.
func (s *PushSynchronizer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// enter moves to next. Entering the current phase again is a no-op that
// returns false.
func (s *PushSynchronizer) enter(next pushState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == next {
		return false
	}
	s.state = next
	return true
}

func (s *PushSynchronizer) wait(ctx context.Context, seconds int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.after(time.Duration(seconds) * time.Second):
		return nil
	}
}

// pushPass is the state of one Run call.
type pushPass struct {
	s      *PushSynchronizer
	result PushResult

	tags      []*models.Tag
	searches  []*models.SavedSearch
	notebooks []*models.Notebook
	notes     []*models.Note
	resources []*models.Resource

	linked        map[string]models.LinkedNotebookAuthData
	notebookGUIDs map[string]string
	tagGUIDs      map[string]string
	noteGUIDs     map[string]string

	writeBacks errgroup.Group
}

func (p *pushPass) run(ctx context.Context) error {
	if err := p.collectDirty(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.resolveLinkedNotebookAuth(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.sendTags(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.sendSavedSearches(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.sendNotebooks(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.resolveNotebooksForNotes(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.sendNotes(ctx); err != nil {
		return p.finalize(err)
	}
	if err := p.sendResources(ctx); err != nil {
		return p.finalize(err)
	}

	p.s.enter(pushFinalizing)
	return p.finalize(nil)
}

// finalize waits for every write-back. A write-back failure replaces a nil
// cause; an earlier cause wins otherwise.
func (p *pushPass) finalize(cause error) error {
	if err := p.writeBacks.Wait(); err != nil && cause == nil {
		return err
	}
	return cause
}

// collectDirty runs in the collecting phase entered by Run.
func (p *pushPass) collectDirty(ctx context.Context) error {
	linked, err := p.s.localStore.ListLinkedNotebooks(ctx)
	if err != nil {
		return fmt.Errorf("list linked notebooks: %w", err)
	}
	p.linked = make(map[string]models.LinkedNotebookAuthData, len(linked))
	scopes := []models.Scope{models.OwnAccount()}
	for _, ln := range linked {
		if ln.GUID == "" {
			continue
		}
		p.linked[ln.GUID] = ln.AuthData()
		scopes = append(scopes, models.LinkedNotebookScope(ln.GUID))
	}

	for _, scope := range scopes {
		for _, kind := range []models.EntityKind{models.KindTag, models.KindSavedSearch, models.KindNotebook, models.KindNote, models.KindResource} {
			if kind == models.KindSavedSearch && !scope.IsOwnAccount() {
				continue
			}
			entities, err := p.s.localStore.ListDirty(ctx, kind, scope)
			if err != nil {
				return fmt.Errorf("list dirty %s in %s: %w", kind, scope, err)
			}
			p.add(entities)
		}
	}

	p.s.logger.Debug().
		Str("func", "pushPass.collectDirty").
		Int("tags", len(p.tags)).
		Int("saved_searches", len(p.searches)).
		Int("notebooks", len(p.notebooks)).
		Int("notes", len(p.notes)).
		Int("resources", len(p.resources)).
		Msg("dirty entities collected")

	return nil
}

func (p *pushPass) add(entities []models.Entity) {
	for _, e := range entities {
		switch v := e.(type) {
		case *models.Tag:
			p.tags = append(p.tags, v)
		case *models.SavedSearch:
			p.searches = append(p.searches, v)
		case *models.Notebook:
			p.notebooks = append(p.notebooks, v)
		case *models.Note:
			p.notes = append(p.notes, v)
		case *models.Resource:
			p.resources = append(p.resources, v)
		}
	}
}

func (p *pushPass) hasLinkedItems() bool {
	for _, t := range p.tags {
		if t.LinkedNotebookGUID != "" {
			return true
		}
	}
	for _, n := range p.notebooks {
		if n.LinkedNotebookGUID != "" {
			return true
		}
	}
	for _, n := range p.notes {
		if n.LinkedNotebookGUID != "" {
			return true
		}
	}
	for _, r := range p.resources {
		if r.LinkedNotebookGUID != "" {
			return true
		}
	}
	return false
}

func (p *pushPass) resolveLinkedNotebookAuth(ctx context.Context) error {
	if !p.s.enter(pushResolvingLinkedNotebookAuth) {
		return nil
	}

	p.s.tokens.SetLinkedNotebooks(p.linked)
	p.s.resolver.SetLinkedNotebooks(p.linked)

	if !p.hasLinkedItems() {
		return nil
	}
	if _, err := p.s.tokens.RefreshLinkedNotebookTokens(ctx, false); err != nil {
		return fmt.Errorf("resolve linked notebook auth: %w", err)
	}
	return nil
}

func (p *pushPass) sendTags(ctx context.Context) error {
	if !p.s.enter(pushSendingTags) {
		return nil
	}

	sorted, err := sortTagsForPush(ctx, p.s.localStore, p.tags)
	if err != nil {
		return err
	}
	p.tags = sorted

	items := make([]models.Entity, len(sorted))
	for i, t := range sorted {
		items[i] = t
	}

	return p.sendAll(ctx, items, func(e models.Entity) {
		tag := e.(*models.Tag)
		p.tagGUIDs[tag.LocalID] = tag.GUID

		for _, child := range p.tags {
			if child.ParentLocalID == tag.LocalID {
				child.ParentGUID = tag.GUID
			}
		}
		for _, note := range p.notes {
			if note.HasTagLocalID(tag.LocalID) && !note.HasTagGUID(tag.GUID) {
				note.TagGUIDs = append(note.TagGUIDs, tag.GUID)
			}
		}
	})
}

func (p *pushPass) sendSavedSearches(ctx context.Context) error {
	if !p.s.enter(pushSendingSavedSearches) {
		return nil
	}

	items := make([]models.Entity, len(p.searches))
	for i, s := range p.searches {
		items[i] = s
	}
	return p.sendAll(ctx, items, nil)
}

func (p *pushPass) sendNotebooks(ctx context.Context) error {
	if !p.s.enter(pushSendingNotebooks) {
		return nil
	}

	items := make([]models.Entity, len(p.notebooks))
	for i, n := range p.notebooks {
		items[i] = n
	}
	return p.sendAll(ctx, items, func(e models.Entity) {
		nb := e.(*models.Notebook)
		p.notebookGUIDs[nb.LocalID] = nb.GUID
	})
}

// resolveNotebooksForNotes fills the notebook guid of every waiting note and
// the guids of tags that were not pushed in this pass.
func (p *pushPass) resolveNotebooksForNotes(ctx context.Context) error {
	if !p.s.enter(pushResolvingNotebooksForNotes) {
		return nil
	}

	for _, note := range p.notes {
		if note.NotebookGUID == "" && note.NotebookLocalID != "" {
			guid, err := p.notebookGUID(ctx, note.NotebookLocalID)
			if err != nil {
				return fmt.Errorf("note %s: %w", note.LocalID, err)
			}
			note.NotebookGUID = guid
		}

		for _, localID := range note.TagLocalIDs {
			guid, err := p.tagGUID(ctx, localID)
			if err != nil {
				return fmt.Errorf("note %s: %w", note.LocalID, err)
			}
			if guid != "" && !note.HasTagGUID(guid) {
				note.TagGUIDs = append(note.TagGUIDs, guid)
			}
		}
	}

	return nil
}

func (p *pushPass) notebookGUID(ctx context.Context, localID string) (string, error) {
	if guid, ok := p.notebookGUIDs[localID]; ok {
		return guid, nil
	}

	nb, err := p.s.localStore.FindByLocalID(ctx, models.KindNotebook, localID)
	if errors.Is(err, store.ErrEntityNotFound) || (err == nil && nb.Meta().GUID == "") {
		return "", fmt.Errorf("%w: %w: %s", ErrInvariantViolation, ErrUnresolvedNotebook, localID)
	}
	if err != nil {
		return "", fmt.Errorf("find notebook %s: %w", localID, err)
	}

	p.notebookGUIDs[localID] = nb.Meta().GUID
	return nb.Meta().GUID, nil
}

// tagGUID returns the guid of a tag by local id or "" when the tag no
// longer exists locally or was never pushed.
func (p *pushPass) tagGUID(ctx context.Context, localID string) (string, error) {
	if guid, ok := p.tagGUIDs[localID]; ok {
		return guid, nil
	}

	tag, err := p.s.localStore.FindByLocalID(ctx, models.KindTag, localID)
	if errors.Is(err, store.ErrEntityNotFound) {
		p.tagGUIDs[localID] = ""
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find tag %s: %w", localID, err)
	}

	p.tagGUIDs[localID] = tag.Meta().GUID
	return tag.Meta().GUID, nil
}

func (p *pushPass) sendNotes(ctx context.Context) error {
	if !p.s.enter(pushSendingNotes) {
		return nil
	}

	items := make([]models.Entity, len(p.notes))
	for i, n := range p.notes {
		prepareNoteForUpload(n)
		items[i] = n
	}
	return p.sendAll(ctx, items, func(e models.Entity) {
		note := e.(*models.Note)
		p.noteGUIDs[note.LocalID] = note.GUID
	})
}

// sendResources attaches every dirty resource to the guid of its note and
// uploads it. A resource whose note has no guid breaks the pass.
func (p *pushPass) sendResources(ctx context.Context) error {
	if !p.s.enter(pushSendingResources) {
		return nil
	}

	items := make([]models.Entity, len(p.resources))
	for i, r := range p.resources {
		if r.NoteGUID == "" {
			guid, err := p.noteGUID(ctx, r.NoteLocalID)
			if err != nil {
				return fmt.Errorf("resource %s: %w", r.LocalID, err)
			}
			r.NoteGUID = guid
		}
		items[i] = r
	}
	return p.sendAll(ctx, items, nil)
}

func (p *pushPass) noteGUID(ctx context.Context, localID string) (string, error) {
	if guid, ok := p.noteGUIDs[localID]; ok && guid != "" {
		return guid, nil
	}
	if localID == "" {
		return "", fmt.Errorf("%w: %w: no owning note", ErrInvariantViolation, ErrUnresolvedNote)
	}

	note, err := p.s.localStore.FindByLocalID(ctx, models.KindNote, localID)
	if errors.Is(err, store.ErrEntityNotFound) || (err == nil && note.Meta().GUID == "") {
		return "", fmt.Errorf("%w: %w: %s", ErrInvariantViolation, ErrUnresolvedNote, localID)
	}
	if err != nil {
		return "", fmt.Errorf("find note %s: %w", localID, err)
	}

	p.noteGUIDs[localID] = note.Meta().GUID
	return note.Meta().GUID, nil
}

// sendAll uploads items in order. A rate limit waits and resumes from the
// item that was refused; an expired token is refreshed once per item.
func (p *pushPass) sendAll(ctx context.Context, items []models.Entity, onSent func(models.Entity)) error {
	authRetried := false

	for i := 0; i < len(items); {
		item := items[i]
		err := p.sendOne(ctx, item)
		if err == nil {
			if onSent != nil {
				onSent(item)
			}
			authRetried = false
			i++
			continue
		}

		scope := item.Meta().OwnerScope()
		log := p.s.logger.With().
			Str("kind", item.Kind().String()).
			Str("local_id", item.Meta().LocalID).
			Str("scope", scope.Key()).
			Logger()

		switch Classify(err) {
		case models.ErrorRateLimited:
			seconds, _ := adapter.RateLimitSeconds(err)
			log.Warn().Str("func", "pushPass.sendAll").Int("seconds", seconds).Msg("rate limited, pausing push")
			p.s.notifier.Notify(models.Event{Type: models.EventRateLimitExceeded, Scope: scope, RateLimitSeconds: seconds})
			if err = p.s.wait(ctx, seconds); err != nil {
				return err
			}
		case models.ErrorAuthExpired:
			if authRetried {
				return fmt.Errorf("push %s %s: auth expired again after refresh: %w", item.Kind(), item.Meta().LocalID, err)
			}
			authRetried = true
			log.Info().Str("func", "pushPass.sendAll").Msg("auth expired, refreshing token")
			if err = p.refreshAuth(ctx, scope, err); err != nil {
				return err
			}
		case models.ErrorDataConflict:
			log.Warn().Err(err).Str("func", "pushPass.sendAll").Msg("data conflict, aborting push")
			return fmt.Errorf("%w: %w", errPushConflict, err)
		default:
			return fmt.Errorf("push %s %s: %w", item.Kind(), item.Meta().LocalID, err)
		}
	}

	return nil
}

func (p *pushPass) refreshAuth(ctx context.Context, scope models.Scope, cause error) error {
	if scope.IsOwnAccount() {
		if _, err := p.s.tokens.RefreshOwnToken(ctx); err != nil {
			return fmt.Errorf("refresh own token: %w", err)
		}
		return nil
	}

	refreshed, err := p.s.tokens.RefreshLinkedNotebookTokens(ctx, false)
	if err != nil {
		return fmt.Errorf("refresh linked notebook tokens: %w", err)
	}
	if !refreshed {
		return fmt.Errorf("%w: %s: %w", ErrUnexpectedAuthExpiration, scope, cause)
	}
	return nil
}

// sendOne creates or updates item, copies the remote identity back and
// schedules the dirty-flag write-back.
func (p *pushPass) sendOne(ctx context.Context, item models.Entity) error {
	meta := item.Meta()
	scope := meta.OwnerScope()

	client, err := p.s.resolver.ClientFor(ctx, scope)
	if err != nil {
		return fmt.Errorf("client for %s: %w", scope, err)
	}

	var remote models.Entity
	if meta.GUID == "" {
		remote, err = client.Create(ctx, item)
	} else {
		remote, err = client.Update(ctx, item)
	}
	if err != nil {
		return err
	}

	if remote == nil || remote.Meta().GUID == "" {
		return fmt.Errorf("%w: %w: %s %s", ErrInvariantViolation, ErrMissingRemoteGUID, item.Kind(), meta.LocalID)
	}

	meta.GUID = remote.Meta().GUID
	meta.USN = remote.Meta().USN
	meta.Dirty = false
	p.result.SomethingUploaded = true
	p.trackUSN(scope, meta.USN)

	saved := item.Clone()
	p.writeBacks.Go(func() error {
		if err := p.s.localStore.Put(ctx, saved); err != nil {
			return fmt.Errorf("clear dirty flag of %s %s: %w", saved.Kind(), saved.Meta().LocalID, err)
		}
		return nil
	})

	p.s.logger.Debug().
		Str("func", "pushPass.sendOne").
		Str("kind", item.Kind().String()).
		Str("guid", meta.GUID).
		Int64("usn", meta.USN).
		Msg("entity pushed")

	return nil
}

// trackUSN advances the scope checkpoint when usn directly follows it and
// flags another incremental sync otherwise.
func (p *pushPass) trackUSN(scope models.Scope, usn int64) {
	expected := p.result.Checkpoints[scope].LastUpdateCount + 1
	if usn == expected {
		p.result.Checkpoints.Advance(scope, usn)
		return
	}

	if !p.result.ShouldRepeatIncrementalSync {
		p.result.ShouldRepeatIncrementalSync = true
		p.s.notifier.Notify(models.Event{Type: models.EventShouldRepeatIncrementalSync, Scope: scope})
	}
}
