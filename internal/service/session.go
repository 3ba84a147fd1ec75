// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

const (
	DefaultChunkSize = 100
	DefaultMaxRounds = 3
)

// ownAccountPullKinds is the pull order of the own account.
var ownAccountPullKinds = []models.EntityKind{
	models.KindTag, models.KindSavedSearch, models.KindLinkedNotebook,
	models.KindNotebook, models.KindNote, models.KindResource,
}

// linkedNotebookPullKinds is the pull order of a linked notebook scope.
var linkedNotebookPullKinds = []models.EntityKind{
	models.KindTag, models.KindNotebook, models.KindNote, models.KindResource,
}

// SessionResult is the outcome of a successful session.
type SessionResult struct {
	Checkpoints         models.Checkpoints
	SomethingDownloaded bool
	SomethingUploaded   bool

	// Rounds is the number of pull/push rounds the session ran.
	Rounds int
}

// SessionParams holds the collaborators of a [Session].
type SessionParams struct {
	LocalStore      store.LocalStore
	CheckpointStore store.CheckpointStore
	Resolver        adapter.ScopeResolver
	Tokens          AuthTokens
	Pullers         map[models.EntityKind]PullProcessor
	Pusher          Pusher
	Notifier        Notifier

	// ChunkSize is the number of entries requested per sync chunk.
	ChunkSize int

	// MaxRounds bounds the pull/push rounds run when a push reports a
	// conflict or usn drift.
	MaxRounds int
}

// Session orchestrates one synchronization: authenticate, load checkpoints,
// pull every scope, push, repeat the pull when the push asks for it, and
// persist the checkpoints.
type Session struct {
	localStore      store.LocalStore
	checkpointStore store.CheckpointStore
	resolver        adapter.ScopeResolver
	tokens          AuthTokens
	pullers         map[models.EntityKind]PullProcessor
	pusher          Pusher
	notifier        Notifier
	chunkSize       int
	maxRounds       int
	ids             *utils.UUIDGenerator
	after           afterFunc
	now             func() time.Time
	logger          *logger.Logger

	mu      sync.Mutex
	state   sessionState
	running bool
}

// NewSession returns an idle Session.
func NewSession(params SessionParams, log *logger.Logger) *Session {
	if params.Notifier == nil {
		params.Notifier = NopNotifier()
	}
	if params.ChunkSize <= 0 {
		params.ChunkSize = DefaultChunkSize
	}
	if params.MaxRounds <= 0 {
		params.MaxRounds = DefaultMaxRounds
	}

	return &Session{
		localStore:      params.LocalStore,
		checkpointStore: params.CheckpointStore,
		resolver:        params.Resolver,
		tokens:          params.Tokens,
		pullers:         params.Pullers,
		pusher:          params.Pusher,
		notifier:        params.Notifier,
		chunkSize:       params.ChunkSize,
		maxRounds:       params.MaxRounds,
		ids:             utils.NewUUIDGenerator(),
		after:           time.After,
		now:             time.Now,
		logger:          log,
	}
}

// State returns the current phase name.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.String()
}

func (s *Session) setState(state sessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Run implements [SessionRunner]. Events: started, then finished or failure,
// then stopped. Checkpoints are persisted only when the session succeeds.
// Every remote request of the session carries a fresh session id.
func (s *Session) Run(ctx context.Context) (SessionResult, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return SessionResult{}, ErrSessionInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	sessionID := s.ids.Generate()
	ctx = utils.WithSessionID(ctx, sessionID)
	ctx = s.logger.With().Str("session_id", sessionID).Logger().WithContext(ctx)

	s.notifier.Notify(models.Event{Type: models.EventStarted})
	defer s.notifier.Notify(models.Event{Type: models.EventStopped})

	res, err := s.run(ctx)
	if err != nil {
		s.setState(sessionFailed)
		s.logger.Error().Err(err).
			Str("func", "Session.Run").
			Str("session_id", sessionID).
			Str("class", Classify(err).String()).
			Msg("sync session failed")
		s.notifier.Notify(models.Event{Type: models.EventFailure, Err: err})
		return res, err
	}

	s.setState(sessionIdle)
	s.notifier.Notify(models.Event{
		Type:                models.EventFinished,
		Checkpoints:         res.Checkpoints.Clone(),
		SomethingDownloaded: res.SomethingDownloaded,
		SomethingUploaded:   res.SomethingUploaded,
	})

	return res, nil
}

func (s *Session) run(ctx context.Context) (SessionResult, error) {
	s.setState(sessionAuthenticating)
	if _, err := s.tokens.OwnToken(ctx); err != nil {
		return SessionResult{}, fmt.Errorf("authenticate: %w", err)
	}

	s.setState(sessionLoadingCheckpoints)
	checkpoints, err := s.checkpointStore.LoadCheckpoints(ctx)
	if err != nil {
		return SessionResult{}, fmt.Errorf("load checkpoints: %w", err)
	}
	if checkpoints == nil {
		checkpoints = make(models.Checkpoints)
	}

	res := SessionResult{Checkpoints: checkpoints}

	for round := 1; ; round++ {
		res.Rounds = round
		if round == 1 {
			s.setState(sessionPullPhase)
		} else {
			s.setState(sessionRepeatPull)
		}

		downloaded, err := s.pullAll(ctx, res.Checkpoints)
		res.SomethingDownloaded = res.SomethingDownloaded || downloaded
		if err != nil {
			return res, fmt.Errorf("pull: %w", err)
		}

		s.setState(sessionPushPhase)
		pushed, err := s.pusher.Run(ctx, res.Checkpoints)
		if pushed.Checkpoints != nil {
			res.Checkpoints = pushed.Checkpoints
		}
		res.SomethingUploaded = res.SomethingUploaded || pushed.SomethingUploaded
		if err != nil {
			return res, fmt.Errorf("push: %w", err)
		}

		if !pushed.ConflictDetected && !pushed.ShouldRepeatIncrementalSync {
			break
		}
		if round >= s.maxRounds {
			s.logger.Warn().
				Str("func", "Session.run").
				Int("rounds", round).
				Bool("conflict", pushed.ConflictDetected).
				Msg("round limit reached, leaving the rest to the next session")
			break
		}
	}

	s.setState(sessionPersistingCheckpoints)
	if err := s.checkpointStore.SaveCheckpoints(ctx, res.Checkpoints); err != nil {
		return res, fmt.Errorf("save checkpoints: %w", err)
	}

	return res, nil
}

// pullAll pulls the own account and then every linked notebook known after
// the own-account pull.
func (s *Session) pullAll(ctx context.Context, checkpoints models.Checkpoints) (bool, error) {
	downloaded, err := s.pullScope(ctx, models.OwnAccount(), checkpoints)
	if err != nil {
		return downloaded, err
	}

	linked, err := s.localStore.ListLinkedNotebooks(ctx)
	if err != nil {
		return downloaded, fmt.Errorf("list linked notebooks: %w", err)
	}

	auth := make(map[string]models.LinkedNotebookAuthData, len(linked))
	for _, ln := range linked {
		if ln.GUID != "" {
			auth[ln.GUID] = ln.AuthData()
		}
	}
	s.tokens.SetLinkedNotebooks(auth)
	s.resolver.SetLinkedNotebooks(auth)

	if len(auth) == 0 {
		return downloaded, nil
	}
	if _, err = s.tokens.RefreshLinkedNotebookTokens(ctx, false); err != nil {
		return downloaded, fmt.Errorf("linked notebook auth: %w", err)
	}

	guids := make([]string, 0, len(auth))
	for guid := range auth {
		guids = append(guids, guid)
	}
	sort.Strings(guids)

	for _, guid := range guids {
		got, err := s.pullScope(ctx, models.LinkedNotebookScope(guid), checkpoints)
		downloaded = downloaded || got
		if err != nil {
			return downloaded, err
		}
	}

	return downloaded, nil
}

// needsFullSync reports whether scope must be pulled from usn zero.
func needsFullSync(cp models.Checkpoint, state models.SyncState) bool {
	if cp.LastUpdateCount == 0 {
		return true
	}
	if state.FullSyncBefore.IsZero() {
		return false
	}
	if cp.LastFullSyncTimestamp == nil {
		return true
	}
	return cp.LastFullSyncTimestamp.Before(state.FullSyncBefore)
}

// pullScope pages through the scope's sync chunks and feeds them to the
// pull processors kind by kind. The scope checkpoint advances to each chunk
// high usn until an item fails; after that it stays just below the lowest
// failed usn so the next session retries it.
func (s *Session) pullScope(ctx context.Context, scope models.Scope, checkpoints models.Checkpoints) (bool, error) {
	log := s.logger.WithScope(scope)

	client, err := s.resolver.ClientFor(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("client for %s: %w", scope, err)
	}

	var state models.SyncState
	err = s.withRemoteRetry(ctx, scope, func() error {
		var err error
		state, err = client.GetSyncState(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("sync state of %s: %w", scope, err)
	}

	cp := checkpoints[scope]
	fullSync := needsFullSync(cp, state)
	if !fullSync && state.UpdateCount <= cp.LastUpdateCount {
		log.Debug().Str("func", "Session.pullScope").Int64("usn", cp.LastUpdateCount).Msg("scope is up to date")
		return false, nil
	}

	afterUSN := cp.LastUpdateCount
	if fullSync {
		afterUSN = 0
	}

	kinds := ownAccountPullKinds
	if !scope.IsOwnAccount() {
		kinds = linkedNotebookPullKinds
	}

	var (
		handled   atomic.Int64
		processed int
		failed    bool
		minFailed int64
	)
	progress := func(string, int64) { handled.Add(1) }

	for {
		var chunk *models.SyncChunk
		err = s.withRemoteRetry(ctx, scope, func() error {
			var err error
			chunk, err = client.GetSyncChunk(ctx, afterUSN, s.chunkSize, fullSync)
			return err
		})
		if err != nil {
			return processed > 0, fmt.Errorf("sync chunk of %s after usn %d: %w", scope, afterUSN, err)
		}

		for _, kind := range kinds {
			out, err := s.runPuller(ctx, scope, kind, chunk.Descriptors(kind, scope), progress)
			processed += out.processed
			if out.failed && (!failed || out.minFailedUSN < minFailed) {
				minFailed = out.minFailedUSN
			}
			failed = failed || out.failed
			if err != nil {
				return processed > 0, err
			}

			for _, guid := range chunk.Expunged(kind) {
				if err = s.localStore.Expunge(ctx, kind, guid); err != nil {
					return processed > 0, fmt.Errorf("expunge %s %s: %w", kind, guid, err)
				}
				processed++
			}
		}

		if failed {
			checkpoints.Advance(scope, minFailed-1)
		} else {
			checkpoints.Advance(scope, chunk.ChunkHighUSN)
		}

		upTo := state.UpdateCount
		if chunk.UpdateCount > upTo {
			upTo = chunk.UpdateCount
		}
		remaining := upTo - chunk.ChunkHighUSN
		if remaining < 0 {
			remaining = 0
		}
		s.notifier.Notify(models.Event{
			Type:       models.EventProgress,
			Scope:      scope,
			Downloaded: int(handled.Load()),
			Remaining:  int(remaining),
		})

		if chunk.ChunkHighUSN >= upTo || chunk.ChunkHighUSN <= afterUSN {
			break
		}
		afterUSN = chunk.ChunkHighUSN
	}

	if !failed {
		ts := state.CurrentTime
		if ts.IsZero() {
			ts = s.now()
		}
		updated := checkpoints[scope]
		updated.LastFullSyncTimestamp = &ts
		checkpoints[scope] = updated
	}

	log.Info().
		Str("func", "Session.pullScope").
		Bool("full_sync", fullSync).
		Int("processed", processed).
		Bool("failed", failed).
		Int64("usn", checkpoints[scope].LastUpdateCount).
		Msg("scope pulled")

	return processed > 0, nil
}

type pullOutcome struct {
	processed    int
	failed       bool
	minFailedUSN int64
}

func (o *pullOutcome) fail(usn int64) {
	if !o.failed || usn < o.minFailedUSN {
		o.minFailedUSN = usn
	}
	o.failed = true
}

// runPuller feeds descriptors to the processor of kind and resubmits the
// cancelled items after a rate-limit wait or a token refresh.
func (s *Session) runPuller(ctx context.Context, scope models.Scope, kind models.EntityKind, descriptors []models.EntityDescriptor, progress ProgressFunc) (pullOutcome, error) {
	var out pullOutcome
	if len(descriptors) == 0 {
		return out, nil
	}

	puller, ok := s.pullers[kind]
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrPullerNotFound, kind)
	}

	authRetried := false
	for len(descriptors) > 0 {
		status, err := puller.ProcessBatch(ctx, descriptors, progress)
		if err != nil {
			return out, fmt.Errorf("pull %s in %s: %w", kind, scope, err)
		}

		out.processed += len(status.Processed)
		for _, f := range status.FailedToDownload {
			out.fail(f.Descriptor.ExpectedUSN)
			s.logFailedItem(scope, f, "download failed")
		}
		for _, f := range status.FailedToProcess {
			out.fail(f.Descriptor.ExpectedUSN)
			s.logFailedItem(scope, f, "processing failed")
		}

		switch status.StopReason.Kind {
		case models.StopRateLimited:
			seconds := status.StopReason.RateLimitSeconds
			s.notifier.Notify(models.Event{Type: models.EventRateLimitExceeded, Scope: scope, RateLimitSeconds: seconds})
			if err = s.wait(ctx, seconds); err != nil {
				return out, err
			}
		case models.StopAuthExpired:
			if authRetried {
				return out, fmt.Errorf("%w: pull %s in %s", ErrUnexpectedAuthExpiration, kind, scope)
			}
			authRetried = true
			if err = s.refreshAuth(ctx, scope); err != nil {
				return out, err
			}
		default:
			return out, nil
		}

		descriptors = resubmit(descriptors, status.Cancelled)
	}

	return out, nil
}

func (s *Session) logFailedItem(scope models.Scope, f models.FailedItem, msg string) {
	s.logger.Warn().Err(f.Err).
		Str("func", "Session.runPuller").
		Str("scope", scope.Key()).
		Str("kind", f.Descriptor.Kind.String()).
		Str("guid", f.Descriptor.GUID).
		Int64("usn", f.Descriptor.ExpectedUSN).
		Msg(msg)
}

// resubmit keeps the descriptors listed in cancelled, in their original
// order.
func resubmit(descriptors []models.EntityDescriptor, cancelled map[string]int64) []models.EntityDescriptor {
	out := make([]models.EntityDescriptor, 0, len(cancelled))
	seen := make(map[string]struct{}, len(cancelled))
	for _, d := range descriptors {
		if _, ok := cancelled[d.GUID]; !ok {
			continue
		}
		if _, dup := seen[d.GUID]; dup {
			continue
		}
		seen[d.GUID] = struct{}{}
		out = append(out, d)
	}
	return out
}

// withRemoteRetry runs call, waiting out rate limits and refreshing the
// token once on auth expiry.
func (s *Session) withRemoteRetry(ctx context.Context, scope models.Scope, call func() error) error {
	authRetried := false
	for {
		err := call()
		switch Classify(err) {
		case models.ErrorRateLimited:
			seconds, _ := adapter.RateLimitSeconds(err)
			s.notifier.Notify(models.Event{Type: models.EventRateLimitExceeded, Scope: scope, RateLimitSeconds: seconds})
			if err = s.wait(ctx, seconds); err != nil {
				return err
			}
		case models.ErrorAuthExpired:
			if authRetried {
				return fmt.Errorf("%w: %w", ErrUnexpectedAuthExpiration, err)
			}
			authRetried = true
			if err = s.refreshAuth(ctx, scope); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

func (s *Session) refreshAuth(ctx context.Context, scope models.Scope) error {
	if scope.IsOwnAccount() {
		if _, err := s.tokens.RefreshOwnToken(ctx); err != nil {
			return fmt.Errorf("refresh own token: %w", err)
		}
		return nil
	}
	if _, err := s.tokens.RefreshLinkedNotebookTokens(ctx, true); err != nil {
		return fmt.Errorf("refresh linked notebook tokens: %w", err)
	}
	return nil
}

func (s *Session) wait(ctx context.Context, seconds int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.after(time.Duration(seconds) * time.Second):
		return nil
	}
}
