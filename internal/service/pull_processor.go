// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/utils"
	"github.com/MKhiriev/go-note-sync/models"
)

// DefaultPullConcurrency bounds the in-flight items of one pull run when no
// concurrency is configured.
const DefaultPullConcurrency = 8

// conflictCloneFunc builds the detached copies that preserve a locally
// modified entity before the remote version replaces it. The returned
// entities are written before the remote version, in order.
type conflictCloneFunc func(ctx context.Context, local models.Entity, newLocalID func() string, localStore store.LocalStore) ([]models.Entity, error)

// pullStrategy carries the per-kind parts of the pull algorithm.
type pullStrategy struct {
	kind  models.EntityKind
	clone conflictCloneFunc
}

type entityPullProcessor struct {
	strategy    pullStrategy
	localStore  store.LocalStore
	resolver    adapter.ScopeResolver
	ids         *utils.UUIDGenerator
	concurrency int
	logger      *logger.Logger
}

func newEntityPullProcessor(strategy pullStrategy, localStore store.LocalStore, resolver adapter.ScopeResolver, concurrency int, log *logger.Logger) *entityPullProcessor {
	if concurrency <= 0 {
		concurrency = DefaultPullConcurrency
	}
	return &entityPullProcessor{
		strategy:    strategy,
		localStore:  localStore,
		resolver:    resolver,
		ids:         utils.NewUUIDGenerator(),
		concurrency: concurrency,
		logger:      log,
	}
}

// Kind implements [PullProcessor].
func (p *entityPullProcessor) Kind() models.EntityKind {
	return p.strategy.kind
}

// ProcessBatch implements [PullProcessor].
func (p *entityPullProcessor) ProcessBatch(ctx context.Context, descriptors []models.EntityDescriptor, progress ProgressFunc) (*models.AggregateStatus, error) {
	status := models.NewAggregateStatus()
	if len(descriptors) == 0 {
		return status, nil
	}

	for _, d := range descriptors {
		if d.Kind != p.strategy.kind {
			return nil, fmt.Errorf("%w: %s descriptor %s passed to %s pull processor", ErrInvariantViolation, d.Kind, d.GUID, p.strategy.kind)
		}
		if d.GUID == "" {
			return nil, fmt.Errorf("%w: %s descriptor without guid", ErrInvariantViolation, d.Kind)
		}
	}

	run := &pullRun{status: status, claimed: make(map[string]struct{}, len(descriptors))}
	if progress == nil {
		progress = func(string, int64) {}
	}

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)

	for _, d := range descriptors {
		if !run.claim(d.GUID) {
			continue
		}
		if run.stopped.Load() || ctx.Err() != nil {
			run.cancel(d)
			continue
		}

		g.Go(func() error {
			// the stop flag may have been raised while waiting for a slot
			if run.stopped.Load() || ctx.Err() != nil {
				run.cancel(d)
				return nil
			}
			p.processOne(ctx, d, run, progress)
			return nil
		})
	}
	_ = g.Wait()

	p.logger.Debug().
		Str("func", "entityPullProcessor.ProcessBatch").
		Str("kind", p.strategy.kind.String()).
		Int("new", status.NewCount).
		Int("updated", status.UpdatedCount).
		Int("up_to_date", len(status.UpToDate)).
		Int("failed_download", len(status.FailedToDownload)).
		Int("failed_process", len(status.FailedToProcess)).
		Int("cancelled", len(status.Cancelled)).
		Str("stop_reason", status.StopReason.String()).
		Msg("pull batch processed")

	if err := ctx.Err(); err != nil {
		return status, err
	}
	return status, nil
}

func (p *entityPullProcessor) processOne(ctx context.Context, d models.EntityDescriptor, run *pullRun, progress ProgressFunc) {
	log := p.logger.With().
		Str("kind", d.Kind.String()).
		Str("guid", d.GUID).
		Int64("usn", d.ExpectedUSN).
		Logger()

	local, err := p.localStore.FindByGUID(ctx, d.Kind, d.GUID)
	if err != nil && !errors.Is(err, store.ErrEntityNotFound) {
		run.failProcess(d, fmt.Errorf("find local %s %s: %w", d.Kind, d.GUID, err))
		return
	}
	if errors.Is(err, store.ErrEntityNotFound) {
		local = nil
	}

	if local != nil && !local.Meta().Dirty && d.ExpectedUSN > 0 && local.Meta().USN == d.ExpectedUSN {
		run.upToDate(d)
		progress(d.GUID, d.ExpectedUSN)
		return
	}

	var (
		isNew      = local == nil
		isConflict = local != nil && local.Meta().Dirty
		clones     []models.Entity
	)

	if isConflict {
		clones, err = p.strategy.clone(ctx, local, p.ids.Generate, p.localStore)
		if err != nil {
			run.failProcess(d, fmt.Errorf("resolve conflict of %s %s: %w", d.Kind, d.GUID, err))
			return
		}
	}

	client, err := p.resolver.ClientFor(ctx, d.Scope)
	if err != nil {
		run.failDownload(d, fmt.Errorf("resolve client for %s: %w", d.Scope, err))
		return
	}

	remote, err := client.DownloadFullPayload(ctx, d.Kind, d.GUID)
	if err != nil {
		switch Classify(err) {
		case models.ErrorRateLimited:
			seconds, _ := adapter.RateLimitSeconds(err)
			run.stop(d, models.StopReason{Kind: models.StopRateLimited, RateLimitSeconds: seconds})
			log.Warn().Err(err).Str("func", "entityPullProcessor.processOne").Msg("rate limited, stopping pull run")
		case models.ErrorAuthExpired:
			run.stop(d, models.StopReason{Kind: models.StopAuthExpired})
			log.Warn().Err(err).Str("func", "entityPullProcessor.processOne").Msg("auth expired, stopping pull run")
		default:
			run.failDownload(d, fmt.Errorf("download %s %s: %w", d.Kind, d.GUID, err))
		}
		return
	}

	merged := p.merge(d, local, remote)

	// the local copies and the remote version land together or not at all
	if err = p.localStore.PutAll(ctx, append(clones, merged)...); err != nil {
		run.failProcess(d, fmt.Errorf("persist %s %s: %w", d.Kind, d.GUID, err))
		return
	}

	if isConflict {
		log.Info().Str("func", "entityPullProcessor.processOne").Int("clones", len(clones)).Msg("conflict resolved with local copy")
	}

	run.done(d.GUID, merged.Meta().USN, isNew)
	progress(d.GUID, merged.Meta().USN)
}

// merge stamps the local identity and sync metadata on the downloaded
// entity. The remote version always wins the guid.
func (p *entityPullProcessor) merge(d models.EntityDescriptor, local, remote models.Entity) models.Entity {
	merged := remote.Clone()
	m := merged.Meta()

	m.GUID = d.GUID
	if m.USN == 0 {
		m.USN = d.ExpectedUSN
	}
	m.Dirty = false
	m.LinkedNotebookGUID = d.Scope.LinkedNotebookGUID

	if local != nil {
		m.LocalID = local.Meta().LocalID
	} else {
		m.LocalID = p.ids.Generate()
	}

	return merged
}

// pullRun is the mutable state of one ProcessBatch call. mu guards the
// status and the claimed set.
type pullRun struct {
	mu      sync.Mutex
	status  *models.AggregateStatus
	claimed map[string]struct{}
	stopped atomic.Bool
}

func (r *pullRun) claim(guid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.claimed[guid]; ok {
		return false
	}
	r.claimed[guid] = struct{}{}
	return true
}

func (r *pullRun) cancel(d models.EntityDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.Cancelled[d.GUID] = d.ExpectedUSN
}

// stop raises the stop flag and records the item that triggered it as
// cancelled so it is resubmitted with the rest. The first reason wins.
func (r *pullRun) stop(d models.EntityDescriptor, reason models.StopReason) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopped.Store(true)
	if r.status.StopReason.Kind == models.StopNone {
		r.status.StopReason = reason
	}
	r.status.Cancelled[d.GUID] = d.ExpectedUSN
}

func (r *pullRun) upToDate(d models.EntityDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.UpToDate[d.GUID] = d.ExpectedUSN
}

func (r *pullRun) done(guid string, usn int64, isNew bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.Processed[guid] = usn
	if isNew {
		r.status.NewCount++
	} else {
		r.status.UpdatedCount++
	}
}

func (r *pullRun) failDownload(d models.EntityDescriptor, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.FailedToDownload = append(r.status.FailedToDownload, models.FailedItem{Descriptor: d, Err: err})
}

func (r *pullRun) failProcess(d models.EntityDescriptor, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.FailedToProcess = append(r.status.FailedToProcess, models.FailedItem{Descriptor: d, Err: err})
}
