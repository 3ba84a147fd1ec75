package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// DefaultSyncInterval is used when the job is started without an interval.
const DefaultSyncInterval = 5 * time.Minute

type syncJob struct {
	session SessionRunner
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that runs session on a ticker. The job is idle
// until Start is called.
func NewSyncJob(session SessionRunner, log *logger.Logger) SyncJob {
	return &syncJob{session: session, logger: log}
}

// Start implements [SyncJob]. It stops any previously running job, then
// launches a goroutine that runs a session every interval. A session that
// moved data in either direction is followed by one immediate rerun so
// changes made meanwhile are picked up without waiting a full interval.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *syncJob) runOnce(ctx context.Context) {
	res, err := j.session.Run(ctx)
	if err != nil {
		j.logger.Debug().Err(err).Str("func", "syncJob.runOnce").Msg("scheduled sync failed")
		return
	}
	if !res.SomethingDownloaded && !res.SomethingUploaded {
		return
	}
	if ctx.Err() != nil {
		return
	}

	if _, err = j.session.Run(ctx); err != nil {
		j.logger.Debug().Err(err).Str("func", "syncJob.runOnce").Msg("follow-up sync failed")
	}
}

// Stop implements [SyncJob]. It cancels the goroutine's context and blocks
// until the goroutine has fully exited. Safe to call when the job is not
// running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
