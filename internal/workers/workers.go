package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates workers. They are started in order and stopped in
// reverse order.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

type syncWorker struct {
	job      service.SyncJob
	interval time.Duration
}

// NewSyncWorker adapts a sync job to [Worker].
func NewSyncWorker(job service.SyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval}
}

func (s *syncWorker) Run(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
}
