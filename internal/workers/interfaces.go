// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns once it is running; the work itself
// happens on goroutines owned by the worker and ends when ctx is cancelled
// or Stop is called. Stop blocks until the worker has exited.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
