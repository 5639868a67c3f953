// Package workers runs the background jobs of the client.
//
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers together.
package workers

import "context"

// Worker is a background job. Run starts it and returns; the job keeps
// running until ctx is cancelled or Stop is called. Stop blocks until the
// job has exited.
//
// Example implementation:
//
//	type ticker struct{ cancel context.CancelFunc }
//
//	func (t *ticker) Run(ctx context.Context) {
//	    ctx, t.cancel = context.WithCancel(ctx)
//	    go poll(ctx)
//	}
//
//	func (t *ticker) Stop() { t.cancel() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
