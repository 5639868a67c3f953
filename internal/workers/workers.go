package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil workers are skipped, so optional jobs can be
// passed unconditionally.
func NewWorkers(ws ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// Len reports how many workers are registered.
func (w *Workers) Len() int {
	return len(w.workers)
}
