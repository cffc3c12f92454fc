package workers

import "context"

// Workers aggregates the background workers of one window process.
type Workers struct {
	workers []Worker
}

// NewWorkers creates the aggregate over the given workers.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops every worker in reverse start order and blocks until all
// background loops have exited.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
