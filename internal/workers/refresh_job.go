package workers

import (
	"context"
	"sync"
	"time"

	"github.com/avbelov/gamedeck/internal/logger"
)

// Refresher re-reads durable state into a cached view. Implemented by
// session.Machine.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// refreshJob periodically re-syncs the window's session view with the
// store. Bus events are only hints, so this ticker is the backstop for
// missed deliveries.
type refreshJob struct {
	refresher Refresher
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshJob creates a refreshJob on the given interval. The job is
// idle until Run is called. A zero or negative interval defaults to 30
// seconds.
func NewRefreshJob(refresher Refresher, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &refreshJob{refresher: refresher, interval: interval, logger: logger}
}

// Run implements Worker.
func (j *refreshJob) Run(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.refresher.Refresh(jobCtx); err != nil {
					j.logger.Warn().Err(err).Str("func", "Run").Msg("background refresh failed")
				}
			}
		}
	}()
}

// Stop implements Worker.
func (j *refreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
