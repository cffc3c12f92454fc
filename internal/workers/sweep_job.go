package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avbelov/gamedeck/internal/handoff"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
)

// sweepJob periodically discards stale handoff tokens and prunes bus
// peers that stopped heartbeating. Any window may run it; the work is
// idempotent across processes.
type sweepJob struct {
	channel  *handoff.Channel
	peers    store.PeerRepository
	interval time.Duration
	peerTTL  time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweepJob creates a sweepJob on the given interval. The job is idle
// until Run is called. A zero or negative interval defaults to 10 seconds.
func NewSweepJob(channel *handoff.Channel, peers store.PeerRepository, interval, peerTTL time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &sweepJob{
		channel:  channel,
		peers:    peers,
		interval: interval,
		peerTTL:  peerTTL,
		logger:   logger,
	}
}

// Run implements Worker. It stops any previously running loop, then
// launches a background goroutine that sweeps every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *sweepJob) Run(ctx context.Context) {
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
				j.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements Worker. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the
// job is not running (no-op in that case).
func (j *sweepJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *sweepJob) sweep(ctx context.Context) {
	// Take discards a stale token as a side effect; a fresh token is
	// left untouched for its executing window.
	if _, err := j.channel.Take(ctx); err != nil &&
		!errors.Is(err, handoff.ErrEmpty) && !errors.Is(err, handoff.ErrStale) {
		j.logger.Warn().Err(err).Str("func", "sweep").Msg("error sweeping handoff mailbox")
	}

	pruned, err := j.peers.Prune(ctx, time.Now().Add(-j.peerTTL))
	if err != nil {
		j.logger.Warn().Err(err).Str("func", "sweep").Msg("error pruning dead peers")
		return
	}
	if pruned > 0 {
		j.logger.Debug().Str("func", "sweep").Int64("pruned", pruned).Msg("pruned dead peers")
	}
}
