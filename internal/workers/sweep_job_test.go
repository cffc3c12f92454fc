package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/avbelov/gamedeck/internal/handoff"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/mock"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/models"
)

func TestSweepJob_DiscardsStaleTokenAndPrunesPeers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailbox := mock.NewMockMailboxRepository(ctrl)
	peers := mock.NewMockPeerRepository(ctrl)

	channel := handoff.NewChannel(mailbox, 15*time.Second, logger.Nop())
	job := NewSweepJob(channel, peers, 10*time.Millisecond, 30*time.Second, logger.Nop())

	stale := models.PendingSwitch{AccountID: "acc-1", RequestedAt: time.Now().Add(-time.Minute)}
	var cleared atomic.Int64

	mailbox.EXPECT().Get(gomock.Any()).Return(stale, nil).MinTimes(1)
	mailbox.EXPECT().Clear(gomock.Any()).DoAndReturn(func(context.Context) error {
		cleared.Add(1)
		return nil
	}).MinTimes(1)
	peers.EXPECT().Prune(gomock.Any(), gomock.Any()).Return(int64(1), nil).MinTimes(1)

	job.Run(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for cleared.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()

	if cleared.Load() == 0 {
		t.Fatal("expected the stale handoff token to be cleared")
	}
}

func TestSweepJob_LeavesFreshTokenAlone(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailbox := mock.NewMockMailboxRepository(ctrl)
	peers := mock.NewMockPeerRepository(ctrl)

	channel := handoff.NewChannel(mailbox, 15*time.Second, logger.Nop())
	job := NewSweepJob(channel, peers, 10*time.Millisecond, 30*time.Second, logger.Nop())

	fresh := models.PendingSwitch{AccountID: "acc-1", RequestedAt: time.Now()}
	var pruneCalls atomic.Int64

	// No Clear expected: the fresh token belongs to its executing window.
	mailbox.EXPECT().Get(gomock.Any()).Return(fresh, nil).MinTimes(1)
	peers.EXPECT().Prune(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		pruneCalls.Add(1)
		return 0, nil
	}).MinTimes(1)

	job.Run(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for pruneCalls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()

	if pruneCalls.Load() < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", pruneCalls.Load())
	}
}

func TestSweepJob_EmptyMailboxIsQuiet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailbox := mock.NewMockMailboxRepository(ctrl)
	peers := mock.NewMockPeerRepository(ctrl)

	channel := handoff.NewChannel(mailbox, 15*time.Second, logger.Nop())
	job := NewSweepJob(channel, peers, 10*time.Millisecond, 30*time.Second, logger.Nop())

	var pruneCalls atomic.Int64

	mailbox.EXPECT().Get(gomock.Any()).Return(models.PendingSwitch{}, store.ErrMailboxEmpty).MinTimes(1)
	peers.EXPECT().Prune(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) (int64, error) {
		pruneCalls.Add(1)
		return 0, nil
	}).MinTimes(1)

	job.Run(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for pruneCalls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()
}
