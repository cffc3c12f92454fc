package bus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/mock"
	"github.com/avbelov/gamedeck/models"
)

func testBusConfig() config.Bus {
	return config.Bus{
		BindHost:          "127.0.0.1",
		PublishTimeout:    2 * time.Second,
		PeerTTL:           30 * time.Second,
		HeartbeatInterval: time.Minute,
	}
}

func TestBus_PublishReachesPeer(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mock.NewMockPeerRepository(ctrl)
	ctx := context.Background()

	sender := NewBus("win-a", models.WindowMain, peers, testBusConfig(), logger.Nop())
	receiver := NewBus("win-b", models.WindowSwitcher, peers, testBusConfig(), logger.Nop())

	peers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	peers.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	require.NoError(t, receiver.Start(ctx))
	defer receiver.Stop(ctx)
	require.NoError(t, sender.Start(ctx))
	defer sender.Stop(ctx)

	var (
		mu  sync.Mutex
		got []models.Event
	)
	receiver.Subscribe(func(event models.Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, event)
	})

	peers.EXPECT().ListLive(gomock.Any(), gomock.Any()).Return([]models.Peer{
		{WindowID: "win-a", Kind: models.WindowMain, Addr: sender.Addr(), LastSeen: time.Now()},
		{WindowID: "win-b", Kind: models.WindowSwitcher, Addr: receiver.Addr(), LastSeen: time.Now()},
	}, nil)

	err := sender.Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-1"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, models.EventUserChanged, got[0].Name)
	assert.Equal(t, "acc-1", got[0].AccountID)
	assert.Equal(t, "win-a", got[0].WindowID)
	assert.False(t, got[0].At.IsZero())
}

func TestBus_PublishSkipsSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mock.NewMockPeerRepository(ctrl)
	ctx := context.Background()

	bus := NewBus("win-a", models.WindowMain, peers, testBusConfig(), logger.Nop())

	peers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	peers.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	require.NoError(t, bus.Start(ctx))
	defer bus.Stop(ctx)

	delivered := false
	bus.Subscribe(func(models.Event) { delivered = true })

	// Only this window is live; nothing should be delivered back to it.
	peers.EXPECT().ListLive(gomock.Any(), gomock.Any()).Return([]models.Peer{
		{WindowID: "win-a", Kind: models.WindowMain, Addr: bus.Addr(), LastSeen: time.Now()},
	}, nil)

	require.NoError(t, bus.Publish(ctx, models.Event{Name: models.EventSwitchStart}))
	assert.False(t, delivered)
}

func TestBus_PublishToleratesDeadPeer(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mock.NewMockPeerRepository(ctrl)
	ctx := context.Background()

	bus := NewBus("win-a", models.WindowMain, peers, testBusConfig(), logger.Nop())

	peers.EXPECT().ListLive(gomock.Any(), gomock.Any()).Return([]models.Peer{
		{WindowID: "win-dead", Kind: models.WindowMain, Addr: "127.0.0.1:1", LastSeen: time.Now()},
	}, nil)

	// Delivery failure to a vanished peer must not fail the publish.
	assert.NoError(t, bus.Publish(ctx, models.Event{Name: models.EventUserChanged}))
}

func TestBus_HandlePostEventMalformed(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mock.NewMockPeerRepository(ctrl)

	bus := NewBus("win-a", models.WindowMain, peers, testBusConfig(), logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	bus.handlePostEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBus_StopDeregistersWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	peers := mock.NewMockPeerRepository(ctrl)
	ctx := context.Background()

	bus := NewBus("win-a", models.WindowMain, peers, testBusConfig(), logger.Nop())

	peers.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	require.NoError(t, bus.Start(ctx))

	peers.EXPECT().Delete(gomock.Any(), "win-a").Return(nil)
	require.NoError(t, bus.Stop(ctx))
}
