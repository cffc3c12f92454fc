// Package bus fans session events out to every open window of the shell.
//
// Each window runs a small HTTP listener on an ephemeral loopback port and
// registers its address in the shared peer table. Publishing an event POSTs
// it to every live peer. Delivery is best effort: a window that was closed,
// wedged, or mid-restart simply misses the event, which is why windows
// also re-read session state when they regain focus.
package bus

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-resty/resty/v2"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/models"
)

// Handler consumes one event delivered to this window.
type Handler func(event models.Event)

// Bus is one window's endpoint on the cross-window event fabric.
type Bus struct {
	windowID string
	kind     models.WindowKind
	peers    store.PeerRepository
	cfg      config.Bus
	client   *resty.Client
	logger   *logger.Logger

	server *http.Server
	addr   string

	handlersMu sync.RWMutex
	handlers   []Handler

	cancel  context.CancelFunc
	stopped sync.WaitGroup

	now func() time.Time
}

// NewBus creates the event-bus endpoint for one window. Start must be
// called before Publish or incoming delivery works.
func NewBus(windowID string, kind models.WindowKind, peers store.PeerRepository, cfg config.Bus, logger *logger.Logger) *Bus {
	return &Bus{
		windowID: windowID,
		kind:     kind,
		peers:    peers,
		cfg:      cfg,
		client:   resty.New().SetTimeout(cfg.PublishTimeout),
		logger:   logger,
		now:      time.Now,
	}
}

// Subscribe registers a handler for events delivered to this window.
// Handlers run on the listener goroutine and must not block.
func (b *Bus) Subscribe(h Handler) {
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Addr returns the loopback address the listener is bound to. Empty
// before Start.
func (b *Bus) Addr() string {
	return b.addr
}

// Start binds the listener on an ephemeral loopback port, registers this
// window in the peer table, and begins heartbeating.
func (b *Bus) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(b.cfg.BindHost, "0"))
	if err != nil {
		return fmt.Errorf("error binding event listener: %w", err)
	}
	b.addr = listener.Addr().String()

	router := chi.NewRouter()
	router.Post("/events", b.handlePostEvent)
	b.server = &http.Server{Handler: router}

	if err := b.register(ctx); err != nil {
		listener.Close()
		return err
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	b.cancel = cancel

	b.stopped.Add(2)
	go func() {
		defer b.stopped.Done()
		if err := b.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			b.logger.Error().Err(err).Str("func", "Start").Msg("event listener stopped unexpectedly")
		}
	}()
	go b.heartbeatLoop(loopCtx)

	b.logger.Info().Str("func", "Start").
		Str("addr", b.addr).
		Str("window_kind", string(b.kind)).
		Msg("event bus started")
	return nil
}

// Stop shuts the listener down, stops heartbeating, and removes this
// window from the peer table.
func (b *Bus) Stop(ctx context.Context) error {
	if b.cancel != nil {
		b.cancel()
	}
	if b.server != nil {
		if err := b.server.Shutdown(ctx); err != nil {
			b.logger.Error().Err(err).Str("func", "Stop").Msg("error shutting down event listener")
		}
	}
	b.stopped.Wait()

	if err := b.peers.Delete(ctx, b.windowID); err != nil {
		return fmt.Errorf("error deregistering window: %w", err)
	}

	b.logger.Info().Str("func", "Stop").Msg("event bus stopped")
	return nil
}

// Publish stamps the event with this window's identity and fans it out
// to every live peer except the sender. Per-peer delivery failures are
// logged, not returned: a missed delivery is recovered by the receiver's
// focus-time refresh.
func (b *Bus) Publish(ctx context.Context, event models.Event) error {
	log := logger.FromContext(ctx)

	event.WindowID = b.windowID
	if event.At.IsZero() {
		event.At = b.now()
	}

	live, err := b.peers.ListLive(ctx, b.now().Add(-b.cfg.PeerTTL))
	if err != nil {
		log.Error().Err(err).Str("func", "Publish").Msg("error listing live peers")
		return fmt.Errorf("error listing live peers: %w", err)
	}

	var wg sync.WaitGroup
	for _, peer := range live {
		if peer.WindowID == b.windowID {
			continue
		}

		wg.Add(1)
		go func(peer models.Peer) {
			defer wg.Done()
			url := fmt.Sprintf("http://%s/events", peer.Addr)
			resp, err := b.client.R().SetContext(ctx).SetBody(event).Post(url)
			if err != nil {
				log.Warn().Err(err).Str("func", "Publish").
					Str("peer", peer.WindowID).
					Str("event", event.Name).
					Msg("event delivery failed")
				return
			}
			if resp.StatusCode() >= http.StatusBadRequest {
				log.Warn().Str("func", "Publish").
					Str("peer", peer.WindowID).
					Int("status", resp.StatusCode()).
					Msg("event delivery rejected")
			}
		}(peer)
	}
	wg.Wait()

	log.Debug().Str("func", "Publish").
		Str("event", event.Name).
		Int("peers", len(live)).
		Msg("event published")
	return nil
}

func (b *Bus) register(ctx context.Context) error {
	peer := models.Peer{
		WindowID: b.windowID,
		Kind:     b.kind,
		Addr:     b.addr,
		LastSeen: b.now(),
	}
	if err := b.peers.Upsert(ctx, peer); err != nil {
		return fmt.Errorf("error registering window on event bus: %w", err)
	}
	return nil
}

func (b *Bus) heartbeatLoop(ctx context.Context) {
	defer b.stopped.Done()

	ticker := time.NewTicker(b.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.register(ctx); err != nil {
				b.logger.Error().Err(err).Str("func", "heartbeatLoop").Msg("heartbeat failed")
			}
		}
	}
}
