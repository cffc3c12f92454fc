// Package app implements the window process runtime.
//
// It wires the store, session machine, event bus, background workers,
// and terminal surface into a single process lifecycle, one per open
// window of the shell.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/avbelov/gamedeck/internal/bus"
	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/handoff"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/service"
	"github.com/avbelov/gamedeck/internal/session"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/internal/tui"
	"github.com/avbelov/gamedeck/internal/window"
	"github.com/avbelov/gamedeck/internal/workers"
	"github.com/avbelov/gamedeck/models"
)

// App is one window process of the shell.
type App struct {
	windowID string
	kind     models.WindowKind
	prefill  string

	storages *store.Storages
	services *service.Services
	machine  *session.Machine
	eventBus *bus.Bus
	ui       *tui.TUI
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp wires one window process from its configuration. windowID
// identifies this process on the event bus and in logs.
func NewApp(windowID string, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	kind := cfg.Windows.Kind
	ctx := log.WithContext(context.Background())

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	services := service.NewServices(storages, log)
	channel := handoff.NewChannel(storages.Mailbox, cfg.App.StalenessBound, log)
	eventBus := bus.NewBus(windowID, kind, storages.Peers, cfg.Bus, log)

	// Only the main window spawns further windows; the auth window is a
	// leaf. The switcher still opens the auth window on the slow path.
	var coordinator window.Coordinator = window.NopCoordinator{}
	if kind == models.WindowMain || kind == models.WindowSwitcher {
		coordinator, err = window.NewProcessCoordinator(cfg.Windows.BinaryPath, log)
		if err != nil {
			return nil, fmt.Errorf("create window coordinator: %w", err)
		}
	}

	machine := session.NewMachine(storages.Accounts, services.Auth, channel, eventBus, coordinator, cfg.App, log)

	ui, err := tui.New(machine, services, coordinator, log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	// The sweep runs only in the main window; the work is idempotent,
	// one sweeper is enough. Every window re-syncs on its own ticker.
	jobs := []workers.Worker{
		workers.NewRefreshJob(machine, cfg.Workers.RefreshInterval, log),
	}
	if kind == models.WindowMain {
		jobs = append(jobs, workers.NewSweepJob(channel, storages.Peers, cfg.Workers.SweepInterval, cfg.Bus.PeerTTL, log))
	}

	return &App{
		windowID: windowID,
		kind:     kind,
		prefill:  cfg.Windows.Prefill,
		storages: storages,
		services: services,
		machine:  machine,
		eventBus: eventBus,
		ui:       ui,
		workers:  workers.NewWorkers(jobs...),
		logger:   log,
	}, nil
}

// Run starts the window process and blocks until its surface closes.
func (a *App) Run() error {
	ctx := a.logger.WithContext(context.Background())

	if err := a.eventBus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() {
		if err := a.eventBus.Stop(ctx); err != nil {
			a.logger.Error().Err(err).Msg("error stopping event bus")
		}
	}()

	a.eventBus.Subscribe(func(event models.Event) {
		go func() {
			a.machine.HandleEvent(ctx, event)
			a.ui.Deliver(event)
		}()
	})

	// The executing window drains the handoff mailbox before any other
	// startup work. A consumed switch means this window has done its job
	// and closes without ever showing the listing; a failed one falls
	// through to the UI so the loading surface and retry are visible.
	if a.kind == models.WindowSwitcher {
		consumed, err := a.machine.RunPendingSwitch(ctx)
		if err != nil {
			a.logger.Error().Err(err).Msg("error running pending switch")
		}
		if consumed && err == nil {
			return nil
		}
	}

	// The main window restores the previous session when a stored token
	// is still valid.
	if a.kind == models.WindowMain {
		if _, err := a.machine.Resume(ctx); err != nil && !errors.Is(err, session.ErrNotResumable) {
			a.logger.Warn().Err(err).Msg("error resuming session")
		}
	}

	a.workers.Run(ctx)
	defer a.workers.Stop()

	return a.ui.Run(ctx, a.kind, a.prefill)
}
