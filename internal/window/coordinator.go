// Package window opens and tracks the shell's auxiliary windows. Every
// window of the shell is a separate OS process of the same binary,
// selected by the -window flag, so "opening a window" means spawning a
// detached child process.
package window

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/models"
)

//go:generate mockgen -source=coordinator.go -destination=../mock/window_mock.go -package=mock

// Params carries per-open window parameters.
type Params struct {
	// Prefill is the identifier pre-filled into the auth window's form.
	Prefill string
}

// Coordinator manages the shell's windows. All methods are fire-and-forget:
// callers never wait for the window to appear, and a failure to open a
// window never corrupts session state.
type Coordinator interface {
	// Open opens the window of the given kind, or focuses it when one is
	// already tracked.
	Open(ctx context.Context, kind models.WindowKind, params Params) error

	// Focus brings the window of the given kind to the front.
	Focus(ctx context.Context, kind models.WindowKind) error

	// Close closes the window of the given kind.
	Close(ctx context.Context, kind models.WindowKind) error

	// Resize resizes the window of the given kind.
	Resize(ctx context.Context, kind models.WindowKind, width, height int) error

	// Center centers the window of the given kind on its display.
	Center(ctx context.Context, kind models.WindowKind) error
}

// ProcessCoordinator opens windows by spawning child processes of the
// shell binary and tracks them by kind. One window per kind.
type ProcessCoordinator struct {
	binaryPath string
	logger     *logger.Logger

	mu       sync.Mutex
	children map[models.WindowKind]*os.Process
}

// NewProcessCoordinator creates a coordinator spawning the given binary.
// An empty binaryPath falls back to the current executable.
func NewProcessCoordinator(binaryPath string, logger *logger.Logger) (*ProcessCoordinator, error) {
	if binaryPath == "" {
		executable, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("error resolving shell binary path: %w", err)
		}
		binaryPath = executable
	}

	return &ProcessCoordinator{
		binaryPath: binaryPath,
		logger:     logger,
		children:   make(map[models.WindowKind]*os.Process),
	}, nil
}

// Open implements Coordinator. Opening a kind that is already tracked
// focuses the existing window instead of stacking a second one.
func (c *ProcessCoordinator) Open(ctx context.Context, kind models.WindowKind, params Params) error {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	if child, ok := c.children[kind]; ok && processAlive(child) {
		c.mu.Unlock()
		return c.Focus(ctx, kind)
	}
	c.mu.Unlock()

	args := []string{"-window", string(kind)}
	if params.Prefill != "" {
		args = append(args, "-prefill", params.Prefill)
	}

	cmd := exec.Command(c.binaryPath, args...)
	if err := cmd.Start(); err != nil {
		log.Error().Err(err).Str("func", "Open").
			Str("window_kind", string(kind)).
			Msg("error opening window")
		return fmt.Errorf("error opening %s window: %w", kind, err)
	}

	c.mu.Lock()
	c.children[kind] = cmd.Process
	c.mu.Unlock()

	// Reap the child in the background so it never lingers as a zombie.
	go func() {
		_ = cmd.Wait()
		c.mu.Lock()
		if c.children[kind] == cmd.Process {
			delete(c.children, kind)
		}
		c.mu.Unlock()
	}()

	log.Info().Str("func", "Open").
		Str("window_kind", string(kind)).
		Int("pid", cmd.Process.Pid).
		Msg("window opened")
	return nil
}

// Focus implements Coordinator. Terminal windows cannot be raised from
// here; an untracked kind is opened instead.
func (c *ProcessCoordinator) Focus(ctx context.Context, kind models.WindowKind) error {
	c.mu.Lock()
	child, ok := c.children[kind]
	c.mu.Unlock()

	if !ok || !processAlive(child) {
		return c.Open(ctx, kind, Params{})
	}

	logger.FromContext(ctx).Debug().Str("func", "Focus").
		Str("window_kind", string(kind)).
		Msg("window already open")
	return nil
}

// Close implements Coordinator. Closing an untracked kind is a no-op.
func (c *ProcessCoordinator) Close(ctx context.Context, kind models.WindowKind) error {
	c.mu.Lock()
	child, ok := c.children[kind]
	delete(c.children, kind)
	c.mu.Unlock()

	if !ok {
		return nil
	}

	if err := child.Signal(syscall.SIGTERM); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "Close").
			Str("window_kind", string(kind)).
			Msg("error closing window")
	}
	return nil
}

// Resize implements Coordinator. Terminal surfaces size themselves, so
// this only records the request.
func (c *ProcessCoordinator) Resize(ctx context.Context, kind models.WindowKind, width, height int) error {
	logger.FromContext(ctx).Debug().Str("func", "Resize").
		Str("window_kind", string(kind)).
		Int("width", width).
		Int("height", height).
		Msg("resize requested")
	return nil
}

// Center implements Coordinator. Terminal surfaces place themselves, so
// this only records the request.
func (c *ProcessCoordinator) Center(ctx context.Context, kind models.WindowKind) error {
	logger.FromContext(ctx).Debug().Str("func", "Center").
		Str("window_kind", string(kind)).
		Msg("center requested")
	return nil
}

func processAlive(p *os.Process) bool {
	return p.Signal(syscall.Signal(0)) == nil
}

// NopCoordinator ignores all window requests. Used by windows that must
// never spawn further windows and in tests.
type NopCoordinator struct{}

// Open implements Coordinator.
func (NopCoordinator) Open(context.Context, models.WindowKind, Params) error { return nil }

// Focus implements Coordinator.
func (NopCoordinator) Focus(context.Context, models.WindowKind) error { return nil }

// Close implements Coordinator.
func (NopCoordinator) Close(context.Context, models.WindowKind) error { return nil }

// Resize implements Coordinator.
func (NopCoordinator) Resize(context.Context, models.WindowKind, int, int) error { return nil }

// Center implements Coordinator.
func (NopCoordinator) Center(context.Context, models.WindowKind) error { return nil }
