// Package tui renders the shell's window surfaces in the terminal: the
// main status view, the account switcher, and the auth form. Each window
// process runs exactly one of them, selected by the -window flag.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/service"
	"github.com/avbelov/gamedeck/internal/session"
	"github.com/avbelov/gamedeck/internal/window"
	"github.com/avbelov/gamedeck/models"
)

var ErrUserQuit = errors.New("user quit")

// TUI owns the terminal surface of one window process.
type TUI struct {
	machine  *session.Machine
	services *service.Services
	windows  window.Coordinator

	mu      sync.Mutex
	program *tea.Program
}

// New creates the TUI over the session machine and services of this
// window.
func New(machine *session.Machine, services *service.Services, windows window.Coordinator, _ *logger.Logger) (*TUI, error) {
	return &TUI{machine: machine, services: services, windows: windows}, nil
}

// Run renders the surface for the window kind and blocks until the user
// closes it. prefill seeds the auth form's identifier field.
func (t *TUI) Run(ctx context.Context, kind models.WindowKind, prefill string) error {
	var model tea.Model
	switch kind {
	case models.WindowMain:
		model = newStatusModel(ctx, t.machine, t.windows)
	case models.WindowSwitcher:
		model = newSwitcherModel(ctx, t.machine)
	case models.WindowAuth:
		model = newAuthModel(ctx, t.machine, t.services.Auth, prefill)
	default:
		return fmt.Errorf("unknown window kind %q", kind)
	}

	// Focus reporting drives the poll-on-focus re-read in every surface.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	t.mu.Lock()
	t.program = p
	t.mu.Unlock()

	_, err := p.Run()
	return err
}

// Deliver pumps a bus event into the running surface. Safe to call
// before Run; the event is dropped then, which is fine because the
// surface re-reads the store when it starts.
func (t *TUI) Deliver(event models.Event) {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()

	if p != nil {
		p.Send(sessionEventMsg{event: event})
	}
}
