package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avbelov/gamedeck/internal/session"
	"github.com/avbelov/gamedeck/internal/window"
	"github.com/avbelov/gamedeck/models"
)

// statusModel is the Bubble Tea model of the main window: who is signed
// in, with a loading overlay while a switch is in flight anywhere in the
// shell.
type statusModel struct {
	ctx     context.Context
	machine *session.Machine
	windows window.Coordinator

	spinner spinner.Model
	lastErr error
}

func newStatusModel(ctx context.Context, machine *session.Machine, windows window.Coordinator) *statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &statusModel{ctx: ctx, machine: machine, windows: windows, spinner: s}
}

// Init implements [tea.Model].
func (m *statusModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRefresh())
}

// Update implements [tea.Model].
func (m *statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionEventMsg:
		// The machine already applied the event; receiving the message
		// re-renders from the fresh snapshot.
		return m, nil

	case refreshDoneMsg:
		m.lastErr = msg.err
		return m, nil

	case tea.FocusMsg:
		// Regaining focus re-reads the store: another window may have
		// changed the session while this one was backgrounded.
		return m, m.cmdRefresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit

		case key.Matches(msg, keys.switcher):
			return m, m.cmdOpenSwitcher()

		case key.Matches(msg, keys.logout):
			return m, m.cmdLogout()

		case key.Matches(msg, keys.refresh):
			return m, m.cmdRefresh()
		}
	}

	return m, nil
}

// View implements [tea.Model].
func (m *statusModel) View() string {
	snapshot := m.machine.Snapshot()

	if snapshot.State == session.SwitchInFlight {
		return overlayBoxStyle.Render("switching account " + m.spinner.View())
	}

	var b strings.Builder
	switch snapshot.State {
	case session.Active:
		b.WriteString("signed in as " + currentRowStyle.Render(snapshot.Current.DisplayName()))
		if snapshot.Current.IsGuest {
			b.WriteString(" (guest)")
		}
	case session.SwitchPending:
		b.WriteString("waiting for switch to finish " + m.spinner.View())
	default:
		b.WriteString("not signed in")
	}

	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.lastErr.Error()))
	}

	return renderPage("GAMEDECK", b.String(),
		"s: switch account │ l: log out │ r: refresh │ q: quit")
}

func (m *statusModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.machine.Refresh(m.ctx)}
	}
}

func (m *statusModel) cmdOpenSwitcher() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.windows.Open(m.ctx, models.WindowSwitcher, window.Params{})}
	}
}

func (m *statusModel) cmdLogout() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.machine.Logout(m.ctx)}
	}
}
