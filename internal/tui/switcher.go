package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avbelov/gamedeck/internal/session"
	"github.com/avbelov/gamedeck/models"
)

// switcherModel is the Bubble Tea model of the account-switcher window.
// The switcher is the executing window of the handoff protocol: it
// consumes the pending switch request before anything else.
type switcherModel struct {
	ctx     context.Context
	machine *session.Machine

	accounts  []models.Account
	idx       int
	loading   bool
	switching bool
	spinner   spinner.Model
	status    string
	lastErr   error
}

func newSwitcherModel(ctx context.Context, machine *session.Machine) *switcherModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return &switcherModel{ctx: ctx, machine: machine, spinner: s, loading: true}
}

// Init implements [tea.Model]. The handoff mailbox is drained before the
// listing loads.
func (m *switcherModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdRunPending(), m.cmdLoadListing())
}

// Update implements [tea.Model].
func (m *switcherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionEventMsg:
		if msg.event.Name == models.EventSwitchStart {
			m.switching = true
			return m, nil
		}
		m.switching = false
		return m, m.cmdLoadListing()

	case listingLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.accounts = msg.accounts
		if m.idx >= len(m.accounts) {
			m.idx = max(len(m.accounts)-1, 0)
		}
		return m, nil

	case switchDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			if m.machine.Snapshot().State == session.SwitchInFlight {
				// A failed write parks the machine in flight: hold the
				// loading surface with the failure shown until a retry.
				return m, nil
			}
			// The request never started a switch; back to the listing.
			m.switching = false
			return m, m.cmdLoadListing()
		}
		m.switching = false
		// The switch landed; this transient surface is done.
		return m, tea.Quit

	case tea.FocusMsg:
		return m, m.cmdPollStore()

	case removedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.status = "account removed"
		return m, m.cmdLoadListing()

	case copiedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.status = "identifier copied"
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *switcherModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit), key.Matches(msg, keys.esc):
		return m, tea.Quit

	case key.Matches(msg, keys.up):
		if m.idx > 0 {
			m.idx--
		}

	case key.Matches(msg, keys.down):
		if m.idx < len(m.accounts)-1 {
			m.idx++
		}

	case key.Matches(msg, keys.enter):
		if account, ok := m.current(); ok && !m.switching {
			m.switching = true
			m.status = ""
			return m, m.cmdSwitch(account.ID)
		}

	case key.Matches(msg, keys.delete):
		if account, ok := m.current(); ok {
			return m, m.cmdRemove(account.ID)
		}

	case key.Matches(msg, keys.copy):
		if account, ok := m.current(); ok {
			return m, m.cmdCopy(account)
		}
	}

	return m, nil
}

// View implements [tea.Model].
func (m *switcherModel) View() string {
	if m.switching || m.machine.Snapshot().State == session.SwitchInFlight {
		overlay := "switching account " + m.spinner.View()
		if m.lastErr != nil {
			overlay += "\n" + errorStyle.Render("error: "+m.lastErr.Error())
		}
		return overlayBoxStyle.Render(overlay)
	}

	var b strings.Builder
	if m.loading {
		b.WriteString("loading " + m.spinner.View())
	} else if len(m.accounts) == 0 {
		b.WriteString("no accounts")
	} else {
		snapshot := m.machine.Snapshot()
		for i, account := range m.accounts {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			marker := " "
			if account.IsLoggedIn {
				marker = "*"
			}
			row := fmt.Sprintf("%s%s %s", cursor, marker, fitText(account.DisplayName(), 40))
			if account.ID == snapshot.Current.ID {
				row = currentRowStyle.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	if m.lastErr != nil {
		b.WriteString("\n" + errorStyle.Render("error: "+m.lastErr.Error()))
	}

	return renderPage("SWITCH ACCOUNT", strings.TrimRight(b.String(), "\n"),
		"enter: switch │ d: remove │ c: copy │ ↑/↓: navigate │ q: close")
}

func (m *switcherModel) current() (models.Account, bool) {
	if len(m.accounts) == 0 || m.idx < 0 || m.idx >= len(m.accounts) {
		return models.Account{}, false
	}
	return m.accounts[m.idx], true
}

func (m *switcherModel) cmdRunPending() tea.Cmd {
	return func() tea.Msg {
		consumed, err := m.machine.RunPendingSwitch(m.ctx)
		if err != nil {
			return switchDoneMsg{err: err}
		}
		if consumed {
			// The parked switch was this window's whole job; close.
			return switchDoneMsg{}
		}
		return nil
	}
}

func (m *switcherModel) cmdLoadListing() tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.machine.Listing(m.ctx)
		return listingLoadedMsg{accounts: accounts, err: err}
	}
}

// cmdPollStore re-reads the store on focus so state changed by other
// windows while this one was backgrounded is picked up.
func (m *switcherModel) cmdPollStore() tea.Cmd {
	return func() tea.Msg {
		if err := m.machine.Refresh(m.ctx); err != nil {
			return listingLoadedMsg{err: err}
		}
		accounts, err := m.machine.Listing(m.ctx)
		return listingLoadedMsg{accounts: accounts, err: err}
	}
}

// cmdSwitch requests the switch and, on the fast path, executes it right
// here: this window is the executing window, so the parked request is
// consumed immediately.
func (m *switcherModel) cmdSwitch(accountID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.machine.RequestSwitch(m.ctx, accountID); err != nil {
			if errors.Is(err, session.ErrAlreadyActive) {
				return switchDoneMsg{}
			}
			return switchDoneMsg{err: err}
		}
		_, err := m.machine.RunPendingSwitch(m.ctx)
		return switchDoneMsg{err: err}
	}
}

func (m *switcherModel) cmdRemove(accountID string) tea.Cmd {
	return func() tea.Msg {
		return removedMsg{err: m.machine.Remove(m.ctx, accountID)}
	}
}

func (m *switcherModel) cmdCopy(account models.Account) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(account.DisplayName()); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}
