package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avbelov/gamedeck/internal/service"
	"github.com/avbelov/gamedeck/internal/session"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authModel is the Bubble Tea model of the auth window: an identifier
// and password form that lands as an ordinary login, with a register
// mode and a guest shortcut. The identifier arrives pre-filled when the
// window was opened for a known but logged-out account.
type authModel struct {
	ctx     context.Context
	machine *session.Machine
	auth    *service.AuthService

	mode       authMode
	inputs     []textinput.Model
	focus      int
	stay       bool
	submitting bool
	errMsg     string
}

func newAuthModel(ctx context.Context, machine *session.Machine, auth *service.AuthService, prefill string) *authModel {
	identifierInput := textinput.New()
	identifierInput.Placeholder = "email, username or phone"
	identifierInput.CharLimit = 64
	identifierInput.Width = 40
	identifierInput.SetValue(prefill)

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	m := &authModel{
		ctx:     ctx,
		machine: machine,
		auth:    auth,
		inputs:  []textinput.Model{identifierInput, passwordInput},
	}
	if prefill == "" {
		m.inputs[0].Focus()
	} else {
		// The account is known; jump straight to the password.
		m.focus = 1
		m.inputs[1].Focus()
	}
	return m
}

// Init implements [tea.Model].
func (m *authModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *authModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, tea.Quit

	case refreshDoneMsg:
		return m, nil

	case tea.FocusMsg:
		return m, m.cmdRefresh()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		// "q" belongs to the text inputs here; only ctrl+c and esc close.
		case keyMsg.String() == "ctrl+c", key.Matches(keyMsg, keys.esc):
			return m, tea.Quit

		case key.Matches(keyMsg, keys.tab):
			m.focusNext()
			return m, nil

		case key.Matches(keyMsg, keys.register):
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errMsg = ""
			return m, nil

		case key.Matches(keyMsg, keys.stay):
			m.stay = !m.stay
			return m, nil

		case key.Matches(keyMsg, keys.guest):
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			return m, m.cmdGuest()

		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}

			identifier := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if identifier == "" || password == "" {
				m.errMsg = "identifier and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			if m.mode == modeRegister {
				return m, m.cmdRegister(identifier, password)
			}
			return m, m.cmdLogin(identifier, password)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *authModel) View() string {
	title := "SIGN IN"
	if m.mode == modeRegister {
		title = "REGISTER"
	}

	checkbox := "[ ]"
	if m.stay {
		checkbox = "[x]"
	}

	var b strings.Builder
	b.WriteString("identifier │ " + m.inputs[0].View() + "\n")
	b.WriteString("password   │ " + m.inputs[1].View() + "\n")
	b.WriteString(checkbox + " stay logged in after switching away\n")

	if m.submitting {
		b.WriteString("\nworking...")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"),
		"enter: submit │ tab: next field │ ctrl+s: stay logged in │ ctrl+n: login/register │ ctrl+g: guest │ esc: close")
}

func (m *authModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *authModel) cmdLogin(identifier, password string) tea.Cmd {
	stay := m.stay
	return func() tea.Msg {
		account, err := m.machine.Login(m.ctx, identifier, password, stay)
		return loginDoneMsg{account: account, err: err}
	}
}

// cmdRegister creates the account, then lands it as an ordinary login.
func (m *authModel) cmdRegister(identifier, password string) tea.Cmd {
	stay := m.stay
	return func() tea.Msg {
		input := service.RegisterInput{Password: password, StayLoggedIn: stay}
		switch {
		case strings.Contains(identifier, "@"):
			input.Email = identifier
		case strings.IndexFunc(identifier, func(r rune) bool { return r < '0' || r > '9' }) == -1:
			input.Phone = identifier
		default:
			input.Username = identifier
		}

		if _, err := m.auth.Register(m.ctx, input); err != nil {
			return loginDoneMsg{err: err}
		}
		account, err := m.machine.Login(m.ctx, identifier, password, stay)
		return loginDoneMsg{account: account, err: err}
	}
}

func (m *authModel) cmdGuest() tea.Cmd {
	return func() tea.Msg {
		account, err := m.machine.LoginGuest(m.ctx)
		return loginDoneMsg{account: account, err: err}
	}
}

func (m *authModel) cmdRefresh() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.machine.Refresh(m.ctx)}
	}
}
