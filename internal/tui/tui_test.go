package tui

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/mock"
	"github.com/avbelov/gamedeck/internal/session"
)

type sessionMocks struct {
	accounts *mock.MockAccountRepository
	auth     *mock.MockAuthenticator
	handoff  *mock.MockHandoff
	bus      *mock.MockPublisher
	windows  *mock.MockCoordinator
}

// newTestSession builds a real session machine over mocks so the models
// are exercised against genuine state transitions. The settle delay is
// zero to keep the commands instant.
func newTestSession(t *testing.T) (*session.Machine, sessionMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := sessionMocks{
		accounts: mock.NewMockAccountRepository(ctrl),
		auth:     mock.NewMockAuthenticator(ctrl),
		handoff:  mock.NewMockHandoff(ctrl),
		bus:      mock.NewMockPublisher(ctrl),
		windows:  mock.NewMockCoordinator(ctrl),
	}

	cfg := config.App{
		TokenSignKey:   "test-sign-key",
		TokenIssuer:    "gamedeck",
		TokenDuration:  time.Hour,
		SettleDelay:    0,
		StalenessBound: 15 * time.Second,
		AuthDebounce:   15 * time.Second,
	}

	machine := session.NewMachine(mocks.accounts, mocks.auth, mocks.handoff, mocks.bus, mocks.windows, cfg, logger.Nop())
	return machine, mocks
}
