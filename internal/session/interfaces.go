package session

import (
	"context"

	"github.com/avbelov/gamedeck/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Authenticator verifies credentials and mints guest identities for the
// machine. Implemented by service.AuthService.
type Authenticator interface {
	// Authenticate resolves the identifier and verifies the password.
	Authenticate(ctx context.Context, identifier, password string) (models.Account, error)

	// CreateGuest creates a throwaway guest account.
	CreateGuest(ctx context.Context) (models.Account, error)
}

// Publisher fans an event out to the other windows. Implemented by
// bus.Bus.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// Handoff is the single-slot switch-request mailbox between windows.
// Implemented by handoff.Channel.
type Handoff interface {
	// Post parks a switch request for the account, recording which account
	// was active in the posting window.
	Post(ctx context.Context, accountID, prevAccountID string) error

	// Take reads the parked request without clearing it.
	Take(ctx context.Context) (models.PendingSwitch, error)

	// Clear empties the slot.
	Clear(ctx context.Context) error
}
