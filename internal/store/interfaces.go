package store

import (
	"context"
	"time"

	"github.com/avbelov/gamedeck/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository is the durable CRUD surface over account records: the
// single source of truth for "who exists" and "who is logged in."
type AccountRepository interface {
	// List returns all accounts; order is undefined, callers sort.
	List(ctx context.Context) ([]models.Account, error)

	// Get returns the account with the given id or [ErrAccountNotFound].
	Get(ctx context.Context, id string) (models.Account, error)

	// Find normalizes the identifier and matches it against email,
	// username, and phone; on collisions across fields the email match
	// wins, then username, then phone.
	Find(ctx context.Context, identifier string) (models.Account, error)

	// Upsert writes the whole account record through immediately.
	// Serialized against concurrent writers within this process; across
	// processes the last writer wins.
	Upsert(ctx context.Context, account models.Account) error

	// MarkLoggedIn flips is_logged_in on, stores the resumable session
	// token, stamps last_login_time, and clears hidden_in_switcher.
	MarkLoggedIn(ctx context.Context, id, sessionToken string) error

	// MarkLoggedOut flips is_logged_in off and drops the session token.
	// It never touches hidden_in_switcher.
	MarkLoggedOut(ctx context.Context, id string) error

	// SoftRemove hides the account from the switcher and logs it out in
	// one atomic update. The only code path allowed to set
	// hidden_in_switcher.
	SoftRemove(ctx context.Context, id string) error
}

// MailboxRepository is the durable single-slot mailbox carrying a pending
// switch between window processes.
type MailboxRepository interface {
	// Put overwrites the slot with the given token.
	Put(ctx context.Context, pending models.PendingSwitch) error

	// Get returns the current token without clearing it, or
	// [ErrMailboxEmpty].
	Get(ctx context.Context) (models.PendingSwitch, error)

	// Clear empties the slot. Clearing an empty slot is a no-op.
	Clear(ctx context.Context) error
}

// PeerRepository tracks the currently-open windows participating in the
// event bus.
type PeerRepository interface {
	// Upsert registers the window or refreshes its heartbeat.
	Upsert(ctx context.Context, peer models.Peer) error

	// ListLive returns peers seen after the given cutoff.
	ListLive(ctx context.Context, seenAfter time.Time) ([]models.Peer, error)

	// Prune deletes peers not seen since the cutoff and reports how many
	// rows went away.
	Prune(ctx context.Context, seenBefore time.Time) (int64, error)

	// Delete removes the window's own registration on shutdown.
	Delete(ctx context.Context, windowID string) error
}
