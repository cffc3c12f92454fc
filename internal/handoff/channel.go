// Package handoff carries a pending account-switch request between
// windows. The channel is a single-slot mailbox: posting overwrites any
// previous request, and the consumer reads the slot, acts on it, then
// clears it. Clearing after acting keeps a crashed consumer from losing
// the request; the staleness bound keeps a crashed consumer from
// replaying it forever.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/models"
)

// Channel is the single-slot switch-request mailbox shared by all
// windows of the shell.
type Channel struct {
	mailbox        store.MailboxRepository
	stalenessBound time.Duration
	logger         *logger.Logger

	// now is swapped in tests to control staleness decisions.
	now func() time.Time
}

// NewChannel creates a Channel over the given mailbox repository.
// Requests older than stalenessBound are discarded on Take.
func NewChannel(mailbox store.MailboxRepository, stalenessBound time.Duration, logger *logger.Logger) *Channel {
	return &Channel{
		mailbox:        mailbox,
		stalenessBound: stalenessBound,
		logger:         logger,
		now:            time.Now,
	}
}

// Post parks a switch request for the given account, replacing any
// request already in the slot. prevAccountID records who was active in
// the posting window so the consumer can log that account out; empty
// when no account was active.
func (c *Channel) Post(ctx context.Context, accountID, prevAccountID string) error {
	log := logger.FromContext(ctx)

	pending := models.PendingSwitch{AccountID: accountID, PrevAccountID: prevAccountID, RequestedAt: c.now()}
	if err := c.mailbox.Put(ctx, pending); err != nil {
		log.Error().Err(err).Str("func", "Post").Msg("error posting switch request")
		return fmt.Errorf("error posting switch request: %w", err)
	}

	log.Debug().Str("func", "Post").Str("account_id", accountID).Msg("switch request posted")
	return nil
}

// Take reads the parked switch request without clearing it. The caller
// acts on the request and then calls Clear once the switch has settled.
//
// Returns ErrEmpty when the slot is empty. A request older than the
// staleness bound is discarded and ErrStale is returned.
func (c *Channel) Take(ctx context.Context) (models.PendingSwitch, error) {
	log := logger.FromContext(ctx)

	pending, err := c.mailbox.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrMailboxEmpty) {
			return models.PendingSwitch{}, ErrEmpty
		}
		log.Error().Err(err).Str("func", "Take").Msg("error reading switch request")
		return models.PendingSwitch{}, fmt.Errorf("error reading switch request: %w", err)
	}

	if pending.StaleAt(c.now(), c.stalenessBound) {
		log.Warn().Str("func", "Take").
			Str("account_id", pending.AccountID).
			Time("requested_at", pending.RequestedAt).
			Msg("discarding stale switch request")
		if err := c.mailbox.Clear(ctx); err != nil {
			return models.PendingSwitch{}, fmt.Errorf("error discarding stale switch request: %w", err)
		}
		return models.PendingSwitch{}, ErrStale
	}

	return pending, nil
}

// Clear empties the mailbox slot. Clearing an already-empty slot is not
// an error.
func (c *Channel) Clear(ctx context.Context) error {
	if err := c.mailbox.Clear(ctx); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("func", "Clear").Msg("error clearing switch request")
		return fmt.Errorf("error clearing switch request: %w", err)
	}
	return nil
}
