package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/models"
)

// mailboxRepository implements [MailboxRepository] over the single-row
// handoff_mailbox table. Get and Clear are deliberately separate statements:
// the executing window reads the token, acts on it, and clears the slot only
// after it has fully entered the switching state, so a duplicate read by an
// unrelated launch stays idempotent.
type mailboxRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewMailboxRepository constructs a [MailboxRepository] backed by the
// provided database connection and logger.
func NewMailboxRepository(db *DB, logger *logger.Logger) MailboxRepository {
	logger.Debug().Msg("creating mailbox repository")
	return &mailboxRepository{
		db:     db,
		logger: logger,
	}
}

func (r *mailboxRepository) Put(ctx context.Context, pending models.PendingSwitch) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, putMailbox, pending.AccountID, pending.PrevAccountID, pending.RequestedAt)
	if err != nil {
		log.Err(err).
			Str("func", "*mailboxRepository.Put").
			Str("account_id", pending.AccountID).
			Msg("failed to write pending switch to mailbox")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return nil
}

func (r *mailboxRepository) Get(ctx context.Context) (models.PendingSwitch, error) {
	log := logger.FromContext(ctx)

	var pending models.PendingSwitch
	row := r.db.QueryRowContext(ctx, getMailbox)
	if err := row.Scan(&pending.AccountID, &pending.PrevAccountID, &pending.RequestedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingSwitch{}, ErrMailboxEmpty
		}
		log.Err(err).Str("func", "*mailboxRepository.Get").Msg("failed to read pending switch from mailbox")
		return models.PendingSwitch{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classifyError(err))
	}

	return pending, nil
}

func (r *mailboxRepository) Clear(ctx context.Context) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, clearMailbox)
	if err != nil {
		log.Err(err).Str("func", "*mailboxRepository.Clear").Msg("failed to clear mailbox")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return nil
}
