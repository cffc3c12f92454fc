package store

import (
	"context"
	"fmt"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/logger"
)

// Storages groups all repositories of the durable store into a single value
// that can be passed around the session and service layers. Every window
// process owns one Storages over the same underlying database.
type Storages struct {
	// Accounts is the durable account record repository.
	Accounts AccountRepository

	// Mailbox is the single-slot handoff mailbox.
	Mailbox MailboxRepository

	// Peers is the event-bus window registry.
	Peers PeerRepository
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. It performs the following steps:
//  1. Opens a connection to the backend selected by cfg.DB.Driver: the
//     per-installation SQLite file (default) or a shared Postgres store.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [Storages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	var db *DB
	var err error
	switch cfg.DB.Driver {
	case "pgx":
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	default:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Accounts: NewAccountRepository(db, logger),
		Mailbox:  NewMailboxRepository(db, logger),
		Peers:    NewPeerRepository(db, logger),
	}, nil
}
