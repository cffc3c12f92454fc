package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/models"
)

// accountRepository is the database-backed implementation of
// [AccountRepository]. One instance is shared by everything in the window
// process; the write mutex serializes in-process mutations so concurrent
// upserts never interleave at the row level. Cross-process writes are
// last-writer-wins by design.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured tracing of database interactions.
type accountRepository struct {
	db     *DB
	logger *logger.Logger

	// writeMu serializes all mutating statements issued by this process.
	writeMu sync.Mutex
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) List(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAccounts)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.List").Msg("failed to query accounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifyError(err))
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*accountRepository.List").Msg("failed to scan account row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		accounts = append(accounts, account)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*accountRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating account rows: %w", r.db.classifyError(rowsErr))
	}

	return accounts, nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getAccount, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.Get").Str("account_id", id).Msg("failed to scan account row")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classifyError(err))
	}

	return account, nil
}

func (r *accountRepository) Find(ctx context.Context, identifier string) (models.Account, error) {
	log := logger.FromContext(ctx)

	normalized := NormalizeIdentifier(identifier)
	phone := NormalizePhone(identifier)
	if normalized == "" {
		return models.Account{}, ErrAccountNotFound
	}

	conditions := sq.Or{
		sq.Eq{"email": normalized},
		sq.Eq{"username": normalized},
	}
	if phone != "" {
		conditions = append(conditions, sq.Eq{"phone": phone})
	}

	query, args, err := sq.Select(accountColumns...).
		From("accounts").
		Where(conditions).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Find").Msg("failed to build lookup query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Find").Msg("failed to execute lookup query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classifyError(err))
	}
	defer rows.Close()

	// A single identifier may match different accounts across fields;
	// email wins, then username, then phone.
	const noMatch = 3
	bestRank := noMatch
	var best models.Account

	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*accountRepository.Find").Msg("failed to scan account row")
			return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		rank := noMatch
		switch {
		case account.Email == normalized:
			rank = 0
		case account.Username == normalized:
			rank = 1
		case phone != "" && account.Phone == phone:
			rank = 2
		}
		if rank < bestRank {
			bestRank = rank
			best = account
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*accountRepository.Find").Msg("error occurred during rows iteration")
		return models.Account{}, fmt.Errorf("error iterating account rows: %w", r.db.classifyError(rowsErr))
	}

	if bestRank == noMatch {
		return models.Account{}, ErrAccountNotFound
	}

	return best, nil
}

func (r *accountRepository) Upsert(ctx context.Context, account models.Account) error {
	log := logger.FromContext(ctx)

	account.Email = NormalizeIdentifier(account.Email)
	account.Username = NormalizeIdentifier(account.Username)
	account.Phone = NormalizePhone(account.Phone)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	_, err := r.db.ExecContext(ctx, upsertAccount,
		account.ID,
		account.Email,
		account.Username,
		account.Phone,
		account.CredentialHash,
		account.IsLoggedIn,
		account.StayLoggedIn,
		account.HiddenInSwitcher,
		account.IsGuest,
		account.SessionToken,
		nullableTime(account.LastLoginTime),
		account.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*accountRepository.Upsert").
			Str("account_id", account.ID).
			Msg("failed to execute upsert for account")
		return fmt.Errorf("failed to upsert account (id=%s): %w", account.ID, r.db.classifyError(err))
	}

	return nil
}

func (r *accountRepository) MarkLoggedIn(ctx context.Context, id, sessionToken string) error {
	log := logger.FromContext(ctx)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx, markAccountLoggedIn, id, sessionToken, time.Now())
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.MarkLoggedIn").Str("account_id", id).Msg("failed to mark account logged in")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return r.requireRowAffected(result, id)
}

func (r *accountRepository) MarkLoggedOut(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx, markAccountLoggedOut, id)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.MarkLoggedOut").Str("account_id", id).Msg("failed to mark account logged out")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return r.requireRowAffected(result, id)
}

func (r *accountRepository) SoftRemove(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	result, err := r.db.ExecContext(ctx, softRemoveAccount, id)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SoftRemove").Str("account_id", id).Msg("failed to soft-remove account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classifyError(err))
	}

	return r.requireRowAffected(result, id)
}

// requireRowAffected converts "update touched nothing" into
// [ErrAccountNotFound] so mutators on vanished accounts surface as stale
// data instead of silent success.
func (r *accountRepository) requireRowAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for account %s: %w", id, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var account models.Account
	var lastLogin sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.Phone,
		&account.CredentialHash,
		&account.IsLoggedIn,
		&account.StayLoggedIn,
		&account.HiddenInSwitcher,
		&account.IsGuest,
		&account.SessionToken,
		&lastLogin,
		&account.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	if lastLogin.Valid {
		account.LastLoginTime = lastLogin.Time
	}

	return account, nil
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
