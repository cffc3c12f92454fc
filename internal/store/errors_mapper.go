package store

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// classifyError maps driver-level failures onto the store's sentinel errors.
// Uniqueness violations become [ErrConflict]; lock, connection and I/O class
// failures become [ErrStoreUnavailable] so callers can retry or degrade to a
// cached view. Anything else is returned wrapped, unclassified.
func (db *DB) classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	switch db.driver {
	case "pgx":
		switch code := postgresError(err); {
		case code == pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case pgerrcode.IsConnectionException(code),
			pgerrcode.IsOperatorIntervention(code),
			pgerrcode.IsInsufficientResources(code):
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	case "sqlite3":
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			switch sqliteErr.Code {
			case sqlite3.ErrConstraint:
				return fmt.Errorf("%w: %v", ErrConflict, err)
			case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}
	}

	return err
}
