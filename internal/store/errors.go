package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrStoreUnavailable is returned when the underlying database cannot
	// be reached (locked file, dropped connection, unreachable server).
	// The operation is retryable and no state has changed; callers degrade
	// to their cached read-only snapshot instead of crashing.
	ErrStoreUnavailable = errors.New("account store unavailable")

	// ErrAccountNotFound is returned when a lookup by id or identifier
	// produces no account. During a switch this is treated as stale data:
	// the target vanished between listing and selection.
	ErrAccountNotFound = errors.New("account not found")

	// ErrConflict is returned when an insert violates a uniqueness
	// constraint (two accounts claiming the same id).
	ErrConflict = errors.New("account already exists")

	// ErrMailboxEmpty is returned when the single-slot handoff mailbox
	// holds no pending switch.
	ErrMailboxEmpty = errors.New("handoff mailbox is empty")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan account row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan account rows")
)
