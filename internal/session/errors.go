package session

import "errors"

var (
	// ErrAlreadyActive is returned when the switch target is already the
	// current account. Callers treat it as a no-op success.
	ErrAlreadyActive = errors.New("account is already active")

	// ErrWriteFailed is returned when a store write fails mid-switch.
	// The machine stays in SwitchInFlight; there is no rollback, only a
	// manual retry or a restart.
	ErrWriteFailed = errors.New("store write failed during switch")

	// ErrNotResumable is returned when no stored session can be restored
	// on window start.
	ErrNotResumable = errors.New("no resumable session")
)
