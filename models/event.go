package models

import "time"

// Event names broadcast over the bus. Subscribers treat every event purely
// as a hint to re-read the account store, never as an authoritative payload.
const (
	// EventUserChanged signals that the set of accounts or the active
	// account changed (login, logout, switch completion, removal).
	EventUserChanged = "user-changed"

	// EventSwitchStart signals that a window entered the switching state
	// and is about to mutate the store. Carries the target account ID.
	EventSwitchStart = "switch-start"

	// EventSwitchComplete signals that a switch finished and the target
	// account is now active in the executing window.
	EventSwitchComplete = "switch-complete"
)

// Event is the fire-and-forget notification fanned out to all open windows.
// Delivery is best-effort: not ordered, not exactly-once.
type Event struct {
	// Name is one of the Event* constants above.
	Name string `json:"name"`

	// AccountID optionally identifies the account the event concerns.
	AccountID string `json:"account_id,omitempty"`

	// WindowID identifies the publishing window, letting subscribers
	// skip their own echoes.
	WindowID string `json:"window_id,omitempty"`

	// At stamps publication time.
	At time.Time `json:"at"`
}
