package models

import "time"

// WindowKind identifies the purpose-built window types of the shell.
// Each kind runs as a separate OS process.
type WindowKind string

const (
	// WindowMain is the catalog/launcher window.
	WindowMain WindowKind = "main"

	// WindowSwitcher is the account-switcher window. It executes
	// handed-off switches on startup.
	WindowSwitcher WindowKind = "switcher"

	// WindowAuth is the re-authentication window, opened with the target
	// account's identifier pre-filled.
	WindowAuth WindowKind = "auth"
)

// Valid reports whether k is one of the known window kinds.
func (k WindowKind) Valid() bool {
	switch k {
	case WindowMain, WindowSwitcher, WindowAuth:
		return true
	}
	return false
}

// Peer is a bus registration row: one currently-open window and the
// loopback address its event listener is bound to. Rows whose LastSeen is
// older than the peer TTL are pruned and never receive publications.
type Peer struct {
	// WindowID is the unique ID of the window process (UUID string).
	WindowID string `json:"window_id"`

	// Kind is the window kind the process was started as.
	Kind WindowKind `json:"kind"`

	// Addr is the "host:port" loopback address of the event listener.
	Addr string `json:"addr"`

	// LastSeen is refreshed on every heartbeat.
	LastSeen time.Time `json:"last_seen"`
}
