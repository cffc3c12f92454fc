package models

import "time"

// PendingSwitch is the transient handoff token passed between window
// processes through the durable single-slot mailbox. The initiating window
// writes it, the executing window consumes it exactly once and deletes it.
type PendingSwitch struct {
	// AccountID is the target account of the switch.
	AccountID string `json:"account_id"`

	// PrevAccountID is the account that was active in the initiating
	// window when the switch was requested. The executing window starts
	// with no session state of its own, so the token carries who must be
	// logged out before the target becomes active.
	PrevAccountID string `json:"prev_account_id,omitempty"`

	// RequestedAt stamps the moment the initiating window wrote the token.
	// Tokens older than the staleness bound are discarded unconsumed.
	RequestedAt time.Time `json:"requested_at"`
}

// StaleAt reports whether the token is older than bound as of now.
func (p PendingSwitch) StaleAt(now time.Time, bound time.Duration) bool {
	return now.Sub(p.RequestedAt) > bound
}
