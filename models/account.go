package models

import (
	"strings"
	"time"
)

// Account represents a durable user identity record of this installation.
// It is the single source of truth for "who exists" and "who is logged in";
// every window process reads and mutates accounts only through the store.
type Account struct {
	// ID is the opaque stable identifier of the account (UUID string).
	// Unique and immutable once created.
	ID string `json:"id"`

	// Email is an optional login identifier, stored lower-cased.
	Email string `json:"email,omitempty"`

	// Username is an optional login identifier, stored lower-cased.
	Username string `json:"username,omitempty"`

	// Phone is an optional login identifier, stored digits-only.
	Phone string `json:"phone,omitempty"`

	// CredentialHash is the bcrypt hash of the account password.
	// Never compared in plaintext outside the auth service.
	// Excluded from JSON: it must not leave the process boundary.
	CredentialHash string `json:"-"`

	// IsLoggedIn reports whether the account has an active, resumable
	// session in this installation. Multiple accounts may carry
	// IsLoggedIn simultaneously (multi-session via StayLoggedIn).
	IsLoggedIn bool `json:"is_logged_in"`

	// StayLoggedIn, when true, exempts the account from the forced
	// logout that normally happens when another account becomes active.
	StayLoggedIn bool `json:"stay_logged_in"`

	// HiddenInSwitcher excludes the account from every switcher listing.
	// Set only by an explicit user-initiated removal, never by ordinary
	// logout; cleared automatically on the next successful login.
	HiddenInSwitcher bool `json:"hidden_in_switcher"`

	// IsGuest marks throwaway guest accounts. Guests never appear as
	// switch targets and never retain a persistent session.
	IsGuest bool `json:"is_guest"`

	// SessionToken is the signed resumable-session token issued on login.
	// Empty when the account is logged out. Excluded from JSON.
	SessionToken string `json:"-"`

	// LastLoginTime orders accounts most-recent-first in listings.
	LastLoginTime time.Time `json:"last_login_time"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// DisplayName returns the identifier shown for the account in listings:
// username if present, otherwise email, otherwise phone.
func (a Account) DisplayName() string {
	switch {
	case a.Username != "":
		return a.Username
	case a.Email != "":
		return a.Email
	default:
		return a.Phone
	}
}

// HasIdentifier reports whether at least one login identifier is present.
// Accounts without any identifier cannot be looked up and are invalid.
func (a Account) HasIdentifier() bool {
	return strings.TrimSpace(a.Email) != "" ||
		strings.TrimSpace(a.Username) != "" ||
		strings.TrimSpace(a.Phone) != ""
}
