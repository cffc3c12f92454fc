package session

import (
	"time"

	"github.com/avbelov/gamedeck/models"
)

// Snapshot is one window's cached view of the session world. It is
// rebuilt on every successful store read and served read-only when the
// store is unavailable; it is never more authoritative than the store.
type Snapshot struct {
	// State is the machine state at snapshot time.
	State State

	// Current is the active account, zero when Anonymous.
	Current models.Account

	// Accounts is the switcher listing at snapshot time.
	Accounts []models.Account

	// TakenAt stamps the last successful rebuild.
	TakenAt time.Time
}
