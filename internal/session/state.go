package session

// State is the lifecycle phase of one window's session machine.
type State int

const (
	// Anonymous means no account is active in this window.
	Anonymous State = iota

	// Active means exactly one account is the current account.
	Active

	// SwitchPending means this window posted a switch request and is
	// waiting for the executing window to pick it up.
	SwitchPending

	// SwitchInFlight means the switch sequence is executing: the loading
	// surface is up and store writes are in progress. A failed write
	// parks the machine here until a manual retry or restart.
	SwitchInFlight
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Active:
		return "active"
	case SwitchPending:
		return "switch-pending"
	case SwitchInFlight:
		return "switch-in-flight"
	default:
		return "unknown"
	}
}
