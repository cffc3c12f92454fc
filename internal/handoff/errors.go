package handoff

import "errors"

var (
	// ErrEmpty is returned by Take when no switch request is parked in
	// the mailbox.
	ErrEmpty = errors.New("handoff mailbox is empty")

	// ErrStale is returned by Take when the parked switch request is
	// older than the staleness bound. The request is discarded as a side
	// effect.
	ErrStale = errors.New("handoff request is stale")
)
