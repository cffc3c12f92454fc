package window

import (
	"sync"
	"time"
)

// Guard suppresses repeated open requests for the same target. Opening
// the auth window for an account and then immediately receiving another
// switch request for that account would stack identical windows; the
// guard ignores the repeat until the window it already opened has had a
// chance to resolve.
type Guard struct {
	mu    sync.Mutex
	until map[string]time.Time

	now func() time.Time
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

// IgnoreFor suppresses the key for the given duration from now.
func (g *Guard) IgnoreFor(key string, d time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.until[key] = g.now().Add(d)
}

// Ignored reports whether the key is currently suppressed. Expired
// entries are dropped on the way out.
func (g *Guard) Ignored(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	deadline, ok := g.until[key]
	if !ok {
		return false
	}
	if g.now().After(deadline) {
		delete(g.until, key)
		return false
	}
	return true
}

// Release lifts the suppression for the key immediately.
func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.until, key)
}
