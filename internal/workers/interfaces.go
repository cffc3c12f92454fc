// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's background loop and returns immediately; the loop
// exits when ctx is cancelled or Stop is called. Stop blocks until the loop
// has fully exited and is safe to call when the worker is not running.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
