// File: timing.go
package config

import "time"

// Core timing constants for production use.
// These define the shutdown behavior of the manager's worker pool.
const (
	// DefaultDrainTimeout bounds how long Shutdown waits for in-flight
	// alterations before cancelling them.
	DefaultDrainTimeout = 5 * time.Second

	// ForceCancelTimeout bounds the second wait, after cancellation,
	// before outstanding work is abandoned.
	ForceCancelTimeout = 5 * time.Second
)
