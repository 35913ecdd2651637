// Package locker provides distributed locking for coordinating background
// work across service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
type DistributedLocker interface {
	// Acquire attempts to take the lock identified by key. It returns true
	// if the lock was acquired, false if another instance holds it. The
	// lock expires on its own after ttl if never released; use the work
	// timeout for mutual exclusion, or the cooldown period for throttling.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key. Calling it for a lock
	// this instance does not own is a no-op.
	Release(ctx context.Context, key string) error
}
