package locker

import (
	"context"
	"sync"
	"time"
)

// LocalLocker implements DistributedLocker inside a single process. It keeps
// the cooldown semantics of the Redis locker (a held lock expires after its
// TTL) but coordinates nothing across instances; use it only when the
// service runs as a single replica without Redis.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewLocalLocker creates a new in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[string]time.Time),
	}
}

// Acquire takes the lock when it is free or its TTL has lapsed.
func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, held := l.locks[key]; held && now.Before(expiry) {
		return false, nil
	}

	l.locks[key] = now.Add(ttl)

	return true, nil
}

// Release frees the lock.
func (l *LocalLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, key)

	return nil
}
