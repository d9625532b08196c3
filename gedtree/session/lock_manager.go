package session

import "sync"

// operationType defines whether an operation is read or write, so the
// lockManager can take a shared lock for concurrent reads and an
// exclusive lock for writes.
type operationType int

const (
	readOperation operationType = iota
	writeOperation
)

// lockManager centralizes the session's locking strategy. The core
// engine is single-writer by design; the lockManager is the explicit
// ownership boundary the collaborator layer relies on: relationship
// and tree queries run under a read lock, every mutation under the
// exclusive write lock. Centralizing lock use here keeps the
// lock/unlock pairing in one place instead of scattered through each
// operation.
type lockManager struct {
	mu *sync.RWMutex
}

func newLockManager() *lockManager {
	return &lockManager{mu: &sync.RWMutex{}}
}

// execute runs fn under the lock appropriate for the operation type.
// The lock is released via defer, so it is dropped even if fn panics.
func (lm *lockManager) execute(opType operationType, fn func() error) error {
	switch opType {
	case readOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case writeOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}
