// Package concurrency provides keyed locking for operations that must not
// run twice for the same entity, such as enriching a single recipe.
package concurrency

import "sync"

// LockManager hands out one mutex per key. Locks are never reclaimed; the
// key space (upstream record ids) is small and bounded.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*sync.Mutex)}
}

// GetLock returns the mutex for key, creating it on first use.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lock, ok := lm.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		lm.locks[key] = lock
	}
	return lock
}
