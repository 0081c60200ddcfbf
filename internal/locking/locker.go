// Package locking provides per-key in-process mutexes. Combat turns and
// narrative outcome application are multi-step read-then-write sequences
// against the store; serializing them per user keeps a concurrent duplicate
// call from observing stale state and double-applying.
package locking

import "sync"

// UserLocker hands out one mutex per key. Locks are never evicted; the key
// space is bounded by the active user population.
type UserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewUserLocker creates an empty locker
func NewUserLocker() *UserLocker {
	return &UserLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key and returns its unlock function.
func (l *UserLocker) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
