// Package keyedmutex provides per-key mutual exclusion with context-aware
// acquisition. It serializes mutations scoped to a single aggregate id while
// letting operations on different ids proceed in parallel.
package keyedmutex

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when a lock cannot be acquired within the configured
// timeout. The caller saw no partial mutation and may retry with backoff.
var ErrBusy = errors.New("keyedmutex: lock busy")

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// KeyedMutex is a set of mutexes addressed by string key. Entries are created
// on first use and removed once no goroutine holds or waits on them, so the
// map does not grow with the total number of keys ever locked.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
}

// New creates a KeyedMutex. timeout bounds how long Acquire waits for a
// contended key; zero means wait until the context is done.
func New(timeout time.Duration) *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
		timeout: timeout,
	}
}

// Acquire locks the given key, waiting up to the configured timeout. It
// returns ErrBusy when the timeout elapses and the context's error when the
// context is cancelled first. On success the caller must call Release with
// the same key exactly once.
func (m *KeyedMutex) Acquire(ctx context.Context, key string) error {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	acquireCtx := ctx
	var cancel context.CancelFunc
	if m.timeout > 0 {
		acquireCtx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if err := e.sem.Acquire(acquireCtx, 1); err != nil {
		m.drop(key, e)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
	return nil
}

// Release unlocks the given key. It must only be called after a successful
// Acquire for the same key.
func (m *KeyedMutex) Release(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return
	}
	e.sem.Release(1)
	m.drop(key, e)
}

func (m *KeyedMutex) drop(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
