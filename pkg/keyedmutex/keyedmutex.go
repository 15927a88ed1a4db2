// Package keyedmutex provides a mutex per string key. Entries are reference counted:
// created on first use and removed once nobody holds or waits for them.
package keyedmutex

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Mutex serialises work per key. Distinct keys never block each other.
type Mutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New returns an empty keyed mutex.
func New() *Mutex {
	return &Mutex{entries: make(map[string]*entry)}
}

// Lock blocks until key is acquired or ctx is done. The returned function releases
// the key and is safe to call more than once.
func (m *Mutex) Lock(ctx context.Context, key string) (func(), error) {
	e := m.acquireRef(key)
	if err := e.sem.Acquire(ctx, 1); err != nil {
		m.releaseRef(key, e)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			m.releaseRef(key, e)
		})
	}, nil
}

// Len reports how many keys are currently held or awaited.
func (m *Mutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Mutex) acquireRef(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		m.entries[key] = e
	}
	e.refs++
	return e
}

func (m *Mutex) releaseRef(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}
