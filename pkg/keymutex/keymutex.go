// Package keymutex provides per-key mutual exclusion for reservation
// creation. Work submitted under the same key runs one unit at a time in
// arrival order; distinct keys never block each other.
package keymutex

import (
	"context"
	"sync"
)

type entry struct {
	// Capacity-1 channel used as a lock. Goroutines blocked sending on a
	// channel are queued FIFO by the runtime, which gives the per-key
	// ordering guarantee.
	ch      chan struct{}
	waiters int
}

type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*entry),
	}
}

// Run executes fn while holding the lock for key. The lock is released when
// fn returns, success or failure, and fn's error is propagated unchanged.
// A caller still waiting for its turn can abandon the wait through ctx.
func (k *KeyedMutex) Run(ctx context.Context, key string, fn func() error) error {
	e := k.acquireEntry(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.releaseEntry(key, e)
		return ctx.Err()
	}

	defer func() {
		<-e.ch
		k.releaseEntry(key, e)
	}()

	return fn()
}

func (k *KeyedMutex) acquireEntry(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.waiters++
	return e
}

// releaseEntry drops a waiter reference and frees the key's state once
// nothing is pending for it, so dead keys do not accumulate.
func (k *KeyedMutex) releaseEntry(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.waiters--
	if e.waiters == 0 && k.entries[key] == e {
		delete(k.entries, key)
	}
}

// Len reports the number of keys with pending or running work.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
