// Package idempotency deduplicates retried reservation-creation requests by
// client-supplied key. Entries are retained for a bounded operational window
// rather than process lifetime.
package idempotency

import (
	"sync"
	"time"

	"woki/pkg/model"
)

type Store interface {
	Get(key string) (*model.Reservation, bool)
	Set(key string, reservation *model.Reservation)
	Stop() // Stop the cleanup goroutine and release resources
}

type record struct {
	reservation *model.Reservation
	createdAt   time.Time
}

type InMemoryStore struct {
	mu     sync.RWMutex
	store  map[string]record
	ttl    time.Duration
	stopCh chan struct{}
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	s := &InMemoryStore{
		store:  make(map[string]record),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	go s.cleanup()

	return s
}

func (s *InMemoryStore) Get(key string) (*model.Reservation, bool) {
	s.mu.RLock()
	rec, exists := s.store[key]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(rec.createdAt) > s.ttl {
		s.mu.Lock()
		delete(s.store, key)
		s.mu.Unlock()
		return nil, false
	}

	return rec.reservation, true
}

func (s *InMemoryStore) Set(key string, reservation *model.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = record{
		reservation: reservation,
		createdAt:   time.Now(),
	}
}

func (s *InMemoryStore) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, rec := range s.store {
				if time.Since(rec.createdAt) > s.ttl {
					delete(s.store, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryStore) Stop() {
	close(s.stopCh)
}
