package services

import (
	"context"
	"errors"
	"sync"
)

// KeyValueStore is the persistence capability the score components need.
// Get reports ok=false for a key that was never set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

var ErrStoreUnavailable = errors.New("store unavailable")

// MemoryStore keeps values in process memory. Failures can be switched on to
// exercise the degraded paths.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]string
	failReads  bool
	failWrites bool
	writes     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failReads {
		return "", false, ErrStoreUnavailable
	}
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrStoreUnavailable
	}
	s.data[key] = value
	s.writes++
	return nil
}

func (s *MemoryStore) FailReads(fail bool) {
	s.mu.Lock()
	s.failReads = fail
	s.mu.Unlock()
}

func (s *MemoryStore) FailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}

// Writes counts successful Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
