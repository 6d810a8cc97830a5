// Package securestore is the boundary to the device's secure key-value
// storage. Onboarding-adjacent flows park a pending invitation code or a
// pending owner-stable record here so they survive the sign-up boundary.
//
// The store is best-effort: the Pending helpers absorb read/write failures
// and malformed values as "absent" rather than surfacing errors to the core.
package securestore

import (
	"context"
	"sync"
)

// Store is the minimal secure key-value contract. Get returns ok=false when
// the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Memory is the in-process implementation used in tests and on platforms
// without a secure backend.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Memory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
