package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemStore is an in-memory Store. It round-trips every value through JSON
// so it exercises the same encode/decode path as the Postgres store, which
// makes it a faithful stand-in for unit tests.
type MemStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

// Seed stores a raw JSON blob under key, bypassing encoding. Tests use it
// to plant corrupt or pre-existing data.
func (s *MemStore) Seed(key string, raw []byte) {
	s.mu.Lock()
	s.m[key] = raw
	s.mu.Unlock()
}

func (s *MemStore) Read(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	raw, ok := s.m[key]
	s.mu.Unlock()
	if !ok {
		return ErrNoValue
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("memstore: decode %q: %w", key, err)
	}
	return nil
}

func (s *MemStore) Write(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("memstore: encode %q: %w", key, err)
	}
	s.mu.Lock()
	s.m[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemStore) WriteAll(_ context.Context, entries map[string]any) error {
	// Encode everything first so a marshal failure leaves the store untouched.
	encoded := make(map[string][]byte, len(entries))
	for key, value := range entries {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("memstore: encode %q: %w", key, err)
		}
		encoded[key] = raw
	}
	s.mu.Lock()
	for key, raw := range encoded {
		s.m[key] = raw
	}
	s.mu.Unlock()
	return nil
}

// compile-time check: MemStore must satisfy Store.
var _ Store = (*MemStore)(nil)
