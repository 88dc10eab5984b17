package kv

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. It round-trips values
// through JSON so it fails the same way the file store would.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// SaveErr, when set, is returned by every Save. Lets tests exercise
	// the best-effort persistence contract.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Save(key string, v any) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *MemoryStore) Load(key string, dest any) error {
	s.mu.Lock()
	data, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("key %s not found", key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Put stores raw bytes under key, bypassing marshalling. Used by tests to
// plant corrupt state.
func (s *MemoryStore) Put(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
}
