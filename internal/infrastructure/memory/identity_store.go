package memory

import (
	"context"
	"sync"
)

// IdentityStore is a map-backed ports.IdentityStore.
type IdentityStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{data: make(map[string][]byte)}
}

func (s *IdentityStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *IdentityStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *IdentityStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
