package database

import (
	"strings"
	"sync"
)

// MemoryStore keeps records in process memory. Selected with
// KV_BACKEND=memory for demos; also what the tests run against.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	order  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

func (s *MemoryStore) GetByPrefix(prefix string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var values [][]byte
	for _, key := range s.order {
		if strings.HasPrefix(key, prefix) {
			v := s.values[key]
			out := make([]byte, len(v))
			copy(out, v)
			values = append(values, out)
		}
	}
	return values, nil
}
