package storage

import (
	"context"
	"sync"
)

type InMemStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{values: make(map[string]string)}
}

func (s *InMemStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *InMemStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *InMemStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Keys is used by tests to inspect what has been persisted.
func (s *InMemStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]string, 0, len(s.values))
	for k := range s.values {
		res = append(res, k)
	}
	return res
}
