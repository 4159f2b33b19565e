// Package prefstore holds the places a theme preference can live.
package prefstore

import (
	"sync"
)

// Memory is a process-local store.  siteadmin and the tests use it.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: map[string]string{}}
}

func (s *Memory) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}
