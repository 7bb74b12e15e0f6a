// Package memory provides a volatile storage.Store. Values live only as long
// as the process, which suits tests and throwaway CLI sessions.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	groups map[string]map[string]string
	err    error
}

func New() *Store {
	return &Store{groups: make(map[string]map[string]string)}
}

// FailWith makes every following call return err until it is called with nil.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Get returns a copy of the namespace.
func (s *Store) Get(_ context.Context, namespace string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]string, len(s.groups[namespace]))
	for k, v := range s.groups[namespace] {
		out[k] = v
	}
	return out, nil
}

// PutAll upserts values under a single lock so the group changes at once.
func (s *Store) PutAll(_ context.Context, namespace string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	g, ok := s.groups[namespace]
	if !ok {
		g = make(map[string]string, len(values))
		s.groups[namespace] = g
	}
	for k, v := range values {
		g[k] = v
	}
	return nil
}

func (s *Store) DeleteAll(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.groups, namespace)
	return nil
}

// Len returns the number of keys held in namespace.
func (s *Store) Len(namespace string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups[namespace])
}
