package objstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns a process-local store.
func NewMemory() Store { return &memoryStore{objects: make(map[string][]byte)} }

func (s *memoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.objects[sanitizeKey(key)] = b
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	b, ok := s.objects[sanitizeKey(key)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	_, ok := s.objects[sanitizeKey(key)]
	s.mu.RUnlock()
	return ok, nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.objects, sanitizeKey(key))
	s.mu.Unlock()
	return nil
}
