// Package memory provides an in-memory ObjectStore, used for dry runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

// ObjectStore is an in-memory implementation of driven.ObjectStore.
type ObjectStore struct {
	mu      sync.RWMutex
	name    string
	objects map[string]domain.StoredObject
	order   []string
}

// NewObjectStore creates an empty store reporting name as its backend.
func NewObjectStore(name string) *ObjectStore {
	return &ObjectStore{
		name:    name,
		objects: make(map[string]domain.StoredObject),
	}
}

// Name returns the backend name.
func (s *ObjectStore) Name() string {
	return s.name
}

// Put stores a copy of obj.
func (s *ObjectStore) Put(_ context.Context, obj domain.StoredObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj.Body = append([]byte(nil), obj.Body...)
	if _, exists := s.objects[obj.Key]; !exists {
		s.order = append(s.order, obj.Key)
	}
	s.objects[obj.Key] = obj
	return nil
}

// Get returns the object stored under key.
func (s *ObjectStore) Get(key string) (domain.StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Keys returns stored keys in first-write order.
func (s *ObjectStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of stored objects.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
