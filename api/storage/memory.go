package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore keeps objects in process. It serves development setups without
// a bucket and tests.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	source := "memory://" + key
	m.mu.Lock()
	m.objects[source] = data
	m.mu.Unlock()
	return source, nil
}

func (m *MemoryStore) Delete(_ context.Context, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[source]; !ok {
		return fmt.Errorf("object %s not found", source)
	}
	delete(m.objects, source)
	return nil
}

func (m *MemoryStore) Has(source string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[source]
	return ok
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
