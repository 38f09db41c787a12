package store

import (
	"sort"
	"sync"
)

// Memory is an in-memory store, useful for tests and ephemeral sessions.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*Document)}
}

func (m *Memory) Save(name string, doc *Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = doc
	return nil
}

func (m *Memory) Load(name string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.docs[name], nil
}

func (m *Memory) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (m *Memory) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, name)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
