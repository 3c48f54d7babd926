package prefs

import (
	"context"
	"sync"
)

// Memory keeps preferences for the lifetime of the process.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) Get(_ context.Context, visitor, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[visitor][key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, visitor, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[visitor] == nil {
		m.data[visitor] = make(map[string]string)
	}
	m.data[visitor][key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
