package store

import (
	"context"
	"sync"
)

// Memory is a non-durable Store with the same subscription semantics as the
// SQLite implementation. It backs direct mode, where schedules and history are
// ephemeral, and substitutes for the real store in tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	hub    *hub
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string), hub: newHub()}
}

func (m *Memory) Get(_ context.Context, path string) (string, bool, error) {
	m.mu.RLock()
	raw, ok := m.values[path]
	m.mu.RUnlock()
	return raw, ok, nil
}

func (m *Memory) Set(_ context.Context, path, raw string) error {
	m.mu.Lock()
	m.values[path] = raw
	m.mu.Unlock()
	m.hub.notify(path, func(root string) (Snapshot, error) {
		return m.snapshotAt(root), nil
	})
	return nil
}

func (m *Memory) List(_ context.Context, prefix string) (Snapshot, error) {
	return m.snapshotAt(prefix), nil
}

func (m *Memory) Subscribe(path string, l Listener) (func(), error) {
	dispose := m.hub.add(path, l)
	if l.OnChange != nil {
		l.OnChange(m.snapshotAt(path))
	}
	return dispose, nil
}

func (m *Memory) Close() error {
	m.hub.cancelAll(ErrClosed)
	return nil
}

func (m *Memory) snapshotAt(prefix string) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := make(Snapshot)
	for path, raw := range m.values {
		if covers(prefix, path) {
			snap[relative(prefix, path)] = raw
		}
	}
	return snap
}
