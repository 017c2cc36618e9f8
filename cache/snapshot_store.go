package cache

import (
	"context"
	"sync"
	"time"

	"kolan-weather/models"
)

type snapshotEntry struct {
	snapshot  *models.ForecastSnapshot
	expiresAt time.Time
}

// MemorySnapshotStore keeps snapshots in process memory
type MemorySnapshotStore struct {
	mu    sync.RWMutex
	items map[string]snapshotEntry
}

// NewMemorySnapshotStore creates an empty in-memory store
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{items: make(map[string]snapshotEntry)}
}

func (m *MemorySnapshotStore) Get(_ context.Context, key string) (*models.ForecastSnapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.snapshot, true, nil
}

func (m *MemorySnapshotStore) Set(_ context.Context, key string, snapshot *models.ForecastSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = snapshotEntry{snapshot: snapshot, expiresAt: time.Now().Add(ttl)}
	return nil
}

// PruneExpired removes expired snapshots and returns how many were dropped
func (m *MemorySnapshotStore) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	pruned := 0
	for key, e := range m.items {
		if now.After(e.expiresAt) {
			delete(m.items, key)
			pruned++
		}
	}
	return pruned
}

var _ SnapshotStore = (*MemorySnapshotStore)(nil)
