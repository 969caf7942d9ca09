package favorites

import (
	"context"
	"sync"
)

// Manager owns one Store per user. It is created once at the application
// root and handed to every consumer; there is no package-level instance.
type Manager struct {
	snapshots SnapshotStore
	opts      Options

	mu     sync.Mutex
	stores map[uint]*Store
}

func NewManager(snapshots SnapshotStore, opts Options) *Manager {
	return &Manager{
		snapshots: snapshots,
		opts:      opts,
		stores:    make(map[uint]*Store),
	}
}

// StoreFor returns the user's store, hydrating it from durable storage on
// first access. A failed hydration still yields a usable store with the
// bootstrap default collection.
func (m *Manager) StoreFor(ctx context.Context, userID uint) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s := NewStore(userID, m.snapshots, m.opts)
	err := s.Hydrate(ctx)
	if err != nil {
		s.mu.Lock()
		s.applySnapshotLocked(nil)
		s.lastErr = err.Error()
		s.mu.Unlock()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.stores[userID]; ok {
		// Lost the race to another request; use the store it cached.
		return existing, nil
	}
	m.stores[userID] = s
	return s, err
}

// Cached returns the user's store only if it is already loaded.
func (m *Manager) Cached(userID uint) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[userID]
	return s, ok
}

// ForEach visits every cached store. Used by background jobs.
func (m *Manager) ForEach(fn func(userID uint, s *Store)) {
	m.mu.Lock()
	snapshot := make(map[uint]*Store, len(m.stores))
	for id, s := range m.stores {
		snapshot[id] = s
	}
	m.mu.Unlock()

	for id, s := range snapshot {
		fn(id, s)
	}
}

// Remove drops the user's store from the cache. The persisted snapshot is
// untouched; the next StoreFor rehydrates.
func (m *Manager) Remove(userID uint) {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()
}
