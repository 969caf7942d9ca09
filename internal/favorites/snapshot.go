package favorites

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

// SnapshotVersion is written into every persisted snapshot. Snapshots with a
// different version are discarded on load rather than migrated.
const SnapshotVersion = 1

// Snapshot is the durable subset of a store's state. The transient fields
// (current selection, loading flag, last error) are deliberately excluded.
type Snapshot struct {
	Version       int                         `json:"version"`
	Collections   []model.FavoritesCollection `json:"collections"`
	FavoriteItems []model.FavoriteItem        `json:"favorite_items"`
	TotalCount    int                         `json:"total_count"`
}

// SnapshotStore persists one snapshot per user under a named slot.
type SnapshotStore interface {
	// Save overwrites the user's snapshot.
	Save(ctx context.Context, userID uint, snap *Snapshot) error
	// Load returns the user's snapshot, or (nil, nil) when none exists.
	Load(ctx context.Context, userID uint) (*Snapshot, error)
}

// MemorySnapshotStore keeps snapshots in process memory. Used in tests and
// as a last-resort backend when neither Redis nor the filesystem is
// configured.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	data map[uint][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[uint][]byte)}
}

func (s *MemorySnapshotStore) Save(_ context.Context, userID uint, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = payload
	return nil
}

func (s *MemorySnapshotStore) Load(_ context.Context, userID uint) (*Snapshot, error) {
	s.mu.Lock()
	payload, ok := s.data[userID]
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
