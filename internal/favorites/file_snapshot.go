package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// FileSnapshotStore persists snapshots as one JSON file per user under a
// data directory. Meant for single-node deployments without Redis.
type FileSnapshotStore struct {
	dir  string
	slot string
}

func NewFileSnapshotStore(dir, slot string) *FileSnapshotStore {
	return &FileSnapshotStore{dir: dir, slot: slot}
}

func (s *FileSnapshotStore) path(userID uint) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s-%d.json", s.slot, userID))
}

func (s *FileSnapshotStore) Save(ctx context.Context, userID uint, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create favorites data dir: %w", err)
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode favorites snapshot: %w", err)
	}

	if err := os.WriteFile(s.path(userID), payload, 0o600); err != nil {
		logger.Error("Failed to persist favorites snapshot to file", err, map[string]interface{}{
			"user_id": userID,
			"path":    s.path(userID),
		})
		return err
	}
	return nil
}

func (s *FileSnapshotStore) Load(ctx context.Context, userID uint) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode favorites snapshot: %w", err)
	}
	return &snap, nil
}
