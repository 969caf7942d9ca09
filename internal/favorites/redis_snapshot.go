package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// RedisSnapshotStore persists snapshots as one JSON value per user under
// "<slot>:<user_id>".
type RedisSnapshotStore struct {
	client *redis.Client
	slot   string
}

func NewRedisSnapshotStore(client *redis.Client, slot string) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, slot: slot}
}

func (s *RedisSnapshotStore) key(userID uint) string {
	return fmt.Sprintf("%s:%d", s.slot, userID)
}

func (s *RedisSnapshotStore) Save(ctx context.Context, userID uint, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode favorites snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), payload, 0).Err(); err != nil {
		logger.Error("Failed to persist favorites snapshot to Redis", err, map[string]interface{}{
			"user_id": userID,
			"key":     s.key(userID),
		})
		return err
	}

	logger.Debug("Favorites snapshot persisted to Redis", map[string]interface{}{
		"user_id": userID,
		"bytes":   len(payload),
	})
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID uint) (*Snapshot, error) {
	payload, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to load favorites snapshot from Redis", err, map[string]interface{}{
			"user_id": userID,
			"key":     s.key(userID),
		})
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode favorites snapshot: %w", err)
	}
	return &snap, nil
}
