package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

func TestManager_StoreForIsStablePerUser(t *testing.T) {
	m := NewManager(NewMemorySnapshotStore(), Options{})

	first, err := m.StoreFor(context.Background(), 1)
	require.NoError(t, err)
	second, err := m.StoreFor(context.Background(), 1)
	require.NoError(t, err)
	other, err := m.StoreFor(context.Background(), 2)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManager_StoresAreIsolated(t *testing.T) {
	m := NewManager(NewMemorySnapshotStore(), Options{})

	s1, err := m.StoreFor(context.Background(), 1)
	require.NoError(t, err)
	s2, err := m.StoreFor(context.Background(), 2)
	require.NoError(t, err)

	_, err = s1.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeActivity,
		ItemID:   "trek1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, s1.State().TotalCount)
	assert.Equal(t, 0, s2.State().TotalCount)
}

func TestManager_RemoveEvictsButKeepsSnapshot(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	m := NewManager(snapshots, Options{})

	s, err := m.StoreFor(context.Background(), 1)
	require.NoError(t, err)
	_, err = s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypePackage,
		ItemID:   "pkg9",
	})
	require.NoError(t, err)

	m.Remove(1)
	_, cached := m.Cached(1)
	assert.False(t, cached)

	rehydrated, err := m.StoreFor(context.Background(), 1)
	require.NoError(t, err)
	assert.NotSame(t, s, rehydrated)
	assert.Equal(t, 1, rehydrated.State().TotalCount)
}

func TestManager_ForEachVisitsCachedStores(t *testing.T) {
	m := NewManager(NewMemorySnapshotStore(), Options{})
	for _, id := range []uint{1, 2, 3} {
		_, err := m.StoreFor(context.Background(), id)
		require.NoError(t, err)
	}

	visited := map[uint]bool{}
	m.ForEach(func(userID uint, s *Store) {
		visited[userID] = s != nil
	})

	assert.Equal(t, map[uint]bool{1: true, 2: true, 3: true}, visited)
}
