package favorites

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	seq := 0
	s := NewStore(1, NewMemorySnapshotStore(), Options{
		Clock: func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) },
		NewID: func() string { seq++; return fmt.Sprintf("id-%d", seq) },
	})
	require.NoError(t, s.Hydrate(context.Background()))
	return s
}

func addLodge(t *testing.T, s *Store, itemID string) *model.FavoriteItem {
	t.Helper()

	item, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeAccommodation,
		ItemID:   itemID,
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	return item
}

func TestHydrate_BootstrapsDefaultCollection(t *testing.T) {
	s := newTestStore(t)

	st := s.State()
	require.Len(t, st.Collections, 1)
	assert.Equal(t, model.DefaultCollectionID, st.Collections[0].ID)
	assert.True(t, st.Collections[0].IsDefault)
	assert.Empty(t, st.FavoriteItems)
	assert.Equal(t, 0, st.TotalCount)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestAddToFavorites_Success(t *testing.T) {
	s := newTestStore(t)

	item := addLodge(t, s, "lodge42")

	st := s.State()
	require.Len(t, st.FavoriteItems, 1)
	assert.Equal(t, "lodge42", st.FavoriteItems[0].ItemID)
	assert.Equal(t, model.ItemTypeAccommodation, st.FavoriteItems[0].ItemType)
	assert.Equal(t, model.DefaultCollectionID, item.CollectionID)
	require.Len(t, st.Collections[0].Items, 1)
	assert.Equal(t, "lodge42", st.Collections[0].Items[0].ItemID)
	assert.Equal(t, 1, st.TotalCount)
	assert.False(t, st.Loading)
}

func TestAddToFavorites_DuplicateFails(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")

	_, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeAccommodation,
		ItemID:   "lodge42",
	})
	require.ErrorIs(t, err, ErrAlreadyFavorite)

	st := s.State()
	assert.Len(t, st.FavoriteItems, 1)
	assert.Equal(t, 1, st.TotalCount)
	assert.Equal(t, ErrAlreadyFavorite.Error(), st.Error)
	assert.False(t, st.Loading)
}

func TestAddToFavorites_UniquenessAcrossSequence(t *testing.T) {
	s := newTestStore(t)

	ids := []string{"a", "b", "a", "c", "b", "c"}
	for _, id := range ids {
		s.AddToFavorites(context.Background(), AddToFavoritesInput{ // nolint:errcheck
			ItemType: model.ItemTypeActivity,
			ItemID:   id,
		})
	}

	st := s.State()
	seen := map[string]int{}
	for _, it := range st.FavoriteItems {
		seen[it.ItemID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "item %s favorited more than once", id)
	}
	assert.Equal(t, len(st.FavoriteItems), st.TotalCount)
}

func TestAddToFavorites_UsesProvidedSnapshot(t *testing.T) {
	s := newTestStore(t)

	snapshot := &model.ItemSnapshot{
		Title:       "Cabaña en el Eje Cafetero",
		Description: "Cabaña con vista al Valle de Cocora",
		Price:       model.Price{Amount: 180000, Currency: "COP", Unit: "por noche"},
		Rating:      4.8,
	}
	item, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeAccommodation,
		ItemID:   "lodge42",
		ItemData: snapshot,
		Notes:    "para el puente de agosto",
		Tags:     []string{"café", "montaña"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Cabaña en el Eje Cafetero", item.ItemData.Title)
	assert.Equal(t, 180000.0, item.ItemData.Price.Amount)
	assert.Equal(t, []string{"café", "montaña"}, item.Tags)
}

func TestAddToFavorites_PlaceholderSnapshotFallback(t *testing.T) {
	s := newTestStore(t)

	item := addLodge(t, s, "lodge42")
	assert.Empty(t, item.ItemData.Title)
	assert.Equal(t, string(model.ItemTypeAccommodation), item.ItemData.ServiceType)
	assert.True(t, item.ItemData.Availability.Available)
}

func TestAddToFavorites_ExplicitCollection(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)

	item, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType:     model.ItemTypeActivity,
		ItemID:       "trek1",
		CollectionID: created.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, item.CollectionID)

	st := s.State()
	for _, c := range st.Collections {
		if c.ID == created.ID {
			require.Len(t, c.Items, 1)
			assert.Equal(t, "trek1", c.Items[0].ItemID)
		}
		if c.ID == model.DefaultCollectionID {
			assert.Empty(t, c.Items)
		}
	}
}

func TestRemoveFromFavorites_ScrubsEveryCollection(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")
	addLodge(t, s, "lodge43")

	require.NoError(t, s.RemoveFromFavorites(context.Background(), "lodge42"))

	st := s.State()
	require.Len(t, st.FavoriteItems, 1)
	assert.Equal(t, "lodge43", st.FavoriteItems[0].ItemID)
	assert.Equal(t, 1, st.TotalCount)
	for _, c := range st.Collections {
		for _, it := range c.Items {
			assert.NotEqual(t, "lodge42", it.ItemID)
		}
	}
}

func TestRemoveFromFavorites_Idempotent(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")

	require.NoError(t, s.RemoveFromFavorites(context.Background(), "lodge42"))
	before := s.State()

	require.NoError(t, s.RemoveFromFavorites(context.Background(), "lodge42"))
	after := s.State()

	assert.Equal(t, before.FavoriteItems, after.FavoriteItems)
	assert.Equal(t, before.Collections, after.Collections)
	assert.Equal(t, before.TotalCount, after.TotalCount)
	assert.Equal(t, 0, after.TotalCount)
}

func TestUpdateFavorite_MergesEverywhere(t *testing.T) {
	s := newTestStore(t)
	item := addLodge(t, s, "lodge42")

	notes := "llevar botas"
	tags := []string{"selva"}
	require.NoError(t, s.UpdateFavorite(context.Background(), item.ID, UpdateFavoriteInput{
		Notes: &notes,
		Tags:  &tags,
	}))

	st := s.State()
	assert.Equal(t, "llevar botas", st.FavoriteItems[0].Notes)
	assert.Equal(t, []string{"selva"}, st.FavoriteItems[0].Tags)
	require.Len(t, st.Collections[0].Items, 1)
	assert.Equal(t, "llevar botas", st.Collections[0].Items[0].Notes)
}

func TestUpdateFavorite_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")
	before := s.State()

	notes := "nada"
	require.NoError(t, s.UpdateFavorite(context.Background(), "missing", UpdateFavoriteInput{Notes: &notes}))

	after := s.State()
	assert.Equal(t, before.FavoriteItems, after.FavoriteItems)
	assert.Empty(t, after.Error)
}

func TestUpdateFavorite_CollectionIDDoesNotMoveEmbeddedCopies(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)
	item := addLodge(t, s, "lodge42")

	require.NoError(t, s.UpdateFavorite(context.Background(), item.ID, UpdateFavoriteInput{
		CollectionID: &created.ID,
	}))

	st := s.State()
	assert.Equal(t, created.ID, st.FavoriteItems[0].CollectionID)
	// The embedded copy stays where the add put it; only the field changes.
	for _, c := range st.Collections {
		if c.ID == model.DefaultCollectionID {
			require.Len(t, c.Items, 1)
			assert.Equal(t, created.ID, c.Items[0].CollectionID)
		}
		if c.ID == created.ID {
			assert.Empty(t, c.Items)
		}
	}
}

func TestIsFavoriteAndLookup(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")

	assert.True(t, s.IsFavorite("lodge42"))
	assert.False(t, s.IsFavorite("lodge43"))

	found := s.GetFavoriteByItemID("lodge42")
	require.NotNil(t, found)
	assert.Equal(t, "lodge42", found.ItemID)
	assert.Nil(t, s.GetFavoriteByItemID("lodge43"))
}

func TestCreateCollection_Defaults(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)
	assert.False(t, created.IsDefault)
	assert.Equal(t, model.DefaultCollectionColor, created.Color)
	assert.Equal(t, model.DefaultCollectionIcon, created.Icon)
	assert.NotNil(t, created.Items)
	assert.Empty(t, created.Items)

	st := s.State()
	assert.Len(t, st.Collections, 2)
}

func TestUpdateCollection(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)

	name := "Aventura 2026"
	isPublic := true
	require.NoError(t, s.UpdateCollection(context.Background(), created.ID, UpdateCollectionInput{
		Name:     &name,
		IsPublic: &isPublic,
	}))

	st := s.State()
	for _, c := range st.Collections {
		if c.ID == created.ID {
			assert.Equal(t, "Aventura 2026", c.Name)
			assert.True(t, c.IsPublic)
		}
	}

	err = s.UpdateCollection(context.Background(), "missing", UpdateCollectionInput{Name: &name})
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestDeleteCollection_DefaultProtected(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteCollection(context.Background(), model.DefaultCollectionID)
	require.ErrorIs(t, err, ErrDefaultCollectionProtected)

	st := s.State()
	require.Len(t, st.Collections, 1)
	assert.Equal(t, ErrDefaultCollectionProtected.Error(), st.Error)
	assert.False(t, st.Loading)
}

func TestDeleteCollection_NonDefault(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)
	s.SetCurrentCollection(created.ID)

	require.NoError(t, s.DeleteCollection(context.Background(), created.ID))

	st := s.State()
	require.Len(t, st.Collections, 1)
	assert.Equal(t, model.DefaultCollectionID, st.Collections[0].ID)
	assert.Nil(t, st.CurrentCollection)
}

func TestDeleteCollection_Unknown(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteCollection(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCurrentCollectionFollowsUpdates(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)

	s.SetCurrentCollection(created.ID)
	name := "Playa"
	require.NoError(t, s.UpdateCollection(context.Background(), created.ID, UpdateCollectionInput{Name: &name}))

	st := s.State()
	require.NotNil(t, st.CurrentCollection)
	assert.Equal(t, "Playa", st.CurrentCollection.Name)

	s.SetCurrentCollection("")
	assert.Nil(t, s.State().CurrentCollection)
}

func TestGetDefaultCollection(t *testing.T) {
	s := newTestStore(t)

	def := s.GetDefaultCollection()
	require.NotNil(t, def)
	assert.True(t, def.IsDefault)
	assert.Equal(t, model.DefaultCollectionID, def.ID)
}

func TestClearError(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")
	_, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeAccommodation,
		ItemID:   "lodge42",
	})
	require.Error(t, err)
	require.NotEmpty(t, s.State().Error)

	s.ClearError()
	assert.Empty(t, s.State().Error)
}

func TestReset_ClearsEverything(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)
	addLodge(t, s, "lodge42")
	s.SetCurrentCollection(created.ID)

	require.NoError(t, s.Reset(context.Background()))

	st := s.State()
	assert.Empty(t, st.Collections)
	assert.Empty(t, st.FavoriteItems)
	assert.Nil(t, st.CurrentCollection)
	assert.Equal(t, 0, st.TotalCount)
	assert.Empty(t, st.Error)
	assert.False(t, st.Loading)
}

func TestPersistAndRehydrate(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	seq := 0
	opts := Options{NewID: func() string { seq++; return fmt.Sprintf("id-%d", seq) }}

	s := NewStore(7, snapshots, opts)
	require.NoError(t, s.Hydrate(context.Background()))
	_, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeActivity,
		ItemID:   "trek1",
		Tags:     []string{"selva"},
	})
	require.NoError(t, err)
	_, err = s.CreateCollection(context.Background(), CreateCollectionInput{Name: "Wishlist"})
	require.NoError(t, err)

	reloaded := NewStore(7, snapshots, opts)
	require.NoError(t, reloaded.Hydrate(context.Background()))

	st := reloaded.State()
	assert.Len(t, st.Collections, 2)
	require.Len(t, st.FavoriteItems, 1)
	assert.Equal(t, "trek1", st.FavoriteItems[0].ItemID)
	assert.Equal(t, []string{"selva"}, st.FavoriteItems[0].Tags)
	assert.Equal(t, 1, st.TotalCount)
	// Selection is not part of the persisted subset.
	assert.Nil(t, st.CurrentCollection)
}

func TestLoadFavorites_RecoversExternalSnapshot(t *testing.T) {
	snapshots := NewMemorySnapshotStore()
	writer := NewStore(3, snapshots, Options{})
	require.NoError(t, writer.Hydrate(context.Background()))
	_, err := writer.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypePackage,
		ItemID:   "pkg9",
	})
	require.NoError(t, err)

	reader := NewStore(3, snapshots, Options{})
	require.NoError(t, reader.Hydrate(context.Background()))
	reader.LoadFavorites(context.Background())
	reader.LoadCollections(context.Background())

	st := reader.State()
	require.Len(t, st.FavoriteItems, 1)
	assert.Equal(t, "pkg9", st.FavoriteItems[0].ItemID)
	assert.Equal(t, 1, st.TotalCount)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestSubscribe_NotifiedOnMutation(t *testing.T) {
	s := newTestStore(t)

	var mu sync.Mutex
	var states []State
	unsubscribe := s.Subscribe(func(st State) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	})

	addLodge(t, s, "lodge42")

	mu.Lock()
	require.NotEmpty(t, states)
	sawLoading := false
	for _, st := range states {
		if st.Loading {
			sawLoading = true
		}
	}
	final := states[len(states)-1]
	mu.Unlock()

	assert.True(t, sawLoading, "observers should see the in-flight loading state")
	assert.False(t, final.Loading)
	assert.Equal(t, 1, final.TotalCount)

	unsubscribe()
	mu.Lock()
	n := len(states)
	mu.Unlock()

	addLodge(t, s, "lodge43")

	mu.Lock()
	assert.Equal(t, n, len(states), "unsubscribed observer must not be notified")
	mu.Unlock()
}

func TestConcurrentAdds_NoLostUpdates(t *testing.T) {
	s := NewStore(1, NewMemorySnapshotStore(), Options{Latency: time.Millisecond})
	require.NoError(t, s.Hydrate(context.Background()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddToFavorites(context.Background(), AddToFavoritesInput{ // nolint:errcheck
				ItemType: model.ItemTypeActivity,
				ItemID:   fmt.Sprintf("trek-%d", i),
			})
		}(i)
	}
	wg.Wait()

	st := s.State()
	assert.Len(t, st.FavoriteItems, 20)
	assert.Equal(t, 20, st.TotalCount)
}

func TestRefreshAvailability(t *testing.T) {
	s := newTestStore(t)
	available := &model.ItemSnapshot{Title: "Trek", Availability: model.Availability{Available: true}}
	_, err := s.AddToFavorites(context.Background(), AddToFavoritesInput{
		ItemType: model.ItemTypeActivity,
		ItemID:   "trek1",
		ItemData: available,
	})
	require.NoError(t, err)

	next := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	err = s.RefreshAvailability(context.Background(), func(_ model.ItemType, itemID string) (*model.Availability, bool) {
		if itemID != "trek1" {
			return nil, false
		}
		return &model.Availability{Available: false, NextAvailableDate: &next}, true
	})
	require.NoError(t, err)

	st := s.State()
	assert.False(t, st.FavoriteItems[0].ItemData.Availability.Available)
	require.NotNil(t, st.FavoriteItems[0].ItemData.Availability.NextAvailableDate)
	assert.Equal(t, next, *st.FavoriteItems[0].ItemData.Availability.NextAvailableDate)
	require.Len(t, st.Collections[0].Items, 1)
	assert.False(t, st.Collections[0].Items[0].ItemData.Availability.Available)
}

func TestState_ReturnsDeepCopies(t *testing.T) {
	s := newTestStore(t)
	addLodge(t, s, "lodge42")

	st := s.State()
	st.FavoriteItems[0].Notes = "mutado"
	st.Collections[0].Items[0].Notes = "mutado"
	st.Collections[0].Name = "mutado"

	clean := s.State()
	assert.Empty(t, clean.FavoriteItems[0].Notes)
	assert.Empty(t, clean.Collections[0].Items[0].Notes)
	assert.NotEqual(t, "mutado", clean.Collections[0].Name)
}
