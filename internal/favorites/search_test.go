package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

func floatPtr(v float64) *float64 { return &v }

func newSearchStore(t *testing.T) *Store {
	t.Helper()

	s := newTestStore(t)
	fixtures := []AddToFavoritesInput{
		{
			ItemType: model.ItemTypeActivity,
			ItemID:   "trek-cocora",
			Tags:     []string{"senderismo", "montaña"},
			ItemData: &model.ItemSnapshot{
				Title:        "Caminata Valle de Cocora",
				Description:  "Palmas de cera y bosque de niebla",
				Price:        model.Price{Amount: 95000, Currency: "COP"},
				Availability: model.Availability{Available: true},
			},
		},
		{
			ItemType: model.ItemTypeAccommodation,
			ItemID:   "lodge-tayrona",
			Tags:     []string{"playa"},
			ItemData: &model.ItemSnapshot{
				Title:        "Ecohabs Tayrona",
				Description:  "Cabañas frente al mar Caribe",
				Price:        model.Price{Amount: 450000, Currency: "COP"},
				Availability: model.Availability{Available: true},
			},
		},
		{
			ItemType: model.ItemTypePackage,
			ItemID:   "pkg-amazonas",
			Tags:     []string{"selva", "senderismo"},
			ItemData: &model.ItemSnapshot{
				Title:        "Expedición Amazonas 4 días",
				Description:  "Leticia, selva y comunidades",
				Price:        model.Price{Amount: 1200000, Currency: "COP"},
				Availability: model.Availability{Available: false},
			},
		},
	}
	for _, f := range fixtures {
		_, err := s.AddToFavorites(context.Background(), f)
		require.NoError(t, err)
	}
	return s
}

func itemIDs(items []model.FavoriteItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID
	}
	return out
}

func TestSearchFavorites_EmptyQueryReturnsAllInOrder(t *testing.T) {
	s := newSearchStore(t)

	results := s.SearchFavorites("", model.FavoriteFilters{})
	assert.Equal(t, []string{"trek-cocora", "lodge-tayrona", "pkg-amazonas"}, itemIDs(results))
}

func TestSearchFavorites_QueryMatchesTitleDescriptionTags(t *testing.T) {
	s := newSearchStore(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title, case-insensitive", "COCORA", []string{"trek-cocora"}},
		{"description", "caribe", []string{"lodge-tayrona"}},
		{"tag substring", "selva", []string{"pkg-amazonas"}},
		{"no match", "nevado", []string{}},
		{"whitespace only matches all", "   ", []string{"trek-cocora", "lodge-tayrona", "pkg-amazonas"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SearchFavorites(tt.query, model.FavoriteFilters{})
			assert.Equal(t, tt.want, itemIDs(got))
		})
	}
}

func TestSearchFavorites_ConjunctiveFilters(t *testing.T) {
	s := newSearchStore(t)

	// Query and type filter must both hold.
	got := s.SearchFavorites("senderismo", model.FavoriteFilters{
		ItemTypes: []model.ItemType{model.ItemTypeActivity},
	})
	assert.Equal(t, []string{"trek-cocora"}, itemIDs(got))

	got = s.SearchFavorites("", model.FavoriteFilters{
		ItemTypes: []model.ItemType{model.ItemTypeAccommodation, model.ItemTypePackage},
	})
	assert.Equal(t, []string{"lodge-tayrona", "pkg-amazonas"}, itemIDs(got))
}

func TestSearchFavorites_TagOverlap(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchFavorites("", model.FavoriteFilters{Tags: []string{"SENDERISMO"}})
	assert.Equal(t, []string{"trek-cocora", "pkg-amazonas"}, itemIDs(got))
}

func TestSearchFavorites_Availability(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchFavorites("", model.FavoriteFilters{Availability: model.FilterAvailable})
	assert.Equal(t, []string{"trek-cocora", "lodge-tayrona"}, itemIDs(got))

	got = s.SearchFavorites("", model.FavoriteFilters{Availability: model.FilterUnavailable})
	assert.Equal(t, []string{"pkg-amazonas"}, itemIDs(got))

	got = s.SearchFavorites("", model.FavoriteFilters{Availability: model.FilterAll})
	assert.Len(t, got, 3)
}

func TestSearchFavorites_PriceRangeInclusive(t *testing.T) {
	s := newSearchStore(t)

	got := s.SearchFavorites("", model.FavoriteFilters{
		PriceRange: &model.PriceRange{Min: floatPtr(95000), Max: floatPtr(450000)},
	})
	assert.Equal(t, []string{"trek-cocora", "lodge-tayrona"}, itemIDs(got))

	got = s.SearchFavorites("", model.FavoriteFilters{
		PriceRange: &model.PriceRange{Min: floatPtr(500000)},
	})
	assert.Equal(t, []string{"pkg-amazonas"}, itemIDs(got))

	got = s.SearchFavorites("", model.FavoriteFilters{
		PriceRange: &model.PriceRange{Max: floatPtr(100000)},
	})
	assert.Equal(t, []string{"trek-cocora"}, itemIDs(got))
}

func TestSearchFavorites_DoesNotMutateState(t *testing.T) {
	s := newSearchStore(t)
	before := s.State()

	s.SearchFavorites("cocora", model.FavoriteFilters{Availability: model.FilterAvailable})

	after := s.State()
	assert.Equal(t, before.FavoriteItems, after.FavoriteItems)
	assert.False(t, after.Loading)
	assert.Empty(t, after.Error)
}
