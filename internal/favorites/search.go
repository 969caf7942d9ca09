package favorites

import (
	"math"
	"strings"

	"github.com/wildtour/wildtour-backend/internal/app/model"
)

// SearchFavorites filters the flat item list. All criteria compose
// conjunctively; empty criteria match everything. Pure: no state change,
// no latency, no persistence.
func (s *Store) SearchFavorites(query string, filters model.FavoriteFilters) []model.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FavoriteItem, 0, len(s.items))
	for i := range s.items {
		if matchesSearch(&s.items[i], query, filters) {
			out = append(out, copyItem(s.items[i]))
		}
	}
	return out
}

func matchesSearch(it *model.FavoriteItem, query string, filters model.FavoriteFilters) bool {
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		if !strings.Contains(strings.ToLower(it.ItemData.Title), q) &&
			!strings.Contains(strings.ToLower(it.ItemData.Description), q) &&
			!containsFold(it.Tags, q) {
			return false
		}
	}

	if len(filters.ItemTypes) > 0 && !containsType(filters.ItemTypes, it.ItemType) {
		return false
	}

	if len(filters.Tags) > 0 && !overlapsFold(it.Tags, filters.Tags) {
		return false
	}

	switch filters.Availability {
	case model.FilterAvailable:
		if !it.ItemData.Availability.Available {
			return false
		}
	case model.FilterUnavailable:
		if it.ItemData.Availability.Available {
			return false
		}
	}

	if pr := filters.PriceRange; pr != nil {
		min, max := 0.0, math.Inf(1)
		if pr.Min != nil {
			min = *pr.Min
		}
		if pr.Max != nil {
			max = *pr.Max
		}
		amount := it.ItemData.Price.Amount
		if amount < min || amount > max {
			return false
		}
	}

	return true
}

// containsFold reports whether any tag contains q (both lowercased).
func containsFold(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func containsType(types []model.ItemType, t model.ItemType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// overlapsFold reports whether the item tags and wanted tags intersect,
// case-insensitively.
func overlapsFold(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
