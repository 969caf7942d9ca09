package model

import "time"

// ItemType identifies the kind of catalog entity a favorite points to.
type ItemType string

const (
	ItemTypeServicePost   ItemType = "service_post"
	ItemTypeAccommodation ItemType = "accommodation"
	ItemTypeActivity      ItemType = "activity"
	ItemTypePackage       ItemType = "package"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeServicePost, ItemTypeAccommodation, ItemTypeActivity, ItemTypePackage:
		return true
	}
	return false
}

// Price is the denormalized price of a favorited item.
type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Unit     string  `json:"unit"` // per person, per night, ...
}

// SnapshotLocation is the denormalized location of a favorited item.
type SnapshotLocation struct {
	Name       string `json:"name"`
	City       string `json:"city"`
	Department string `json:"department"`
}

// SnapshotProvider is the denormalized operator behind a favorited item.
type SnapshotProvider struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
}

// Availability is the denormalized availability of a favorited item.
type Availability struct {
	Available         bool       `json:"available"`
	NextAvailableDate *time.Time `json:"next_available_date,omitempty"`
}

// ItemSnapshot is the display data captured when an item is favorited.
// It is a copy, not a reference: the catalog may change afterwards and the
// snapshot keeps what the traveler saw.
type ItemSnapshot struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ImageURL     string           `json:"image_url"`
	Price        Price            `json:"price"`
	Rating       float64          `json:"rating"`
	Location     SnapshotLocation `json:"location"`
	Provider     SnapshotProvider `json:"provider"`
	ServiceType  string           `json:"service_type"`
	Availability Availability     `json:"availability"`
}

// FavoriteItem is one favorited catalog entity plus its snapshot.
type FavoriteItem struct {
	ID           string       `json:"id"`      // store-generated, unique
	ItemID       string       `json:"item_id"` // catalog entity identifier
	ItemType     ItemType     `json:"item_type"`
	ItemData     ItemSnapshot `json:"item_data"`
	CollectionID string       `json:"collection_id"`
	AddedAt      time.Time    `json:"added_at"`
	Notes        string       `json:"notes,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

// Default presentation for collections that do not choose their own.
const (
	DefaultCollectionID    = "default"
	DefaultCollectionColor = "#3B82F6"
	DefaultCollectionIcon  = "folder"
)

// FavoritesCollection is a named, ordered grouping of favorite items.
// Items holds denormalized copies; the store's flat list is canonical.
type FavoritesCollection struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Items       []FavoriteItem `json:"items"`
	IsPublic    bool           `json:"is_public"`
	IsDefault   bool           `json:"is_default"`
	Color       string         `json:"color,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AvailabilityFilter narrows a favorites search by availability.
type AvailabilityFilter string

const (
	FilterAvailable   AvailabilityFilter = "available"
	FilterUnavailable AvailabilityFilter = "unavailable"
	FilterAll         AvailabilityFilter = "all"
)

// PriceRange is an inclusive price window. Nil bounds are open
// (min defaults to 0, max to +inf).
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// FavoriteFilters compose conjunctively with the free-text query of a
// favorites search.
type FavoriteFilters struct {
	ItemTypes    []ItemType         `json:"item_types,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Availability AvailabilityFilter `json:"availability,omitempty"`
	PriceRange   *PriceRange        `json:"price_range,omitempty"`
}
