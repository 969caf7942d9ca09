package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

var (
	ErrAlreadyFavorite            = errors.New("item already in favorites")
	ErrDefaultCollectionProtected = errors.New("cannot delete the default collection")
	ErrCollectionNotFound         = errors.New("collection not found")
)

// State is an immutable view of the store handed to readers and observers.
type State struct {
	Collections       []model.FavoritesCollection `json:"collections"`
	CurrentCollection *model.FavoritesCollection  `json:"current_collection"`
	FavoriteItems     []model.FavoriteItem        `json:"favorite_items"`
	Loading           bool                        `json:"loading"`
	Error             string                      `json:"error,omitempty"`
	TotalCount        int                         `json:"total_count"`
}

// Options tune a store. The zero value is usable: no simulated latency,
// wall-clock time, random UUIDs.
type Options struct {
	// Latency is slept before each mutation's effect is applied, imitating
	// a remote backend. There is no cancellation at this point: a scheduled
	// mutation always completes.
	Latency time.Duration
	// Clock and NewID are overridable for tests.
	Clock func() time.Time
	NewID func() string
}

// Store is the single source of truth for one traveler's favorites and
// their organization into named collections. The flat item list is
// canonical; each collection embeds denormalized copies that every
// mutation keeps in sync.
type Store struct {
	userID    uint
	latency   time.Duration
	snapshots SnapshotStore
	now       func() time.Time
	newID     func() string

	// writeMu serializes mutating operations end to end, including the
	// simulated latency, so overlapping writers cannot lose updates.
	writeMu sync.Mutex

	// mu guards the aggregate fields below. Readers may observe
	// Loading=true while a mutation sleeps between its phases.
	mu          sync.RWMutex
	collections []model.FavoritesCollection
	items       []model.FavoriteItem
	currentID   string
	loading     bool
	lastErr     string
	totalCount  int

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewStore builds an empty store for a user. Call Hydrate (or the Load
// operations) to pull persisted state in.
func NewStore(userID uint, snapshots SnapshotStore, opts Options) *Store {
	s := &Store{
		userID:    userID,
		latency:   opts.Latency,
		snapshots: snapshots,
		now:       opts.Clock,
		newID:     opts.NewID,
		subs:      make(map[int]func(State)),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// AddToFavoritesInput carries everything "add to favorites" accepts.
// ItemData is optional: when the caller has already resolved the catalog
// entity it passes the snapshot in, otherwise a placeholder is stored.
type AddToFavoritesInput struct {
	ItemType     model.ItemType
	ItemID       string
	CollectionID string
	Notes        string
	Tags         []string
	ItemData     *model.ItemSnapshot
}

// AddToFavorites favorites an item. At most one favorite per ItemID may
// exist; a duplicate add fails before the simulated latency and leaves the
// aggregate untouched.
func (s *Store) AddToFavorites(ctx context.Context, input AddToFavoritesInput) (*model.FavoriteItem, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	for i := range s.items {
		if s.items[i].ItemID == input.ItemID {
			s.loading = false
			s.lastErr = ErrAlreadyFavorite.Error()
			s.mu.Unlock()

			logger.Warn("Item already in favorites", map[string]interface{}{
				"user_id": s.userID,
				"item_id": input.ItemID,
			})
			s.notify()
			return nil, ErrAlreadyFavorite
		}
	}
	s.mu.Unlock()
	s.notify()

	s.simulateLatency()

	s.mu.Lock()
	snapshot := placeholderSnapshot(input.ItemType)
	if input.ItemData != nil {
		snapshot = *input.ItemData
	}

	item := model.FavoriteItem{
		ID:           s.newID(),
		ItemID:       input.ItemID,
		ItemType:     input.ItemType,
		ItemData:     snapshot,
		CollectionID: s.resolveCollectionIDLocked(input.CollectionID),
		AddedAt:      s.now(),
		Notes:        input.Notes,
		Tags:         append([]string(nil), input.Tags...),
	}

	s.items = append(s.items, item)
	for i := range s.collections {
		if s.collections[i].ID == item.CollectionID {
			s.collections[i].Items = append(s.collections[i].Items, item)
			break
		}
	}
	s.totalCount = len(s.items)
	s.loading = false
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return nil, err
	}

	logger.Info("Item added to favorites", map[string]interface{}{
		"user_id":       s.userID,
		"item_id":       item.ItemID,
		"item_type":     item.ItemType,
		"collection_id": item.CollectionID,
	})
	itemCopy := copyItem(item)
	return &itemCopy, nil
}

// RemoveFromFavorites deletes every favorite matching itemID from the flat
// list and from every collection. Removing an absent item is a no-op.
func (s *Store) RemoveFromFavorites(ctx context.Context, itemID string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.setLoading()
	s.simulateLatency()

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ItemID != itemID {
			kept = append(kept, it)
		}
	}
	s.items = kept

	// Scrubbing every collection is deliberate: an ItemID should live in a
	// single collection, but removal never trusts that.
	for i := range s.collections {
		filtered := s.collections[i].Items[:0]
		for _, it := range s.collections[i].Items {
			if it.ItemID != itemID {
				filtered = append(filtered, it)
			}
		}
		s.collections[i].Items = filtered
	}

	s.totalCount = len(s.items)
	s.loading = false
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return err
	}

	logger.Info("Item removed from favorites", map[string]interface{}{
		"user_id": s.userID,
		"item_id": itemID,
	})
	return nil
}

// UpdateFavoriteInput is a partial merge; nil fields are left untouched.
type UpdateFavoriteInput struct {
	Notes        *string
	Tags         *[]string
	CollectionID *string
}

// UpdateFavorite merges input onto the favorite with the given internal id,
// both in the flat list and in every embedded copy. Unknown ids are a
// silent no-op. Changing CollectionID rewrites the field only; the embedded
// copies stay in the lists they were added to.
func (s *Store) UpdateFavorite(ctx context.Context, id string, input UpdateFavoriteInput) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.setLoading()
	s.simulateLatency()

	apply := func(it *model.FavoriteItem) {
		if input.Notes != nil {
			it.Notes = *input.Notes
		}
		if input.Tags != nil {
			it.Tags = append([]string(nil), (*input.Tags)...)
		}
		if input.CollectionID != nil {
			it.CollectionID = *input.CollectionID
		}
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			apply(&s.items[i])
		}
	}
	for c := range s.collections {
		for i := range s.collections[c].Items {
			if s.collections[c].Items[i].ID == id {
				apply(&s.collections[c].Items[i])
			}
		}
	}
	s.loading = false
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	return err
}

// IsFavorite reports whether some favorite references itemID.
func (s *Store) IsFavorite(itemID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			return true
		}
	}
	return false
}

// GetFavoriteByItemID returns the first favorite referencing itemID, or nil.
func (s *Store) GetFavoriteByItemID(itemID string) *model.FavoriteItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].ItemID == itemID {
			item := copyItem(s.items[i])
			return &item
		}
	}
	return nil
}

// CreateCollectionInput carries the caller-settable collection fields.
type CreateCollectionInput struct {
	Name        string
	Description string
	IsPublic    bool
	Color       string
	Icon        string
}

// CreateCollection appends a new, never-default collection.
func (s *Store) CreateCollection(ctx context.Context, input CreateCollectionInput) (*model.FavoritesCollection, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.setLoading()
	s.simulateLatency()

	now := s.now()
	collection := model.FavoritesCollection{
		ID:          s.newID(),
		Name:        input.Name,
		Description: input.Description,
		Items:       []model.FavoriteItem{},
		IsPublic:    input.IsPublic,
		IsDefault:   false,
		Color:       input.Color,
		Icon:        input.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if collection.Color == "" {
		collection.Color = model.DefaultCollectionColor
	}
	if collection.Icon == "" {
		collection.Icon = model.DefaultCollectionIcon
	}

	s.mu.Lock()
	s.collections = append(s.collections, collection)
	s.loading = false
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return nil, err
	}

	logger.Info("Favorites collection created", map[string]interface{}{
		"user_id":       s.userID,
		"collection_id": collection.ID,
		"name":          collection.Name,
	})
	created := copyCollection(collection)
	return &created, nil
}

// UpdateCollectionInput is a partial merge; nil fields are left untouched.
type UpdateCollectionInput struct {
	Name        *string
	Description *string
	IsPublic    *bool
	Color       *string
	Icon        *string
}

// UpdateCollection merges input onto the matching collection and refreshes
// its UpdatedAt. The current-selection view follows automatically because
// the selection is resolved by id on read.
func (s *Store) UpdateCollection(ctx context.Context, id string, input UpdateCollectionInput) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.setLoading()
	s.simulateLatency()

	s.mu.Lock()
	found := false
	for i := range s.collections {
		if s.collections[i].ID != id {
			continue
		}
		found = true
		c := &s.collections[i]
		if input.Name != nil {
			c.Name = *input.Name
		}
		if input.Description != nil {
			c.Description = *input.Description
		}
		if input.IsPublic != nil {
			c.IsPublic = *input.IsPublic
		}
		if input.Color != nil {
			c.Color = *input.Color
		}
		if input.Icon != nil {
			c.Icon = *input.Icon
		}
		c.UpdatedAt = s.now()
	}
	s.loading = false
	if !found {
		s.lastErr = ErrCollectionNotFound.Error()
	}
	s.mu.Unlock()

	if !found {
		s.notify()
		return ErrCollectionNotFound
	}

	err := s.persist(ctx)
	s.notify()
	return err
}

// DeleteCollection removes a collection. The default collection is
// protected; the check happens synchronously, before any loading change.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i := range s.collections {
		if s.collections[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.lastErr = ErrCollectionNotFound.Error()
		s.mu.Unlock()
		s.notify()
		return ErrCollectionNotFound
	}
	if s.collections[idx].IsDefault {
		s.lastErr = ErrDefaultCollectionProtected.Error()
		s.mu.Unlock()

		logger.Warn("Attempt to delete the default collection", map[string]interface{}{
			"user_id":       s.userID,
			"collection_id": id,
		})
		s.notify()
		return ErrDefaultCollectionProtected
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.notify()

	s.simulateLatency()

	s.mu.Lock()
	s.collections = append(s.collections[:idx], s.collections[idx+1:]...)
	if s.currentID == id {
		s.currentID = ""
	}
	s.loading = false
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return err
	}

	logger.Info("Favorites collection deleted", map[string]interface{}{
		"user_id":       s.userID,
		"collection_id": id,
	})
	return nil
}

// SetCurrentCollection marks a collection as the UI focus. Empty clears the
// selection. The value is not validated and not persisted.
func (s *Store) SetCurrentCollection(id string) {
	s.mu.Lock()
	s.currentID = id
	s.mu.Unlock()
	s.notify()
}

// GetDefaultCollection returns the collection flagged default, else the
// first collection, else nil.
func (s *Store) GetDefaultCollection() *model.FavoritesCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.defaultCollectionLocked(); c != nil {
		copied := copyCollection(*c)
		return &copied
	}
	return nil
}

func (s *Store) defaultCollectionLocked() *model.FavoritesCollection {
	for i := range s.collections {
		if s.collections[i].IsDefault {
			return &s.collections[i]
		}
	}
	if len(s.collections) > 0 {
		return &s.collections[0]
	}
	return nil
}

func (s *Store) resolveCollectionIDLocked(requested string) string {
	if requested != "" {
		return requested
	}
	if c := s.defaultCollectionLocked(); c != nil {
		return c.ID
	}
	return model.DefaultCollectionID
}

// ClearError clears the last recorded error.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.notify()
}

// Reset empties the aggregate and persists the empty snapshot. Used on
// logout and account removal.
func (s *Store) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.collections = []model.FavoritesCollection{}
	s.items = []model.FavoriteItem{}
	s.currentID = ""
	s.loading = false
	s.lastErr = ""
	s.totalCount = 0
	s.mu.Unlock()

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return err
	}

	logger.Info("Favorites store reset", map[string]interface{}{
		"user_id": s.userID,
	})
	return nil
}

// Hydrate replaces the aggregate with the persisted snapshot. A missing or
// incompatible snapshot bootstraps the default collection instead.
func (s *Store) Hydrate(ctx context.Context) error {
	snap, err := s.snapshots.Load(ctx, s.userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.applySnapshotLocked(snap)
	return nil
}

// LoadFavorites re-hydrates the flat item list from durable storage.
// Failures are recorded in the error field, never returned.
func (s *Store) LoadFavorites(ctx context.Context) {
	s.loadSnapshot(ctx, func(snap *Snapshot) {
		s.items = copyItems(snap.FavoriteItems)
		s.totalCount = len(s.items)
	})
}

// LoadCollections re-hydrates the collection list from durable storage.
// Failures are recorded in the error field, never returned.
func (s *Store) LoadCollections(ctx context.Context) {
	s.loadSnapshot(ctx, func(snap *Snapshot) {
		s.collections = copyCollections(snap.Collections)
	})
}

func (s *Store) loadSnapshot(ctx context.Context, apply func(*Snapshot)) {
	s.setLoading()
	s.simulateLatency()

	snap, err := s.snapshots.Load(ctx, s.userID)

	s.mu.Lock()
	switch {
	case err != nil:
		s.lastErr = err.Error()
		logger.Error("Failed to load favorites snapshot", err, map[string]interface{}{
			"user_id": s.userID,
		})
	case snap == nil || snap.Version != SnapshotVersion:
		if snap != nil {
			logger.Warn("Discarding favorites snapshot with unknown version", map[string]interface{}{
				"user_id": s.userID,
				"version": snap.Version,
			})
		}
		s.applySnapshotLocked(nil)
	default:
		apply(snap)
	}
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// applySnapshotLocked installs snap, or the bootstrap state when snap is
// nil or from an unknown schema version. Callers hold mu.
func (s *Store) applySnapshotLocked(snap *Snapshot) {
	if snap == nil || snap.Version != SnapshotVersion {
		now := s.now()
		s.collections = []model.FavoritesCollection{{
			ID:        model.DefaultCollectionID,
			Name:      "Mis favoritos",
			Items:     []model.FavoriteItem{},
			IsDefault: true,
			Color:     model.DefaultCollectionColor,
			Icon:      model.DefaultCollectionIcon,
			CreatedAt: now,
			UpdatedAt: now,
		}}
		s.items = []model.FavoriteItem{}
		s.totalCount = 0
		return
	}

	s.collections = copyCollections(snap.Collections)
	s.items = copyItems(snap.FavoriteItems)
	s.totalCount = len(s.items)
}

// RefreshAvailability re-resolves the availability of every favorited item
// through the supplied resolver and rewrites the denormalized snapshots.
// Runs without simulated latency; meant for background jobs.
func (s *Store) RefreshAvailability(ctx context.Context, resolve func(model.ItemType, string) (*model.Availability, bool)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	changed := 0
	update := func(it *model.FavoriteItem) {
		availability, ok := resolve(it.ItemType, it.ItemID)
		if !ok || availability == nil {
			return
		}
		if it.ItemData.Availability != *availability {
			it.ItemData.Availability = *availability
			changed++
		}
	}
	for i := range s.items {
		update(&s.items[i])
	}
	for c := range s.collections {
		for i := range s.collections[c].Items {
			update(&s.collections[c].Items[i])
		}
	}
	s.mu.Unlock()

	if changed == 0 {
		return nil
	}

	err := s.persist(ctx)
	s.notify()
	if err != nil {
		return err
	}

	logger.Info("Favorites availability refreshed", map[string]interface{}{
		"user_id": s.userID,
		"changed": changed,
	})
	return nil
}

// State returns a deep copy of the aggregate.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	st := State{
		Collections:   copyCollections(s.collections),
		FavoriteItems: copyItems(s.items),
		Loading:       s.loading,
		Error:         s.lastErr,
		TotalCount:    s.totalCount,
	}
	if s.currentID != "" {
		for i := range s.collections {
			if s.collections[i].ID == s.currentID {
				current := copyCollection(s.collections[i])
				st.CurrentCollection = &current
				break
			}
		}
	}
	return st
}

// Subscribe registers an observer invoked with a state copy after every
// state change. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	st := s.State()

	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func (s *Store) setLoading() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) simulateLatency() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}

func (s *Store) persist(ctx context.Context) error {
	s.mu.RLock()
	snap := &Snapshot{
		Version:       SnapshotVersion,
		Collections:   copyCollections(s.collections),
		FavoriteItems: copyItems(s.items),
		TotalCount:    s.totalCount,
	}
	s.mu.RUnlock()

	if err := s.snapshots.Save(ctx, s.userID, snap); err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}
	return nil
}

func placeholderSnapshot(itemType model.ItemType) model.ItemSnapshot {
	// Stored until the catalog snapshot is resolved by the caller or the
	// availability refresher.
	return model.ItemSnapshot{
		ServiceType: string(itemType),
		Price:       model.Price{Currency: "COP"},
		Availability: model.Availability{
			Available: true,
		},
	}
}

func copyItem(it model.FavoriteItem) model.FavoriteItem {
	copied := it
	copied.Tags = append([]string(nil), it.Tags...)
	return copied
}

func copyItems(items []model.FavoriteItem) []model.FavoriteItem {
	out := make([]model.FavoriteItem, len(items))
	for i := range items {
		out[i] = copyItem(items[i])
	}
	return out
}

func copyCollection(c model.FavoritesCollection) model.FavoritesCollection {
	copied := c
	copied.Items = copyItems(c.Items)
	return copied
}

func copyCollections(collections []model.FavoritesCollection) []model.FavoritesCollection {
	out := make([]model.FavoritesCollection, len(collections))
	for i := range collections {
		out[i] = copyCollection(collections[i])
	}
	return out
}
