package service

import (
	"strconv"

	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
)

// SnapshotService resolves the display snapshot captured when a catalog
// entity is favorited. Item ids are the catalog primary keys rendered as
// strings; an unresolvable item yields (nil, false) and the caller falls
// back to a placeholder snapshot.
type SnapshotService interface {
	BuildSnapshot(itemType model.ItemType, itemID string) (*model.ItemSnapshot, bool)
	ResolveAvailability(itemType model.ItemType, itemID string) (*model.Availability, bool)
}

type snapshotService struct {
	catalog CatalogService
}

func NewSnapshotService(catalog CatalogService) SnapshotService {
	return &snapshotService{catalog: catalog}
}

func (s *snapshotService) BuildSnapshot(itemType model.ItemType, itemID string) (*model.ItemSnapshot, bool) {
	id, err := strconv.ParseUint(itemID, 10, 64)
	if err != nil {
		return nil, false
	}

	switch itemType {
	case model.ItemTypeActivity:
		activity, err := s.catalog.GetActivityByID(uint(id))
		if err != nil {
			s.logMiss(itemType, itemID, err)
			return nil, false
		}
		return activitySnapshot(activity), true
	case model.ItemTypeAccommodation:
		accommodation, err := s.catalog.GetAccommodationByID(uint(id))
		if err != nil {
			s.logMiss(itemType, itemID, err)
			return nil, false
		}
		return accommodationSnapshot(accommodation), true
	case model.ItemTypePackage:
		pkg, err := s.catalog.GetPackageByID(uint(id))
		if err != nil {
			s.logMiss(itemType, itemID, err)
			return nil, false
		}
		return packageSnapshot(pkg), true
	default:
		// service_post has no catalog table.
		return nil, false
	}
}

func (s *snapshotService) ResolveAvailability(itemType model.ItemType, itemID string) (*model.Availability, bool) {
	snapshot, ok := s.BuildSnapshot(itemType, itemID)
	if !ok {
		return nil, false
	}
	availability := snapshot.Availability
	return &availability, true
}

func (s *snapshotService) logMiss(itemType model.ItemType, itemID string, err error) {
	logger.Debug("Catalog snapshot unresolved", map[string]interface{}{
		"item_type": itemType,
		"item_id":   itemID,
		"reason":    err.Error(),
	})
}

func activitySnapshot(a *model.Activity) *model.ItemSnapshot {
	snap := &model.ItemSnapshot{
		Title:       a.Name,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Price:       model.Price{Amount: a.Price, Currency: a.Currency, Unit: a.PriceUnit},
		Rating:      a.Rating,
		Provider:    model.SnapshotProvider{Name: a.ProviderName, BusinessName: a.BusinessName},
		ServiceType: string(a.Category),
		Availability: model.Availability{
			Available:         a.Available,
			NextAvailableDate: a.NextAvailable,
		},
	}
	if a.Destination != nil {
		snap.Location = destinationLocation(a.Destination)
	}
	return snap
}

func accommodationSnapshot(a *model.Accommodation) *model.ItemSnapshot {
	snap := &model.ItemSnapshot{
		Title:       a.Name,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Price:       model.Price{Amount: a.PricePerNight, Currency: a.Currency, Unit: "noche"},
		Rating:      a.Rating,
		Provider:    model.SnapshotProvider{Name: a.ProviderName, BusinessName: a.BusinessName},
		ServiceType: string(a.Kind),
		Availability: model.Availability{
			Available:         a.Available,
			NextAvailableDate: a.NextAvailable,
		},
	}
	if a.Destination != nil {
		snap.Location = destinationLocation(a.Destination)
	}
	return snap
}

func packageSnapshot(p *model.TourPackage) *model.ItemSnapshot {
	snap := &model.ItemSnapshot{
		Title:       p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       model.Price{Amount: p.Price, Currency: p.Currency, Unit: "persona"},
		Rating:      p.Rating,
		Provider:    model.SnapshotProvider{Name: p.ProviderName, BusinessName: p.BusinessName},
		ServiceType: string(model.ItemTypePackage),
		Availability: model.Availability{
			Available:         p.Available,
			NextAvailableDate: p.NextAvailable,
		},
	}
	if p.Destination != nil {
		snap.Location = destinationLocation(p.Destination)
	}
	return snap
}

func destinationLocation(d *model.Destination) model.SnapshotLocation {
	return model.SnapshotLocation{
		Name:       d.Name,
		City:       d.City,
		Department: d.Department,
	}
}
