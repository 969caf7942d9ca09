package service

import (
	"errors"

	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrPackageNotFound       = errors.New("tour package not found")
)

// CatalogService exposes the bookable entities under a destination.
type CatalogService interface {
	GetActivities(q repository.ActivityQuery) ([]model.Activity, error)
	GetActivityByID(id uint) (*model.Activity, error)
	GetAccommodations(q repository.AccommodationQuery) ([]model.Accommodation, error)
	GetAccommodationByID(id uint) (*model.Accommodation, error)
	GetPackages(destinationID uint) ([]model.TourPackage, error)
	GetPackageByID(id uint) (*model.TourPackage, error)
}

type catalogService struct {
	activityRepo      repository.ActivityRepository
	accommodationRepo repository.AccommodationRepository
	packageRepo       repository.PackageRepository
}

func NewCatalogService(
	activityRepo repository.ActivityRepository,
	accommodationRepo repository.AccommodationRepository,
	packageRepo repository.PackageRepository,
) CatalogService {
	return &catalogService{
		activityRepo:      activityRepo,
		accommodationRepo: accommodationRepo,
		packageRepo:       packageRepo,
	}
}

func (s *catalogService) GetActivities(q repository.ActivityQuery) ([]model.Activity, error) {
	activities, err := s.activityRepo.FindAll(q)
	if err != nil {
		logger.Error("Failed to fetch activities", err, map[string]interface{}{
			"destination_id": q.DestinationID,
			"category":       q.Category,
		})
		return nil, err
	}
	return activities, nil
}

func (s *catalogService) GetActivityByID(id uint) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

func (s *catalogService) GetAccommodations(q repository.AccommodationQuery) ([]model.Accommodation, error) {
	accommodations, err := s.accommodationRepo.FindAll(q)
	if err != nil {
		logger.Error("Failed to fetch accommodations", err, map[string]interface{}{
			"destination_id": q.DestinationID,
			"kind":           q.Kind,
		})
		return nil, err
	}
	return accommodations, nil
}

func (s *catalogService) GetAccommodationByID(id uint) (*model.Accommodation, error) {
	accommodation, err := s.accommodationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccommodationNotFound
		}
		return nil, err
	}
	return accommodation, nil
}

func (s *catalogService) GetPackages(destinationID uint) ([]model.TourPackage, error) {
	return s.packageRepo.FindAll(destinationID)
}

func (s *catalogService) GetPackageByID(id uint) (*model.TourPackage, error) {
	pkg, err := s.packageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}
