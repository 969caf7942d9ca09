package service

import (
	"errors"

	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrDestinationNotFound = errors.New("destination not found")

type DestinationService interface {
	GetDestinations(q repository.DestinationQuery) ([]model.Destination, int64, error)
	GetDestinationByID(id uint) (*model.Destination, error)
	GetPopularDestinations(limit int) ([]model.Destination, error)
	GetGuides(destinationID uint) ([]model.Guide, error)
}

type destinationService struct {
	destinationRepo repository.DestinationRepository
}

func NewDestinationService(destinationRepo repository.DestinationRepository) DestinationService {
	return &destinationService{destinationRepo: destinationRepo}
}

func (s *destinationService) GetDestinations(q repository.DestinationQuery) ([]model.Destination, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	destinations, total, err := s.destinationRepo.FindAll(q)
	if err != nil {
		logger.Error("Failed to fetch destinations", err, map[string]interface{}{
			"department": q.Department,
			"region":     q.Region,
		})
		return nil, 0, err
	}
	return destinations, total, nil
}

func (s *destinationService) GetDestinationByID(id uint) (*model.Destination, error) {
	destination, err := s.destinationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Destination not found", map[string]interface{}{
				"destination_id": id,
			})
			return nil, ErrDestinationNotFound
		}
		logger.Error("Failed to fetch destination", err, map[string]interface{}{
			"destination_id": id,
		})
		return nil, err
	}
	return destination, nil
}

func (s *destinationService) GetPopularDestinations(limit int) ([]model.Destination, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.destinationRepo.FindPopular(limit)
}

func (s *destinationService) GetGuides(destinationID uint) ([]model.Guide, error) {
	if _, err := s.GetDestinationByID(destinationID); err != nil {
		return nil, err
	}
	return s.destinationRepo.FindGuides(destinationID)
}
