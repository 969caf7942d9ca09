package repository

import (
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

// AccommodationQuery narrows an accommodation listing.
type AccommodationQuery struct {
	DestinationID uint
	Kind          model.AccommodationKind
	MaxPrice      float64
	OnlyAvailable bool
}

type AccommodationRepository interface {
	FindAll(q AccommodationQuery) ([]model.Accommodation, error)
	FindByID(id uint) (*model.Accommodation, error)
	Update(accommodation *model.Accommodation) error
}

type accommodationRepository struct {
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{db: db}
}

func (r *accommodationRepository) FindAll(q AccommodationQuery) ([]model.Accommodation, error) {
	tx := r.db.Model(&model.Accommodation{})
	if q.DestinationID != 0 {
		tx = tx.Where("destination_id = ?", q.DestinationID)
	}
	if q.Kind != "" {
		tx = tx.Where("kind = ?", q.Kind)
	}
	if q.MaxPrice > 0 {
		tx = tx.Where("price_per_night <= ?", q.MaxPrice)
	}
	if q.OnlyAvailable {
		tx = tx.Where("available = ?", true)
	}

	var accommodations []model.Accommodation
	if err := tx.Preload("Destination").Order("rating DESC").Find(&accommodations).Error; err != nil {
		logger.Error("Failed to find accommodations in database", err, map[string]interface{}{
			"destination_id": q.DestinationID,
		})
		return nil, err
	}
	return accommodations, nil
}

func (r *accommodationRepository) FindByID(id uint) (*model.Accommodation, error) {
	var accommodation model.Accommodation
	if err := r.db.Preload("Destination").First(&accommodation, id).Error; err != nil {
		return nil, err
	}
	return &accommodation, nil
}

func (r *accommodationRepository) Update(accommodation *model.Accommodation) error {
	if err := r.db.Save(accommodation).Error; err != nil {
		logger.Error("Failed to update accommodation in database", err, map[string]interface{}{
			"accommodation_id": accommodation.ID,
		})
		return err
	}
	return nil
}
