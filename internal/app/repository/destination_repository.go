package repository

import (
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

// DestinationQuery narrows a destination listing.
type DestinationQuery struct {
	Department string
	Region     model.DestinationRegion
	Search     string // substring match on name/city
	Limit      int
	Offset     int
}

type DestinationRepository interface {
	FindAll(q DestinationQuery) ([]model.Destination, int64, error)
	FindByID(id uint) (*model.Destination, error)
	FindPopular(limit int) ([]model.Destination, error)
	FindGuides(destinationID uint) ([]model.Guide, error)
	Create(destination *model.Destination) error
	BulkCreate(destinations []model.Destination, batchSize int) error
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) FindAll(q DestinationQuery) ([]model.Destination, int64, error) {
	logger.Debug("Finding destinations in database", map[string]interface{}{
		"department": q.Department,
		"region":     q.Region,
		"search":     q.Search,
	})

	tx := r.db.Model(&model.Destination{})
	if q.Department != "" {
		tx = tx.Where("department = ?", q.Department)
	}
	if q.Region != "" {
		tx = tx.Where("region = ?", q.Region)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("name LIKE ? OR city LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var destinations []model.Destination
	if err := tx.Order("rating DESC").Find(&destinations).Error; err != nil {
		logger.Error("Failed to find destinations in database", err, nil)
		return nil, 0, err
	}
	return destinations, total, nil
}

func (r *destinationRepository) FindByID(id uint) (*model.Destination, error) {
	var destination model.Destination
	err := r.db.
		Preload("Activities").
		Preload("Accommodations").
		Preload("Guides").
		Preload("Packages").
		First(&destination, id).Error
	if err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) FindPopular(limit int) ([]model.Destination, error) {
	var destinations []model.Destination
	err := r.db.Order("rating DESC").Limit(limit).Find(&destinations).Error
	if err != nil {
		logger.Error("Failed to find popular destinations", err, nil)
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) FindGuides(destinationID uint) ([]model.Guide, error) {
	var guides []model.Guide
	err := r.db.Where("destination_id = ?", destinationID).
		Order("rating DESC").
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *destinationRepository) Create(destination *model.Destination) error {
	if err := r.db.Create(destination).Error; err != nil {
		logger.Error("Failed to create destination in database", err, map[string]interface{}{
			"destination": destination.Name,
		})
		return err
	}
	return nil
}

func (r *destinationRepository) BulkCreate(destinations []model.Destination, batchSize int) error {
	logger.Info("Bulk creating destinations", map[string]interface{}{
		"count":      len(destinations),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(destinations, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create destinations", err, nil)
		return err
	}
	return nil
}
