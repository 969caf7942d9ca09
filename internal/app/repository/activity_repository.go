package repository

import (
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

// ActivityQuery narrows an activity listing.
type ActivityQuery struct {
	DestinationID uint
	Category      model.ActivityCategory
	MaxPrice      float64 // 0 means no ceiling
	OnlyAvailable bool
}

type ActivityRepository interface {
	FindAll(q ActivityQuery) ([]model.Activity, error)
	FindByID(id uint) (*model.Activity, error)
	Update(activity *model.Activity) error
	BulkCreate(activities []model.Activity, batchSize int) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) FindAll(q ActivityQuery) ([]model.Activity, error) {
	tx := r.db.Model(&model.Activity{})
	if q.DestinationID != 0 {
		tx = tx.Where("destination_id = ?", q.DestinationID)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.MaxPrice > 0 {
		tx = tx.Where("price <= ?", q.MaxPrice)
	}
	if q.OnlyAvailable {
		tx = tx.Where("available = ?", true)
	}

	var activities []model.Activity
	if err := tx.Preload("Destination").Order("rating DESC").Find(&activities).Error; err != nil {
		logger.Error("Failed to find activities in database", err, map[string]interface{}{
			"destination_id": q.DestinationID,
		})
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) FindByID(id uint) (*model.Activity, error) {
	var activity model.Activity
	if err := r.db.Preload("Destination").First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) Update(activity *model.Activity) error {
	if err := r.db.Save(activity).Error; err != nil {
		logger.Error("Failed to update activity in database", err, map[string]interface{}{
			"activity_id": activity.ID,
		})
		return err
	}
	return nil
}

func (r *activityRepository) BulkCreate(activities []model.Activity, batchSize int) error {
	if err := r.db.CreateInBatches(activities, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create activities", err, nil)
		return err
	}
	return nil
}
