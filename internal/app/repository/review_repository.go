package repository

import (
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByDestination(destinationID uint) ([]model.Review, error)
	FindByUserAndDestination(userID, destinationID uint) (*model.Review, error)
	AverageRating(destinationID uint) (float64, error)
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":        review.UserID,
		"destination_id": review.DestinationID,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":        review.UserID,
			"destination_id": review.DestinationID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) FindByDestination(destinationID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("destination_id = ?", destinationID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews in database", err, map[string]interface{}{
			"destination_id": destinationID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndDestination(userID, destinationID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("user_id = ? AND destination_id = ?", userID, destinationID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) AverageRating(destinationID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&model.Review{}).
		Where("destination_id = ?", destinationID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *reviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
