package service

import (
	"errors"

	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewAlreadyExists = errors.New("user already reviewed this destination")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	CreateReview(review *model.Review) error
	GetDestinationReviews(destinationID uint) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	destinationRepo repository.DestinationRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	destinationRepo repository.DestinationRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		destinationRepo: destinationRepo,
	}
}

func (s *reviewService) CreateReview(review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	if _, err := s.destinationRepo.FindByID(review.DestinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}

	existing, err := s.reviewRepo.FindByUserAndDestination(review.UserID, review.DestinationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing review", err, map[string]interface{}{
			"user_id":        review.UserID,
			"destination_id": review.DestinationID,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Duplicate review rejected", map[string]interface{}{
			"user_id":        review.UserID,
			"destination_id": review.DestinationID,
		})
		return ErrReviewAlreadyExists
	}

	if err := s.reviewRepo.Create(review); err != nil {
		return err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":      review.ID,
		"user_id":        review.UserID,
		"destination_id": review.DestinationID,
		"rating":         review.Rating,
	})
	return nil
}

func (s *reviewService) GetDestinationReviews(destinationID uint) ([]model.Review, error) {
	if _, err := s.destinationRepo.FindByID(destinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return s.reviewRepo.FindByDestination(destinationID)
}
