package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	apperrors "github.com/wildtour/wildtour-backend/internal/errors"
	"github.com/wildtour/wildtour-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	Rating    int        `json:"rating" binding:"required,min=1,max=5"`
	Comment   string     `json:"comment"`
	VisitedAt *time.Time `json:"visited_at"`
}

// GetReviews lists a destination's reviews
// GET /api/v1/destinations/:id/reviews
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	destinationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.GetDestinationReviews(destinationID)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.DestinationNotFound, "Destino no encontrado")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// CreateReview creates a review for a destination
// POST /api/v1/destinations/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Debes iniciar sesión")
		return
	}

	destinationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "La calificación debe estar entre 1 y 5")
		return
	}

	review := &model.Review{
		UserID:        userID,
		DestinationID: destinationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		VisitedAt:     req.VisitedAt,
	}

	if err := ctrl.reviewService.CreateReview(review); err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotFound):
			apperrors.NotFound(c, apperrors.DestinationNotFound, "Destino no encontrado")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "La calificación debe estar entre 1 y 5")
		case errors.Is(err, service.ErrReviewAlreadyExists):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "Ya escribiste una reseña para este destino")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id":        userID,
				"destination_id": destinationID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reseña publicada",
		"review":  review,
	})
}
