package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	apperrors "github.com/wildtour/wildtour-backend/internal/errors"
	"github.com/wildtour/wildtour-backend/internal/middleware"
)

type DestinationController struct {
	destinationService service.DestinationService
}

func NewDestinationController(destinationService service.DestinationService) *DestinationController {
	return &DestinationController{destinationService: destinationService}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "El identificador no es válido")
		return 0, false
	}
	return uint(id), true
}

// GetDestinations lists destinations with optional filters
// GET /api/v1/destinations?department=&region=&search=&limit=&offset=
func (ctrl *DestinationController) GetDestinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	query := repository.DestinationQuery{
		Department: c.Query("department"),
		Region:     model.DestinationRegion(c.Query("region")),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}

	destinations, total, err := ctrl.destinationService.GetDestinations(query)
	if err != nil {
		log.Error("Failed to list destinations", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destinations": destinations,
		"total":        total,
		"limit":        query.Limit,
		"offset":       query.Offset,
	})
}

// GetDestination returns one destination with its associations preloaded
// GET /api/v1/destinations/:id
func (ctrl *DestinationController) GetDestination(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	destination, err := ctrl.destinationService.GetDestinationByID(id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.DestinationNotFound, "Destino no encontrado")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destination": destination,
	})
}

// GetPopularDestinations returns the top-rated destinations
// GET /api/v1/destinations/popular?limit=
func (ctrl *DestinationController) GetPopularDestinations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	destinations, err := ctrl.destinationService.GetPopularDestinations(limit)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destinations": destinations,
	})
}

// GetGuides lists the certified guides of a destination
// GET /api/v1/destinations/:id/guides
func (ctrl *DestinationController) GetGuides(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	guides, err := ctrl.destinationService.GetGuides(id)
	if err != nil {
		if errors.Is(err, service.ErrDestinationNotFound) {
			apperrors.NotFound(c, apperrors.DestinationNotFound, "Destino no encontrado")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guides": guides,
	})
}
