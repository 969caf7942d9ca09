package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	apperrors "github.com/wildtour/wildtour-backend/internal/errors"
	"github.com/wildtour/wildtour-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetActivities lists activities with optional filters
// GET /api/v1/activities?destination_id=&category=&max_price=&available=
func (ctrl *CatalogController) GetActivities(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	destinationID, _ := strconv.ParseUint(c.Query("destination_id"), 10, 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	query := repository.ActivityQuery{
		DestinationID: uint(destinationID),
		Category:      model.ActivityCategory(c.Query("category")),
		MaxPrice:      maxPrice,
		OnlyAvailable: c.Query("available") == "true",
	}

	activities, err := ctrl.catalogService.GetActivities(query)
	if err != nil {
		log.Error("Failed to list activities", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"count":      len(activities),
	})
}

// GetAccommodations lists accommodations with optional filters
// GET /api/v1/accommodations?destination_id=&kind=&max_price=&available=
func (ctrl *CatalogController) GetAccommodations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	destinationID, _ := strconv.ParseUint(c.Query("destination_id"), 10, 64)
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	query := repository.AccommodationQuery{
		DestinationID: uint(destinationID),
		Kind:          model.AccommodationKind(c.Query("kind")),
		MaxPrice:      maxPrice,
		OnlyAvailable: c.Query("available") == "true",
	}

	accommodations, err := ctrl.catalogService.GetAccommodations(query)
	if err != nil {
		log.Error("Failed to list accommodations", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodations": accommodations,
		"count":          len(accommodations),
	})
}

// GetPackages lists tour packages, optionally per destination
// GET /api/v1/packages?destination_id=
func (ctrl *CatalogController) GetPackages(c *gin.Context) {
	destinationID, _ := strconv.ParseUint(c.Query("destination_id"), 10, 64)

	packages, err := ctrl.catalogService.GetPackages(uint(destinationID))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"packages": packages,
		"count":    len(packages),
	})
}
