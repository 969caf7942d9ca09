package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	apperrors "github.com/wildtour/wildtour-backend/internal/errors"
	"github.com/wildtour/wildtour-backend/internal/favorites"
	"github.com/wildtour/wildtour-backend/internal/middleware"
)

// FavoritesController exposes a traveler's favorites and collections. Every
// handler resolves the per-user store through the manager; the catalog
// snapshot service enriches newly added items.
type FavoritesController struct {
	manager   *favorites.Manager
	snapshots service.SnapshotService
}

func NewFavoritesController(manager *favorites.Manager, snapshots service.SnapshotService) *FavoritesController {
	return &FavoritesController{
		manager:   manager,
		snapshots: snapshots,
	}
}

type AddFavoriteRequest struct {
	ItemType     string   `json:"item_type" binding:"required"`
	ItemID       string   `json:"item_id" binding:"required"`
	CollectionID string   `json:"collection_id"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
}

type UpdateFavoriteRequest struct {
	Notes        *string   `json:"notes"`
	Tags         *[]string `json:"tags"`
	CollectionID *string   `json:"collection_id"`
}

type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

type UpdateCollectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

type SearchFavoritesRequest struct {
	Query   string                `json:"query"`
	Filters model.FavoriteFilters `json:"filters"`
}

func (ctrl *FavoritesController) storeFor(c *gin.Context) (*favorites.Store, uint, bool) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Debes iniciar sesión")
		return nil, 0, false
	}

	store, err := ctrl.manager.StoreFor(c.Request.Context(), userID)
	if err != nil {
		log.Error("Failed to hydrate favorites store", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos cargar tus favoritos, inténtalo de nuevo")
		return nil, 0, false
	}
	return store, userID, true
}

// GetState returns the full favorites aggregate
// GET /api/v1/favorites
func (ctrl *FavoritesController) GetState(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, store.State())
}

// AddFavorite adds a catalog item to the user's favorites
// POST /api/v1/favorites
func (ctrl *FavoritesController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, userID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos ingresados no son válidos")
		return
	}

	itemType := model.ItemType(req.ItemType)
	if !itemType.Valid() {
		apperrors.BadRequest(c, apperrors.FavoriteInvalidItemType, "Tipo de elemento desconocido")
		return
	}

	// Unresolvable items (service posts, stale ids) fall back to the store's
	// placeholder snapshot.
	itemData, _ := ctrl.snapshots.BuildSnapshot(itemType, req.ItemID)

	item, err := store.AddToFavorites(c.Request.Context(), favorites.AddToFavoritesInput{
		ItemType:     itemType,
		ItemID:       req.ItemID,
		CollectionID: req.CollectionID,
		Notes:        req.Notes,
		Tags:         req.Tags,
		ItemData:     itemData,
	})
	if err != nil {
		if errors.Is(err, favorites.ErrAlreadyFavorite) {
			apperrors.Conflict(c, apperrors.FavoriteAlreadyExists, "Este elemento ya está en tus favoritos")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id": userID,
			"item_id": req.ItemID,
		})
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos guardar el favorito, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Agregado a favoritos",
		"favorite": item,
	})
}

// RemoveFavorite removes an item from favorites (idempotent)
// DELETE /api/v1/favorites/items/:itemId
func (ctrl *FavoritesController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, userID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	itemID := c.Param("itemId")
	if err := store.RemoveFromFavorites(c.Request.Context(), itemID); err != nil {
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos actualizar tus favoritos, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Eliminado de favoritos",
	})
}

// UpdateFavorite partially updates a favorite by its internal id
// PATCH /api/v1/favorites/:id
func (ctrl *FavoritesController) UpdateFavorite(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos ingresados no son válidos")
		return
	}

	err := store.UpdateFavorite(c.Request.Context(), c.Param("id"), favorites.UpdateFavoriteInput{
		Notes:        req.Notes,
		Tags:         req.Tags,
		CollectionID: req.CollectionID,
	})
	if err != nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos actualizar tus favoritos, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorito actualizado",
	})
}

// CheckFavorite reports whether an item is favorited
// GET /api/v1/favorites/items/:itemId
func (ctrl *FavoritesController) CheckFavorite(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	itemID := c.Param("itemId")
	favorite := store.GetFavoriteByItemID(itemID)
	c.JSON(http.StatusOK, gin.H{
		"is_favorite": favorite != nil,
		"favorite":    favorite,
	})
}

// SearchFavorites filters the favorites list
// POST /api/v1/favorites/search
func (ctrl *FavoritesController) SearchFavorites(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req SearchFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos ingresados no son válidos")
		return
	}

	results := store.SearchFavorites(req.Query, req.Filters)
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// CreateCollection creates a new collection
// POST /api/v1/favorites/collections
func (ctrl *FavoritesController) CreateCollection(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "El nombre de la colección es obligatorio")
		return
	}

	collection, err := store.CreateCollection(c.Request.Context(), favorites.CreateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos crear la colección, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Colección creada",
		"collection": collection,
	})
}

// UpdateCollection partially updates a collection
// PATCH /api/v1/favorites/collections/:id
func (ctrl *FavoritesController) UpdateCollection(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	var req UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos ingresados no son válidos")
		return
	}

	err := store.UpdateCollection(c.Request.Context(), c.Param("id"), favorites.UpdateCollectionInput{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, favorites.ErrCollectionNotFound) {
			apperrors.NotFound(c, apperrors.CollectionNotFound, "Colección no encontrada")
			return
		}
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos actualizar la colección, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Colección actualizada",
	})
}

// DeleteCollection deletes a non-default collection
// DELETE /api/v1/favorites/collections/:id
func (ctrl *FavoritesController) DeleteCollection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, userID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := store.DeleteCollection(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, favorites.ErrDefaultCollectionProtected):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.CollectionDefaultProtected, "No puedes eliminar tu colección principal")
		case errors.Is(err, favorites.ErrCollectionNotFound):
			apperrors.NotFound(c, apperrors.CollectionNotFound, "Colección no encontrada")
		default:
			log.Error("Failed to delete collection", err, map[string]interface{}{
				"user_id":       userID,
				"collection_id": id,
			})
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos eliminar la colección, inténtalo de nuevo")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Colección eliminada",
	})
}

// SelectCollection marks a collection as the UI focus
// PUT /api/v1/favorites/collections/:id/select
func (ctrl *FavoritesController) SelectCollection(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "-" {
		id = ""
	}
	store.SetCurrentCollection(id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Colección seleccionada",
	})
}

// GetDefaultCollection returns the default (or first) collection
// GET /api/v1/favorites/collections/default
func (ctrl *FavoritesController) GetDefaultCollection(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	collection := store.GetDefaultCollection()
	if collection == nil {
		apperrors.NotFound(c, apperrors.CollectionNotFound, "No tienes colecciones")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"collection": collection,
	})
}

// Reload re-hydrates the aggregate from durable storage
// POST /api/v1/favorites/reload
func (ctrl *FavoritesController) Reload(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	store.LoadCollections(c.Request.Context())
	store.LoadFavorites(c.Request.Context())
	c.JSON(http.StatusOK, store.State())
}

// ClearError clears the last recorded store error
// POST /api/v1/favorites/clear-error
func (ctrl *FavoritesController) ClearError(c *gin.Context) {
	store, _, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	store.ClearError()
	c.JSON(http.StatusOK, gin.H{
		"message": "Error descartado",
	})
}

// Reset wipes the user's favorites entirely
// POST /api/v1/favorites/reset
func (ctrl *FavoritesController) Reset(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	store, userID, ok := ctrl.storeFor(c)
	if !ok {
		return
	}

	if err := store.Reset(c.Request.Context()); err != nil {
		log.Error("Failed to reset favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.FavoriteStorageUnavailable, "No pudimos restablecer tus favoritos, inténtalo de nuevo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favoritos restablecidos",
	})
}
