package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wildtour/wildtour-backend/internal/app/controller"
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/internal/app/repository"
	"github.com/wildtour/wildtour-backend/internal/app/service"
	"github.com/wildtour/wildtour-backend/internal/db"
	"github.com/wildtour/wildtour-backend/internal/favorites"
	"github.com/wildtour/wildtour-backend/internal/middleware"
)

type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService service.AuthService
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	destinationRepo := repository.NewDestinationRepository(testDB)
	activityRepo := repository.NewActivityRepository(testDB)
	accommodationRepo := repository.NewAccommodationRepository(testDB)
	packageRepo := repository.NewPackageRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	authService := service.NewAuthService(
		userRepo,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	destinationService := service.NewDestinationService(destinationRepo)
	catalogService := service.NewCatalogService(activityRepo, accommodationRepo, packageRepo)
	reviewService := service.NewReviewService(reviewRepo, destinationRepo)
	snapshotService := service.NewSnapshotService(catalogService)

	manager := favorites.NewManager(favorites.NewMemorySnapshotStore(), favorites.Options{})

	authController := controller.NewAuthController(authService, manager, false, 15*time.Minute)
	destinationController := controller.NewDestinationController(destinationService)
	reviewController := controller.NewReviewController(reviewService)
	favoritesController := controller.NewFavoritesController(manager, snapshotService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret", false)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authMiddleware.Authenticate(), authController.Logout)
		}

		destinations := v1.Group("/destinations")
		{
			destinations.GET("", destinationController.GetDestinations)
			destinations.GET("/:id", destinationController.GetDestination)
			destinations.POST("/:id/reviews", authMiddleware.Authenticate(), reviewController.CreateReview)
		}

		favoritesGroup := v1.Group("/favorites", authMiddleware.Authenticate())
		{
			favoritesGroup.GET("", favoritesController.GetState)
			favoritesGroup.POST("", favoritesController.AddFavorite)
			favoritesGroup.POST("/search", favoritesController.SearchFavorites)
			favoritesGroup.DELETE("/items/:itemId", favoritesController.RemoveFavorite)
			favoritesGroup.GET("/items/:itemId", favoritesController.CheckFavorite)

			collections := favoritesGroup.Group("/collections")
			{
				collections.POST("", favoritesController.CreateCollection)
				collections.DELETE("/:id", favoritesController.DeleteCollection)
			}
		}
	}

	return &TestServer{
		Router:      router,
		DB:          testDB,
		AuthService: authService,
	}
}

func (ts *TestServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	_, tokens, err := ts.AuthService.Register(email, "secreto123", "Ana María", "Colombia")
	require.NoError(t, err)
	return tokens.AccessToken
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIntegration_FavoriteLifecycle(t *testing.T) {
	ts := setupIntegrationTest(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	destination := model.Destination{
		Name:       "Parque Tayrona",
		City:       "Santa Marta",
		Department: "Magdalena",
		Region:     model.RegionCaribe,
	}
	require.NoError(t, ts.DB.Create(&destination).Error)
	accommodation := model.Accommodation{
		DestinationID: destination.ID,
		Name:          "Ecohabs Tayrona",
		Kind:          model.KindEcoLodge,
		PricePerNight: 450000,
		Currency:      "COP",
		Available:     true,
	}
	require.NoError(t, ts.DB.Create(&accommodation).Error)

	itemID := fmt.Sprint(accommodation.ID)

	// Add the accommodation to favorites; the catalog snapshot is resolved.
	w := ts.do(t, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"item_type": "accommodation",
		"item_id":   itemID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	favorite := body["favorite"].(map[string]interface{})
	itemData := favorite["item_data"].(map[string]interface{})
	assert.Equal(t, "Ecohabs Tayrona", itemData["title"])

	// Duplicate add conflicts and leaves the list unchanged.
	w = ts.do(t, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"item_type": "accommodation",
		"item_id":   itemID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decodeBody(t, w)
	assert.Equal(t, float64(1), state["total_count"])

	// Membership check.
	w = ts.do(t, http.MethodGet, "/api/v1/favorites/items/"+itemID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_favorite"])

	// Removal is idempotent.
	for i := 0; i < 2; i++ {
		w = ts.do(t, http.MethodDelete, "/api/v1/favorites/items/"+itemID, token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = ts.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	state = decodeBody(t, w)
	assert.Equal(t, float64(0), state["total_count"])
}

func TestIntegration_CollectionProtection(t *testing.T) {
	ts := setupIntegrationTest(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	// Create a secondary collection.
	w := ts.do(t, http.MethodPost, "/api/v1/favorites/collections", token, gin.H{
		"name": "Wishlist",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	collection := decodeBody(t, w)["collection"].(map[string]interface{})
	wishlistID := collection["id"].(string)

	// The default collection cannot be deleted.
	w = ts.do(t, http.MethodDelete, "/api/v1/favorites/collections/"+model.DefaultCollectionID, token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The secondary one can.
	w = ts.do(t, http.MethodDelete, "/api/v1/favorites/collections/"+wishlistID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/favorites", token, nil)
	state := decodeBody(t, w)
	collections := state["collections"].([]interface{})
	require.Len(t, collections, 1)
	first := collections[0].(map[string]interface{})
	assert.Equal(t, true, first["is_default"])
}

func TestIntegration_SearchFavorites(t *testing.T) {
	ts := setupIntegrationTest(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	// service_post has no catalog table; the placeholder snapshot is used
	// and tags still make the item searchable.
	w := ts.do(t, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"item_type": "service_post",
		"item_id":   "post-77",
		"tags":      []string{"selva", "fotografía"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/favorites/search", token, gin.H{
		"query": "selva",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = ts.do(t, http.MethodPost, "/api/v1/favorites/search", token, gin.H{
		"query": "nevado",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestIntegration_ReviewFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	token := ts.registerAndLogin(t, "ana@example.com")

	destination := model.Destination{
		Name:       "Leticia",
		City:       "Leticia",
		Department: "Amazonas",
		Region:     model.RegionAmazonia,
	}
	require.NoError(t, ts.DB.Create(&destination).Error)

	path := fmt.Sprintf("/api/v1/destinations/%d/reviews", destination.ID)

	w := ts.do(t, http.MethodPost, path, token, gin.H{
		"rating":  5,
		"comment": "El amanecer en el río es inolvidable",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// One review per user per destination.
	w = ts.do(t, http.MethodPost, path, token, gin.H{
		"rating": 3,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIntegration_UnauthenticatedFavoritesRejected(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.do(t, http.MethodGet, "/api/v1/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
