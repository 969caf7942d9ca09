package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wildtour/wildtour-backend/config"
	"github.com/wildtour/wildtour-backend/internal/app/controller"
	"github.com/wildtour/wildtour-backend/internal/middleware"
	"github.com/wildtour/wildtour-backend/internal/ws"
)

type Router struct {
	authController        *controller.AuthController
	destinationController *controller.DestinationController
	catalogController     *controller.CatalogController
	reviewController      *controller.ReviewController
	favoritesController   *controller.FavoritesController
	uploadController      *controller.UploadController
	hub                   *ws.Hub
	authMiddleware        *middleware.AuthMiddleware
	config                *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	destinationController *controller.DestinationController,
	catalogController *controller.CatalogController,
	reviewController *controller.ReviewController,
	favoritesController *controller.FavoritesController,
	uploadController *controller.UploadController,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:        authController,
		destinationController: destinationController,
		catalogController:     catalogController,
		reviewController:      reviewController,
		favoritesController:   favoritesController,
		uploadController:      uploadController,
		hub:                   hub,
		authMiddleware:        authMiddleware,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Wild Tour Colombia API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		destinations := v1.Group("/destinations")
		{
			destinations.GET("", r.destinationController.GetDestinations)
			destinations.GET("/popular", r.destinationController.GetPopularDestinations)
			destinations.GET("/:id", r.destinationController.GetDestination)
			destinations.GET("/:id/guides", r.destinationController.GetGuides)
			destinations.GET("/:id/reviews", r.reviewController.GetReviews)
			destinations.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.CreateReview,
			)
		}

		v1.GET("/activities", r.catalogController.GetActivities)
		v1.GET("/accommodations", r.catalogController.GetAccommodations)
		v1.GET("/packages", r.catalogController.GetPackages)

		favoritesGroup := v1.Group("/favorites", r.authMiddleware.Authenticate())
		{
			favoritesGroup.GET("", r.favoritesController.GetState)
			favoritesGroup.POST("", r.favoritesController.AddFavorite)
			favoritesGroup.GET("/ws", ws.Serve(r.hub))
			favoritesGroup.POST("/search", r.favoritesController.SearchFavorites)
			favoritesGroup.POST("/reload", r.favoritesController.Reload)
			favoritesGroup.POST("/clear-error", r.favoritesController.ClearError)
			favoritesGroup.POST("/reset", r.favoritesController.Reset)
			favoritesGroup.GET("/items/:itemId", r.favoritesController.CheckFavorite)
			favoritesGroup.DELETE("/items/:itemId", r.favoritesController.RemoveFavorite)
			favoritesGroup.PATCH("/:id", r.favoritesController.UpdateFavorite)

			collections := favoritesGroup.Group("/collections")
			{
				collections.POST("", r.favoritesController.CreateCollection)
				collections.GET("/default", r.favoritesController.GetDefaultCollection)
				collections.PATCH("/:id", r.favoritesController.UpdateCollection)
				collections.DELETE("/:id", r.favoritesController.DeleteCollection)
				collections.PUT("/:id/select", r.favoritesController.SelectCollection)
			}
		}

		upload := v1.Group("/upload", r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url",
				r.authMiddleware.RequireRole("provider", "admin"),
				r.uploadController.GeneratePresignedURL,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
