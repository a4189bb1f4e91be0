package router

import (
	"github.com/gin-gonic/gin"

	"github.com/virtualfridge/backend/internal/api"
	"github.com/virtualfridge/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	productHandler *api.ProductHandler,
	userHandler *api.UserHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public auth routes
	authHandler.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		authHandler.RegisterProtectedRoutes(protected)
		productHandler.RegisterRoutes(protected)
		userHandler.RegisterRoutes(protected)
		recipeHandler.RegisterRoutes(protected)
	}

	return router
}
