package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/recipemagic/backend/internal/api"
	"github.com/recipemagic/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
	generateLimiter *middleware.RateLimiter,
	frontendURL string,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	router.GET("/health", api.HealthCheck)

	v1 := router.Group("/api/v1")
	authMW := middleware.AuthMiddleware(validator)

	authHandler.RegisterRoutes(v1, authMW)

	if generateLimiter != nil {
		recipeHandler.RegisterRoutes(v1, authMW, generateLimiter.RateLimitMiddleware())
	} else {
		recipeHandler.RegisterRoutes(v1, authMW)
	}

	return router
}
