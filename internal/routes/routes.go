package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/chatwidgetai/widget-relay/internal/api/chat"
	"github.com/chatwidgetai/widget-relay/internal/api/settings"
	"github.com/chatwidgetai/widget-relay/internal/config"
	"github.com/chatwidgetai/widget-relay/internal/loaders"
	"github.com/chatwidgetai/widget-relay/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *loaders.PostgresClient, cfg *config.Config) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Setup route groups
	SetupHealthRoutes(router, db)
	settings.RegisterRoutes(router, db)
	chat.RegisterRoutes(router, db, cfg)
	SetupFallbackHandlers(router)
}
