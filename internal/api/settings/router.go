package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/chatwidgetai/widget-relay/internal/loaders"
)

// RegisterRoutes registers the widget settings endpoints
func RegisterRoutes(router *gin.Engine, db *loaders.PostgresClient) {
	svc := NewService(db)
	ctrl := NewController(svc)

	router.GET("/settings", ctrl.Resolve)
	router.POST("/settings", ctrl.Save)
}
