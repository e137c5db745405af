package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupFallbackHandlers configures the 404 and 405 handlers
func SetupFallbackHandlers(router *gin.Engine) {
	router.HandleMethodNotAllowed = true

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "Method Not Allowed",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
		})
	})
}
