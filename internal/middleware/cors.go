package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the widget to call the gateway from any host page. The widget
// is embedded on arbitrary third-party domains, so the settings and chat
// endpoints must be origin-agnostic. Preflight OPTIONS requests short-circuit
// to 204 inside the cors handler.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:          24 * time.Hour,
	})
}
