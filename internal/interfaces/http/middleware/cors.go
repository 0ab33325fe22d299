// internal/interfaces/http/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/your-org/loyalty-portal/internal/config"
)

// CORS returns a middleware that handles Cross-Origin Resource Sharing
// for the browser frontend
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.Security.CORSAllowedMethods,
		AllowHeaders:     cfg.Security.CORSAllowedHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	for _, origin := range cfg.Security.CORSAllowedOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			corsConfig.AllowCredentials = false
			corsConfig.AllowOrigins = nil
			break
		}
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}

	return cors.New(corsConfig)
}
