package middleware

import (
	"time" // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS middleware for Gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORS allows the reporting front-end origins to call the API with credentials
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() } // Same-origin deployment, nothing to allow
	}
	cfg := cors.DefaultConfig()                                                             // Start from the library defaults
	cfg.AllowOrigins = origins                                                              // Front-end origins
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}                            // Methods the API uses
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", RequestIDHeader} // Headers clients send
	cfg.ExposeHeaders = []string{"Content-Disposition", RequestIDHeader}                    // Headers clients may read
	cfg.AllowCredentials = true                                                             // Cookies and auth headers
	cfg.MaxAge = 12 * time.Hour                                                             // Preflight cache
	return cors.New(cfg)
}
