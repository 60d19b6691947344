package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// HealthHandler reports whether the database answers. Redis is optional, so
// its state is reported without affecting the status code.
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
			return
		}
		cache := "disabled"
		if rdb != nil {
			cache = "up"
			if err := rdb.Ping(ctx).Err(); err != nil {
				cache = "down"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up", "cache": cache})
	}
}
