package middleware

import (
	"net/http" // HTTP status codes

	"service_reporting/internal/apperr"   // Error kinds
	"service_reporting/internal/domain"   // Importing domain models
	"service_reporting/internal/services" // User lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequireRoles loads the user named by the token on each request and checks
// the role stored in the database, never one carried by the token.
func RequireRoles(auth *services.AuthService, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID) // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), userID.(uint)) // Fetch user from database
		if err != nil {
			if apperr.Is(err, apperr.KindAuth) {
				// Token names a user that no longer exists
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.MessageOf(err)})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to load user") // Log lookup failure
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		// Check the current role against the allowed set
		for _, role := range roles {
			if user.Role == role {
				c.Set(ContextUser, user) // Store the loaded user for handlers
				c.Next()                 // Proceed to the next handler
				return
			}
		}
		// Role not allowed, abort with forbidden status
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	}
}

// CurrentUser returns the user stored by RequireRoles
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
