package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"service_reporting/internal/apperr"   // Error kinds
	"service_reporting/internal/services" // Token parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID" // uint, the token identity
	ContextUser   = "user"   // *domain.User, loaded by RequireRoles
)

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		userID, err := auth.ParseToken(tokenStr)              // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.MessageOf(err)})
			return
		}
		c.Set(ContextUserID, userID) // Store userID in context
		c.Next()                     // Proceed to the next handler
	}
}
