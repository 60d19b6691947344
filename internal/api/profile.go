package api

import (
	"net/http" // HTTP status codes

	"service_reporting/internal/middleware" // Current user lookup
	"service_reporting/internal/services"   // Business services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Request struct for profile updates; omitted fields stay unchanged
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"` // New first name
	LastName  *string `json:"last_name"`  // New last name
	Email     *string `json:"email"`      // New email, must be unused
	Password  *string `json:"password"`   // New password, re-hashed
}

// GetProfileHandler returns the caller's own profile
func GetProfileHandler(svc *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get the user loaded by the role gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		profile, err := svc.Get(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler changes the caller's name, email or password
func UpdateProfileHandler(svc *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get the user loaded by the role gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		profile, err := svc.Update(c.Request.Context(), user.ID, services.ProfileUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":          user.ID,             // User ID
			"password_changed": req.Password != nil, // Never log the value
		}).Info("Profile updated")
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": profile})
	}
}
