package api

import (
	"net/http" // HTTP status codes

	"service_reporting/internal/services" // Business services

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Request struct for registration
type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required"`    // First name must be provided
	LastName     string `json:"last_name" binding:"required"`     // Last name must be provided
	Email        string `json:"email" binding:"required"`         // Email must be provided
	Password     string `json:"password" binding:"required"`      // Password must be provided
	DepartmentID uint   `json:"department_id" binding:"required"` // Department must be provided
	Role         string `json:"role"`                             // Optional, defaults to department_user
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	AccessToken  string `json:"access_token"`  // JWT token
	Role         string `json:"role"`          // Current role
	DepartmentID uint   `json:"department_id"` // Department ID
	Department   string `json:"department"`    // Department name
}

// RegisterHandler creates a user account
func RegisterHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		// Validate, hash and store the user
		user, err := auth.Register(c.Request.Context(), services.RegisterInput{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Password:     req.Password,
			DepartmentID: req.DepartmentID,
			Role:         req.Role,
		})
		if err != nil {
			respondError(c, err) // Map validation or conflict errors
			return
		}
		// Log the new account, never the password
		logrus.WithFields(logrus.Fields{
			"user_id":       user.ID,           // User ID
			"department_id": user.DepartmentID, // Department ID
			"role":          user.Role,         // Assigned role
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User created"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		res, err := auth.Login(c.Request.Context(), req.Email, req.Password) // Check credentials
		if err != nil {
			respondError(c, err) // Same 401 for unknown email and wrong password
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{
			AccessToken:  res.Token,
			Role:         res.Role.String(),
			DepartmentID: res.DepartmentID,
			Department:   res.Department,
		})
	}
}
