package api

import (
	"encoding/json" // JSON number decoding
	"net/http"      // HTTP status codes
	"strconv"       // String conversion

	"service_reporting/internal/apperr"     // Error kinds
	"service_reporting/internal/middleware" // Current user lookup
	"service_reporting/internal/services"   // Business services
	"service_reporting/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// SubmitRequest accepts JSON numbers or numeric strings for every field
type SubmitRequest struct {
	Month *json.Number `json:"month"` // Month 1..12
	Year  *json.Number `json:"year"`  // Calendar year
	Count *json.Number `json:"count"` // Service count, zero or more
}

// toInput converts the request, failing on any non-integer value
func (r SubmitRequest) toInput() (services.SubmitInput, bool) {
	month, err1 := strconv.Atoi(r.Month.String())
	year, err2 := strconv.Atoi(r.Year.String())
	count, err3 := strconv.Atoi(r.Count.String())
	if err1 != nil || err2 != nil || err3 != nil {
		return services.SubmitInput{}, false
	}
	return services.SubmitInput{Month: month, Year: year, Count: count}, true
}

// SubmitServiceHandler records the monthly count for the caller's department
func SubmitServiceHandler(svc *services.SubmissionService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get the user loaded by the role gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req SubmitRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid input"))
			return
		}
		// All three fields are required
		if req.Month == nil || req.Year == nil || req.Count == nil {
			respondError(c, apperr.Validation("Missing fields"))
			return
		}
		in, ok := req.toInput()
		if !ok {
			respondError(c, apperr.Validation("Invalid input"))
			return
		}
		ctx := c.Request.Context()
		rec, created, err := svc.Submit(ctx, user.DepartmentID, in) // Upsert the period
		if err != nil {
			respondError(c, err)
			return
		}
		// Cached reports for the year are stale now
		if err := utils.DeleteCachePattern(ctx, rdb, reportCachePattern(in.Year)); err != nil {
			logrus.WithError(err).Warn("Failed to invalidate report cache")
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       user.ID,           // Submitting user
			"department_id": user.DepartmentID, // Department ID
			"month":         rec.Month,         // Period month
			"year":          rec.Year,          // Period year
			"count":         rec.ServiceCount,  // Stored count
			"created":       created,           // Insert or replace
		}).Info("Service count recorded")
		c.JSON(http.StatusOK, gin.H{
			"message": "Record updated", // Same message for insert and replace
			"service": gin.H{
				"id":            rec.ID,
				"month":         rec.Month,
				"year":          rec.Year,
				"service_count": rec.ServiceCount,
			},
			"created": created,
		})
	}
}

// HistoryHandler pages through the caller's department records
func HistoryHandler(svc *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get the user loaded by the role gate
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		q := services.HistoryQuery{
			Page:    queryInt(c, "page", 1),                           // Default page number
			PerPage: queryInt(c, "per_page", services.DefaultPerPage), // Default page size
			Year:    queryIntPtr(c, "year"),                           // Optional year filter
			Month:   queryIntPtr(c, "month"),                          // Optional month filter
		}
		page, err := svc.History(c.Request.Context(), user.DepartmentID, q)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// queryInt reads a positive integer query value, falling back when absent or invalid
func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// queryIntPtr reads an optional positive integer filter; invalid values mean no filter
func queryIntPtr(c *gin.Context, key string) *int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
