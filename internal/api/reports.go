package api

import (
	"bytes"    // Export buffer
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache lifetime

	"service_reporting/internal/apperr"   // Error kinds
	"service_reporting/internal/services" // Business services
	"service_reporting/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// reportCacheKey ties a cached report to the month it was computed in, so a
// new month never serves cells that were still masked as future.
func reportCacheKey(year int, now time.Time) string {
	return "reports:year:" + strconv.Itoa(year) + ":asof:" + now.Format("2006-01")
}

// reportCachePattern matches every cached report for year
func reportCachePattern(year int) string {
	return "reports:year:" + strconv.Itoa(year) + ":*"
}

// YearlyReportHandler returns the department by month matrix for ?year=
func YearlyReportHandler(svc *services.ReportService, rdb *redis.Client, clock utils.Clock, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := strconv.Atoi(c.Query("year")) // Year is mandatory
		if err != nil || year < 1 {
			respondError(c, apperr.Validation("Year is required"))
			return
		}
		ctx := c.Request.Context()
		cacheKey := reportCacheKey(year, clock.Now())
		// Try to get cached response
		var cached services.YearlyReport
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve from cache
			return
		}
		if err != nil {
			logrus.WithError(err).Warn("Report cache read failed") // Fall through to the database
		}
		report, err := svc.YearlyReport(ctx, year)
		if err != nil {
			respondError(c, err)
			return
		}
		// Cache the response for future requests
		if err := utils.SetCache(ctx, rdb, cacheKey, report, ttl); err != nil {
			logrus.WithError(err).Warn("Report cache write failed")
		}
		c.JSON(http.StatusOK, report)
	}
}

// ExportHandler streams every service record as a csv or xlsx attachment
func ExportHandler(svc *services.ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		exp, err := exporterFor(c.Query("format")) // Resolve the format first
		if err != nil {
			respondError(c, err)
			return
		}
		rows, err := svc.ExportRows(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		// Render fully before sending so a failure can still become a 500
		var buf bytes.Buffer
		if err := exp.write(&buf, rows); err != nil {
			respondError(c, apperr.Internal("render export", err))
			return
		}
		c.Header("Content-Disposition", "attachment; filename="+exp.filename)
		c.Data(http.StatusOK, exp.contentType, buf.Bytes())
	}
}
