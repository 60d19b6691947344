package api

import (
	"encoding/json"
	"net/http"
	"path"
	"testing"
	"time"

	"service_reporting/internal/db/dbtest"
	"service_reporting/internal/domain"
	"service_reporting/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCacheKeys(t *testing.T) {
	march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	key := reportCacheKey(2025, march)
	assert.Equal(t, "reports:year:2025:asof:2025-03", key)
	assert.NotEqual(t, key, reportCacheKey(2025, march.AddDate(0, 1, 0)))

	ok, err := path.Match(reportCachePattern(2025), key)
	require.NoError(t, err)
	assert.True(t, ok)
	for _, year := range []int{2024, 2026, 20250, 202} {
		ok, err := path.Match(reportCachePattern(year), key)
		require.NoError(t, err)
		assert.False(t, ok, "pattern for %d matched %s", year, key)
	}
}

// januaryCount fetches the yearly report and returns Finance's January cell.
func januaryCount(t *testing.T, app *testApp, token string) int {
	t.Helper()
	w := app.do(t, http.MethodGet, "/reports?year=2025", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report services.YearlyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.NotEmpty(t, report.Report)
	require.NotNil(t, report.Report[0].Months[0])
	return *report.Report[0].Months[0]
}

func TestYearlyReportCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := newTestAppWithCache(t, rdb)
	_, deptToken := app.departmentToken(t)
	_, planToken := app.planningToken(t)
	dbtest.Service(t, app.db, app.finance.ID, 1, 2025, 50)
	require.NoError(t, mr.Set("reports:year:2024:asof:2025-03", "{}")) // another year, must survive invalidation

	assert.Equal(t, 50, januaryCount(t, app, planToken))
	assert.True(t, mr.Exists(reportCacheKey(2025, march2025.Now())))

	// A write that bypasses the API is not seen while the entry lives
	require.NoError(t, app.db.Model(&domain.Service{}).Where("month = ? AND year = ?", 1, 2025).
		Update("service_count", 60).Error)
	assert.Equal(t, 50, januaryCount(t, app, planToken))

	// Submitting through the API drops every cached report for the year
	w := app.do(t, http.MethodPost, "/services", deptToken, gin.H{"month": 1, "year": 2025, "count": 75})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, mr.Exists(reportCacheKey(2025, march2025.Now())))
	assert.True(t, mr.Exists("reports:year:2024:asof:2025-03"))

	assert.Equal(t, 75, januaryCount(t, app, planToken))
	assert.True(t, mr.Exists(reportCacheKey(2025, march2025.Now())))
}
