package services

import (
	"testing"
	"time"

	"service_reporting/internal/config"
	"service_reporting/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// march2025 is "today" for every date rule in this package's tests.
var march2025 = utils.FixedClock{T: time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func cell(t *testing.T, row ReportRow, month int) *int {
	t.Helper()
	return row.Months[month-1]
}

func fastAuth(s *AuthService) *AuthService {
	s.hashCost = bcrypt.MinCost
	return s
}

func fastProfile(s *ProfileService) *ProfileService {
	s.hashCost = bcrypt.MinCost
	return s
}
