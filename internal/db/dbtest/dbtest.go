// Package dbtest opens throwaway sqlite databases for tests.
package dbtest

import (
	"strings"
	"testing"

	"service_reporting/internal/db"
	"service_reporting/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns an in-memory database private to t with the schema applied.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=1"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a single connection keeps sqlite from reporting "table is locked" inside transactions
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// Department inserts a department.
func Department(t testing.TB, gdb *gorm.DB, name string) domain.Department {
	t.Helper()
	d := domain.Department{Name: name}
	if err := gdb.Create(&d).Error; err != nil {
		t.Fatalf("department: %v", err)
	}
	return d
}

// User inserts a user whose password is "password123".
func User(t testing.TB, gdb *gorm.DB, email string, departmentID uint, role domain.Role) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := domain.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Password:     string(hash),
		DepartmentID: departmentID,
		Role:         role,
	}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}

// Service inserts a monthly record.
func Service(t testing.TB, gdb *gorm.DB, departmentID uint, month, year, count int) domain.Service {
	t.Helper()
	s := domain.Service{DepartmentID: departmentID, Month: month, Year: year, ServiceCount: count}
	if err := gdb.Create(&s).Error; err != nil {
		t.Fatalf("service: %v", err)
	}
	return s
}
