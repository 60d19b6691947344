package db

import (
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"strings" // Email derivation

	"service_reporting/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// PlanningDepartment is the department whose seeded user heads planning
const PlanningDepartment = "Planning Department"

// SeedDepartments is the organisation's department list
var SeedDepartments = []string{
	"Records Management Department",
	"Telephone Section Department",
	"Transport Section Department",
	"Central Planning and Project Monitoring Department",
	"Finance Department",
	"Accounts Section",
	"Human Resource Management and Development Department",
	"ICT Department",
	"Internal Audit Department",
	"Public Communication Department",
	"Youth and Gender",
	"Supply Chain Management Department",
	"Marriages",
	"Societies",
	"Coat of Arms",
	PlanningDepartment,
}

// SeedEmail derives the seeded login for a department
func SeedEmail(department string) string {
	return strings.ReplaceAll(strings.ToLower(department), " ", "_") + "@ag.go.ke"
}

// Seed creates every department and one user per department. The user of the
// planning department gets the head_of_planning role. Existing rows are kept,
// so running it twice changes nothing.
func Seed(db *gorm.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	created := 0 // Users inserted by this run
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, name := range SeedDepartments {
			dept := domain.Department{Name: name}
			if err := tx.Where(domain.Department{Name: name}).FirstOrCreate(&dept).Error; err != nil {
				return fmt.Errorf("seed department %q: %w", name, err)
			}
			email := SeedEmail(name)
			var existing domain.User
			err := tx.Where("email = ?", email).First(&existing).Error
			if err == nil {
				continue // Already seeded
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("look up seed user %q: %w", email, err)
			}
			role := domain.RoleDepartmentUser
			if name == PlanningDepartment {
				role = domain.RoleHeadOfPlanning
			}
			user := domain.User{
				FirstName:    strings.Fields(name)[0] + "User",
				LastName:     "Doe",
				Email:        email,
				Password:     string(hash),
				DepartmentID: dept.ID,
				Role:         role,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %q: %w", email, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"departments": len(SeedDepartments), // Departments ensured
		"users":       created,              // Users inserted by this run
	}).Info("Database seeded")
	return nil
}
