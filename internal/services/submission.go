package services

import (
	"context"
	"errors"
	"math"

	"service_reporting/internal/apperr"
	"service_reporting/internal/domain"
	"service_reporting/internal/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertAttempts bounds how often a submission is replayed after the store
// aborts it because of a concurrent write to the same period.
const upsertAttempts = 2

// mysqlDeadlock is InnoDB's "Deadlock found when trying to get lock" error number.
const mysqlDeadlock = 1213

// periodKey is the (department, month, year) unique key the upsert targets.
var periodKey = []clause.Column{{Name: "department_id"}, {Name: "month"}, {Name: "year"}}

// SubmitInput is one monthly count for the caller's department.
type SubmitInput struct {
	Month int
	Year  int
	Count int
}

// SubmissionService records monthly service counts.
type SubmissionService struct {
	db    *gorm.DB
	clock utils.Clock
}

func NewSubmissionService(db *gorm.DB, clock utils.Clock) *SubmissionService {
	return &SubmissionService{db: db, clock: clock}
}

// Submit stores the count for (departmentID, month, year), replacing any
// earlier count for the same period. created is true when no record existed.
func (s *SubmissionService) Submit(ctx context.Context, departmentID uint, in SubmitInput) (rec domain.Service, created bool, err error) {
	if in.Month < 1 || in.Month > 12 || in.Count < 0 || in.Year < 1 {
		return rec, false, apperr.Validation("Invalid input")
	}
	// Columns are signed 32-bit integers
	if in.Count > math.MaxInt32 || in.Year > math.MaxInt32 {
		return rec, false, apperr.Validation("Invalid input")
	}
	if utils.IsFuturePeriod(in.Year, in.Month, s.clock.Now()) {
		return rec, false, apperr.Validation("Cannot submit reports for future months")
	}

	for attempt := 0; attempt < upsertAttempts; attempt++ {
		rec, created, err = s.upsert(ctx, departmentID, in)
		if !retryable(err) {
			break
		}
	}
	switch {
	case err == nil:
		return rec, created, nil
	case retryable(err):
		return rec, false, apperr.Conflict("A report for this period was submitted concurrently, please retry")
	default:
		return rec, false, apperr.Internal("save service count", err)
	}
}

// upsert writes the period with a single INSERT ... ON CONFLICT so two first
// submissions never both insert. The earlier read only decides created.
func (s *SubmissionService) upsert(ctx context.Context, departmentID uint, in SubmitInput) (domain.Service, bool, error) {
	var rec domain.Service
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		period := tx.Where("department_id = ? AND month = ? AND year = ?", departmentID, in.Month, in.Year)

		var existing int64
		if err := period.Session(&gorm.Session{}).Model(&domain.Service{}).Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		row := domain.Service{DepartmentID: departmentID, Month: in.Month, Year: in.Year, ServiceCount: in.Count}
		err := tx.Clauses(clause.OnConflict{
			Columns:   periodKey,
			DoUpdates: clause.AssignmentColumns([]string{"service_count"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
		rec = domain.Service{}
		return period.Session(&gorm.Session{}).First(&rec).Error // ID is not reliable after an update
	})
	return rec, created, err
}

// retryable reports whether the store aborted the write because of a
// concurrent submission rather than bad data.
func retryable(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDeadlock
}
