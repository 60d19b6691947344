package domain

// Service is one department's reported count for a calendar month
type Service struct {
	ID           uint       `gorm:"primaryKey"`                                              // Primary key
	DepartmentID uint       `gorm:"not null;uniqueIndex:unique_department_month,priority:1"` // Foreign key to Department
	Department   Department `gorm:"constraint:OnUpdate:CASCADE;"`                            // Reporting department
	Month        int        `gorm:"not null;uniqueIndex:unique_department_month,priority:2"` // 1..12
	Year         int        `gorm:"not null;uniqueIndex:unique_department_month,priority:3"` // Calendar year
	ServiceCount int        `gorm:"not null"`                                                // Reported count, replaced on resubmission
}

// TableName keeps the singular table name used by the SQL migrations
func (Service) TableName() string { return "service" }
