package domain

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey"`                               // Primary key
	FirstName    string     `gorm:"size:20;not null"`                         // Given name
	LastName     string     `gorm:"size:20;not null"`                         // Family name
	Email        string     `gorm:"size:120;uniqueIndex;not null"`            // Unique login email
	Password     string     `gorm:"size:255;not null" json:"-"`               // Bcrypt hash, never the plaintext
	DepartmentID uint       `gorm:"not null;index"`                           // Foreign key to Department
	Department   Department `gorm:"constraint:OnUpdate:CASCADE;"`             // Owning department
	Role         Role       `gorm:"size:20;not null;default:department_user"` // Role: department_user or head_of_planning
}

// TableName keeps the singular table name used by the SQL migrations
func (User) TableName() string { return "user" }
