package domain

// Department Model
type Department struct {
	ID   uint   `gorm:"primaryKey"`                    // Primary key
	Name string `gorm:"size:100;uniqueIndex;not null"` // Unique department name
}

// TableName keeps the singular table name used by the SQL migrations
func (Department) TableName() string { return "department" }
