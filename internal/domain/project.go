package domain

import "time"

// Project Model
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`                                  // Primary key
	UserID      uint       `gorm:"not null;index" json:"user_id"`                         // Foreign key to owning User
	Name        string     `gorm:"size:100;not null" json:"name"`                         // Project name
	Description string     `gorm:"type:text" json:"description"`                          // Free-form description
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`                           // Optional start date
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`                             // Optional end date
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owning user
}
