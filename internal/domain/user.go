package domain

import "time"

// User Model
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`                                // Primary key
	Username        string    `gorm:"size:50;uniqueIndex;not null" json:"username"`        // Unique username
	Email           string    `gorm:"size:100;uniqueIndex;not null" json:"email"`          // Unique email address
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`                          // Hashed password, never serialized
	DefaultCurrency string    `gorm:"size:3;not null;default:CNY" json:"default_currency"` // Preferred currency code
	CreatedAt       time.Time `json:"created_at"`                                          // Timestamp of creation
}
