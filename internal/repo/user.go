package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GetUser fetches a user by primary key
func GetUser(db *gorm.DB, userID uint) (*domain.User, error) {
	var user domain.User // Row holder
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// GetUserByUsername fetches a user by unique username
func GetUserByUsername(db *gorm.DB, username string) (*domain.User, error) {
	var user domain.User // Row holder
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// GetUserByEmail fetches a user by unique email
func GetUserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User // Row holder
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &user, nil
}

// CreateUser inserts a new user row
func CreateUser(db *gorm.DB, user *domain.User) error {
	return db.Create(user).Error // Insert and backfill the ID
}

// UpdateUser applies a partial update to a user; absent columns stay untouched
func UpdateUser(db *gorm.DB, userID uint, updates map[string]any) (*domain.User, error) {
	user, err := GetUser(db, userID) // Load the row first
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(user).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return user, nil
}
