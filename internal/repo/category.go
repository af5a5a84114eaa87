package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListCategories returns the user's categories plus the shared system ones
func ListCategories(db *gorm.DB, userID uint, skip, limit int) ([]domain.Category, error) {
	categories := []domain.Category{} // Result slice, empty rather than nil for JSON
	err := db.Where("user_id = ? OR user_id IS NULL", userID).
		Offset(skip).Limit(limit).
		Find(&categories).Error
	return categories, err
}

// GetCategory fetches one category visible to the user (owned or system)
func GetCategory(db *gorm.DB, categoryID, userID uint) (*domain.Category, error) {
	var category domain.Category // Row holder
	if err := db.Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).
		First(&category).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &category, nil
}

// CreateCategory inserts a new user-owned category
func CreateCategory(db *gorm.DB, category *domain.Category) error {
	return db.Create(category).Error // Insert and backfill the ID
}

// UpdateCategory applies a partial update to an owned category.
// System categories are read-only, so the scope here is owner only.
func UpdateCategory(db *gorm.DB, categoryID, userID uint, updates map[string]any) (*domain.Category, error) {
	var category domain.Category // Row holder
	if err := db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return &category, nil
}

// DeleteCategory removes an owned category; system rows never match
func DeleteCategory(db *gorm.DB, categoryID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", categoryID, userID).Delete(&domain.Category{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}
