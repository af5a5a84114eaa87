package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListTags returns a page of the user's tags
func ListTags(db *gorm.DB, userID uint, skip, limit int) ([]domain.Tag, error) {
	tags := []domain.Tag{} // Result slice, empty rather than nil for JSON
	err := db.Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&tags).Error
	return tags, err
}

// GetTag fetches one tag scoped to its owner
func GetTag(db *gorm.DB, tagID, userID uint) (*domain.Tag, error) {
	var tag domain.Tag // Row holder
	if err := db.Where("id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &tag, nil
}

// CreateTag inserts a new tag for the user
func CreateTag(db *gorm.DB, tag *domain.Tag) error {
	return db.Create(tag).Error // Insert and backfill the ID
}

// UpdateTag applies a partial update to an owned tag
func UpdateTag(db *gorm.DB, tagID, userID uint, updates map[string]any) (*domain.Tag, error) {
	tag, err := GetTag(db, tagID, userID) // Ownership check doubles as the load
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(tag).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return tag, nil
}

// DeleteTag removes an owned tag; missing rows report not found
func DeleteTag(db *gorm.DB, tagID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", tagID, userID).Delete(&domain.Tag{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}

// ResolveOwnedTags maps tag ids to the caller's tag rows, dropping foreign ids
func ResolveOwnedTags(db *gorm.DB, tagIDs []uint, userID uint) ([]domain.Tag, error) {
	tags := []domain.Tag{} // Result slice
	if len(tagIDs) == 0 {
		return tags, nil // Nothing to resolve
	}
	err := db.Where("id IN ? AND user_id = ?", tagIDs, userID).Find(&tags).Error
	return tags, err
}
