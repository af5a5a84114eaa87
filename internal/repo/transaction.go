package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListTransactions returns a page of the user's transactions with their tags
func ListTransactions(db *gorm.DB, userID uint, skip, limit int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{} // Result slice, empty rather than nil for JSON
	err := db.Preload("Tags").
		Where("user_id = ?", userID).
		Offset(skip).Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

// GetTransaction fetches one transaction scoped to its owner, tags included
func GetTransaction(db *gorm.DB, transactionID, userID uint) (*domain.Transaction, error) {
	var transaction domain.Transaction // Row holder
	if err := db.Preload("Tags").
		Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &transaction, nil
}

// CreateTransaction inserts a transaction and attaches the caller's tags.
// Tag ids that do not belong to the owner are dropped silently.
func CreateTransaction(db *gorm.DB, transaction *domain.Transaction, tagIDs []uint) error {
	if err := db.Create(transaction).Error; err != nil {
		return err // Storage error, including FK violations
	}
	// Attach owned tags through the join table
	if len(tagIDs) > 0 {
		tags, err := ResolveOwnedTags(db, tagIDs, transaction.UserID)
		if err != nil {
			return err
		}
		if err := db.Model(transaction).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		transaction.Tags = tags // Reflect the association on the returned row
	}
	return nil
}

// UpdateTransaction applies a partial update to an owned transaction.
// A non-nil tagIDs replaces the tag set; nil leaves the association alone.
func UpdateTransaction(db *gorm.DB, transactionID, userID uint, updates map[string]any, tagIDs *[]uint) (*domain.Transaction, error) {
	transaction, err := GetTransaction(db, transactionID, userID) // Ownership check doubles as the load
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	// Replace the tag association when a tag set was provided
	if tagIDs != nil {
		tags, err := ResolveOwnedTags(db, *tagIDs, userID)
		if err != nil {
			return nil, err
		}
		if err := db.Model(transaction).Association("Tags").Replace(&tags); err != nil {
			return nil, err
		}
		transaction.Tags = tags // Reflect the association on the returned row
	}
	return transaction, nil
}

// DeleteTransaction removes an owned transaction; missing rows report not found
func DeleteTransaction(db *gorm.DB, transactionID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&domain.Transaction{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}
