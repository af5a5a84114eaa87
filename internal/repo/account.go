package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListAccounts returns a page of the user's accounts
func ListAccounts(db *gorm.DB, userID uint, skip, limit int) ([]domain.Account, error) {
	accounts := []domain.Account{} // Result slice, empty rather than nil for JSON
	err := db.Where("user_id = ?", userID).Offset(skip).Limit(limit).Find(&accounts).Error
	return accounts, err
}

// GetAccount fetches one account scoped to its owner
func GetAccount(db *gorm.DB, accountID, userID uint) (*domain.Account, error) {
	var account domain.Account // Row holder
	if err := db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		return nil, err // Not found or storage error
	}
	return &account, nil
}

// CreateAccount inserts a new account for the user
func CreateAccount(db *gorm.DB, account *domain.Account) error {
	return db.Create(account).Error // Insert and backfill the ID
}

// UpdateAccount applies a partial update to an owned account
func UpdateAccount(db *gorm.DB, accountID, userID uint, updates map[string]any) (*domain.Account, error) {
	account, err := GetAccount(db, accountID, userID) // Ownership check doubles as the load
	if err != nil {
		return nil, err // Not found or storage error
	}
	// Apply only the provided columns
	if len(updates) > 0 {
		if err := db.Model(account).Updates(updates).Error; err != nil {
			return nil, err // Storage error
		}
	}
	return account, nil
}

// DeleteAccount removes an owned account; missing rows report not found
func DeleteAccount(db *gorm.DB, accountID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", accountID, userID).Delete(&domain.Account{})
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound // Nothing matched owner+id
	}
	return nil
}
